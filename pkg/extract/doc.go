// Package extract recovers capture timestamps from a data export's HTML pages.
//
// Export pages list each photo or video as a link, followed by a small marked
// element holding the capture date-time as human-readable text. The walk pairs
// the two in a single forward pass and normalizes the text into the canonical
// EXIF date-time form.
package extract
