package restamp

import (
	"os"
	"time"

	"github.com/rwcarlsen/goexif/exif"

	"github.com/quidome/media-timestamper-go/pkg/stamp"
)

type exifReader struct{}

var _ StampReader = exifReader{}

// HasTimestamp reports whether the file already carries an embedded capture
// timestamp, checking DateTimeOriginal, then DateTimeDigitized, then
// DateTime.
//
// Read and decode errors count as "no timestamp": a file we cannot decode
// (videos, PNGs) should still receive the recovered date.
func (exifReader) HasTimestamp(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	x, err := exif.Decode(f)
	if err != nil {
		return false
	}

	for _, tag := range []exif.FieldName{exif.DateTimeOriginal, exif.DateTimeDigitized, exif.DateTime} {
		field, err := x.Get(tag)
		if err != nil {
			continue
		}
		s, err := field.StringVal()
		if err != nil {
			continue
		}
		if _, err := time.Parse(stamp.Layout, s); err == nil {
			return true
		}
	}
	return false
}
