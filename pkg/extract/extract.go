package extract

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/net/html"

	"github.com/quidome/media-timestamper-go/pkg/stamp"
)

// Options configures a document walk.
type Options struct {
	// Marker is the class-attribute substring that identifies a timestamp
	// block.
	Marker string

	// MediaSuffixes are the link-target suffixes treated as media references.
	// Matching is case-sensitive, as export pages emit lowercase names.
	MediaSuffixes []string
}

func DefaultOptions() Options {
	return Options{
		Marker:        "timestamp",
		MediaSuffixes: []string{".jpg", ".png", ".mp4"},
	}
}

// File extracts the filename-to-timestamp mapping from an HTML file on disk.
//
// An unreadable path is the only fatal condition; a readable document that
// yields nothing returns an empty mapping and a nil error.
func File(path string, opts Options) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open document: %w", err)
	}
	defer f.Close()
	return Document(f, opts)
}

// Document walks HTML in source order and pairs each media link with the
// first parseable date-time inside the next timestamp block.
//
// The walk is a single forward pass over the token stream. Malformed markup
// never fails it; regions that don't match the expected structure simply
// contribute no entries. When the same filename is paired more than once, the
// later pair wins.
func Document(r io.Reader, opts Options) (map[string]string, error) {
	if opts.Marker == "" {
		opts.Marker = DefaultOptions().Marker
	}
	if len(opts.MediaSuffixes) == 0 {
		opts.MediaSuffixes = DefaultOptions().MediaSuffixes
	}

	found := make(map[string]string)

	var (
		pendingFile  string // most recent media reference, not yet paired
		pendingStamp string // first parsed date-time in the open block
		capturing    bool
		depth        int // element nesting inside the open block
	)

	z := html.NewTokenizer(r)
	for {
		switch z.Next() {
		case html.ErrorToken:
			if err := z.Err(); err != io.EOF {
				return nil, fmt.Errorf("read document: %w", err)
			}
			return found, nil

		case html.StartTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			flat := tok.Type == html.SelfClosingTagToken || voidElements[tok.Data]

			if capturing {
				if !flat {
					depth++
				}
				continue
			}

			if tok.Data == "a" {
				if name, ok := mediaName(attrValue(tok.Attr, "href"), opts.MediaSuffixes); ok {
					// An unpaired earlier reference is dropped: the last
					// reference before a timestamp block wins.
					pendingFile = name
				}
			}

			if !flat && isTimestampBlock(tok.Attr, opts.Marker) {
				capturing = true
				depth = 1
				pendingStamp = ""
			}

		case html.EndTagToken:
			if !capturing {
				continue
			}
			depth--
			if depth > 0 {
				continue
			}
			capturing = false
			if pendingFile != "" && pendingStamp != "" {
				found[pendingFile] = pendingStamp
			}
			// A timestamp with no reference, or a reference with no
			// parseable timestamp, is dropped here.
			pendingFile = ""
			pendingStamp = ""

		case html.TextToken:
			if !capturing || pendingStamp != "" {
				continue
			}
			if ts, ok := stamp.Parse(string(z.Text())); ok {
				pendingStamp = ts
			}
		}
	}
}

// isTimestampBlock reports whether an element's class attribute marks it as a
// timestamp container. Kept separate from the walk so the matching rule can
// change without touching the state machine.
func isTimestampBlock(attrs []html.Attribute, marker string) bool {
	return strings.Contains(attrValue(attrs, "class"), marker)
}

// mediaName returns the final path segment of a link target that ends in a
// recognized media suffix.
func mediaName(href string, suffixes []string) (string, bool) {
	if href == "" {
		return "", false
	}
	matched := false
	for _, suffix := range suffixes {
		if strings.HasSuffix(href, suffix) {
			matched = true
			break
		}
	}
	if !matched {
		return "", false
	}
	if i := strings.LastIndex(href, "/"); i >= 0 {
		href = href[i+1:]
	}
	if href == "" {
		return "", false
	}
	return href, true
}

func attrValue(attrs []html.Attribute, key string) string {
	for _, a := range attrs {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// voidElements never produce an end tag, so they must not affect block depth.
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"param": true, "source": true, "track": true, "wbr": true,
}
