package restamp

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/charmbracelet/log"
)

// Operation pairs a media file with its recovered capture timestamp.
type Operation struct {
	// Filename is the base name as referenced by the export page.
	Filename string

	// Path is the resolved location on disk, empty when no file was found.
	Path string

	// Timestamp is the canonical YYYY:MM:DD HH:MM:SS string.
	Timestamp string
}

// Action describes what happened (or would happen) to a file.
type Action string

const (
	ActionWritten        Action = "written"
	ActionSkippedStamped Action = "skipped_already_stamped"
	ActionMissing        Action = "missing"
	ActionDryRun         Action = "dry_run"
	ActionFailed         Action = "failed"
)

// Decision records the outcome for one operation.
type Decision struct {
	Operation Operation
	Action    Action
	Error     error
}

// Summary aggregates decisions for user-facing reporting.
// Dry-run writes count as Written.
type Summary struct {
	Total   int
	Written int
	Skipped int
	Missing int
	Failed  int
}

// Tool writes a capture timestamp into a file's embedded metadata.
type Tool interface {
	Write(path, timestamp string) error
}

// StampReader reports whether a file already carries a capture timestamp.
type StampReader interface {
	HasTimestamp(path string) bool
}

// Options configures Apply.
type Options struct {
	// DryRun decides everything but writes nothing. Tool may be nil.
	DryRun bool

	// Force writes even when the file already carries a timestamp.
	Force bool

	// Tool performs the metadata writes. Required unless DryRun.
	Tool Tool

	// Reader checks for existing timestamps. If nil, an EXIF-based reader
	// is used.
	Reader StampReader

	// Logger receives per-file diagnostics at debug level. If nil,
	// diagnostics are discarded.
	Logger *log.Logger
}

var errNoTool = errors.New("no metadata tool configured")

// Plan joins the extractor's mapping with a locate index into operations,
// ordered by filename then path.
//
// A filename with no located file still produces one operation (with an empty
// Path) so Apply can report it as missing. A filename located in several
// places produces one operation per copy: duplicated export files should each
// receive the timestamp.
func Plan(mapping map[string]string, index map[string][]string) []Operation {
	names := make([]string, 0, len(mapping))
	for name := range mapping {
		names = append(names, name)
	}
	sort.Strings(names)

	ops := make([]Operation, 0, len(names))
	for _, name := range names {
		paths := index[name]
		if len(paths) == 0 {
			ops = append(ops, Operation{Filename: name, Timestamp: mapping[name]})
			continue
		}
		for _, p := range paths {
			ops = append(ops, Operation{Filename: name, Path: p, Timestamp: mapping[name]})
		}
	}
	return ops
}

// Apply executes the planned operations and returns one decision per
// operation plus an aggregate summary.
//
// Individual write failures are recorded, not fatal; the only configuration
// error is a missing Tool outside dry-run mode.
func Apply(ops []Operation, opts Options) ([]Decision, Summary, error) {
	if opts.Tool == nil && !opts.DryRun {
		return nil, Summary{}, errNoTool
	}

	reader := opts.Reader
	if reader == nil {
		reader = exifReader{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	decisions := make([]Decision, 0, len(ops))
	var summary Summary

	for _, op := range ops {
		d := Decision{Operation: op}

		switch {
		case op.Path == "":
			d.Action = ActionMissing
		case !opts.Force && reader.HasTimestamp(op.Path):
			d.Action = ActionSkippedStamped
		case opts.DryRun:
			d.Action = ActionDryRun
		default:
			if err := opts.Tool.Write(op.Path, op.Timestamp); err != nil {
				d.Action = ActionFailed
				d.Error = fmt.Errorf("write metadata: %w", err)
			} else {
				d.Action = ActionWritten
			}
		}

		summary.Total++
		switch d.Action {
		case ActionWritten, ActionDryRun:
			summary.Written++
		case ActionSkippedStamped:
			summary.Skipped++
		case ActionMissing:
			summary.Missing++
		case ActionFailed:
			summary.Failed++
		}

		if d.Error != nil {
			logger.Warn("restamp failed", "file", op.Filename, "path", op.Path, "err", d.Error)
		} else {
			logger.Debug("restamp", "file", op.Filename, "path", op.Path, "timestamp", op.Timestamp, "action", d.Action)
		}

		decisions = append(decisions, d)
	}

	return decisions, summary, nil
}
