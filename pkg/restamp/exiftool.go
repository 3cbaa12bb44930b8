package restamp

import (
	"fmt"
	"os/exec"
	"strings"
)

// ExifTool drives the external exiftool binary.
type ExifTool struct {
	// Path to the binary, usually resolved by LookPath.
	Path string
}

var _ Tool = (*ExifTool)(nil)

// LookPath locates exiftool on PATH. Its absence is fatal for the apply
// pipeline, so callers should preflight before planning any work.
func LookPath() (*ExifTool, error) {
	p, err := exec.LookPath("exiftool")
	if err != nil {
		return nil, fmt.Errorf("exiftool not found in PATH (see https://exiftool.org): %w", err)
	}
	return &ExifTool{Path: p}, nil
}

// Args builds the argument list for one write. Split out from Write so the
// invocation is testable without the binary installed.
func (t *ExifTool) Args(path, timestamp string) []string {
	return []string{
		"-DateTimeOriginal=" + timestamp,
		"-CreateDate=" + timestamp,
		"-ModifyDate=" + timestamp,
		"-overwrite_original",
		path,
	}
}

// Write sets the capture, creation and modification timestamp fields on one
// file.
func (t *ExifTool) Write(path, timestamp string) error {
	cmd := exec.Command(t.Path, t.Args(path, timestamp)...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		if msg := strings.TrimSpace(string(out)); msg != "" {
			return fmt.Errorf("exiftool: %s: %w", msg, err)
		}
		return fmt.Errorf("exiftool: %w", err)
	}
	return nil
}
