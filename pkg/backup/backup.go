package backup

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// File copies src into backupDir before its metadata gets rewritten, and
// returns the backup path.
//
// Backups are flat: only the base name is kept. A name already present in
// backupDir gets a _N suffix before the extension; existing files are never
// overwritten.
func File(src, backupDir string) (string, error) {
	if err := os.MkdirAll(backupDir, 0o755); err != nil {
		return "", fmt.Errorf("create backup directory: %w", err)
	}

	dst := destination(backupDir, filepath.Base(src))
	if err := copyFile(src, dst); err != nil {
		return "", err
	}
	return dst, nil
}

// destination returns a path in dir that does not exist yet, appending _N
// before the extension if needed.
func destination(dir, filename string) string {
	candidate := filepath.Join(dir, filename)
	if !exists(candidate) {
		return candidate
	}

	ext := filepath.Ext(filename)
	name := strings.TrimSuffix(filename, ext)

	for i := 1; ; i++ {
		candidate = filepath.Join(dir, fmt.Sprintf("%s_%d%s", name, i, ext))
		if !exists(candidate) {
			return candidate
		}
	}
}

func exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

func copyFile(src, dst string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	defer srcFile.Close()

	srcInfo, err := srcFile.Stat()
	if err != nil {
		return fmt.Errorf("stat source: %w", err)
	}

	// O_EXCL: destination selection and creation can race with nothing in a
	// single-process tool, but a backup must never clobber an earlier one.
	dstFile, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, srcInfo.Mode())
	if err != nil {
		return fmt.Errorf("create backup: %w", err)
	}
	defer dstFile.Close()

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		_ = os.Remove(dst)
		return fmt.Errorf("copy content: %w", err)
	}

	if err := dstFile.Sync(); err != nil {
		return fmt.Errorf("sync: %w", err)
	}

	return nil
}
