package locate

import (
	"io/fs"
	"path"
	"sort"
	"strings"
)

type Options struct {
	MaxDepth int

	PhotoExtensions []string
	VideoExtensions []string
}

func DefaultOptions() Options {
	return Options{
		MaxDepth: -1,
		PhotoExtensions: []string{
			".jpg", ".jpeg", ".png", ".gif", ".webp", ".heic", ".tif", ".tiff", ".bmp",
		},
		VideoExtensions: []string{
			".mp4", ".mov", ".m4v", ".mkv", ".avi", ".webm", ".mts", ".3gp",
		},
	}
}

// Index walks root and groups media files by base name.
//
// Export pages reference bare filenames, so lookups happen by base name. The
// same name can legitimately appear in several album directories; every copy
// is indexed, and path lists come back sorted.
func Index(fsys fs.FS, root string, opts Options) (map[string][]string, error) {
	if opts.MaxDepth < -1 {
		return nil, fs.ErrInvalid
	}

	exts := normalizeExts(append(opts.PhotoExtensions, opts.VideoExtensions...))

	index := make(map[string][]string)

	err := fs.WalkDir(fsys, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel := relativeTo(root, p)
		if d.IsDir() {
			if rel != "." && opts.MaxDepth >= 0 && depth(rel) > opts.MaxDepth {
				return fs.SkipDir
			}
			return nil
		}
		if rel == "." {
			return nil
		}
		if opts.MaxDepth >= 0 && depth(rel) > opts.MaxDepth {
			return nil
		}

		if !exts[strings.ToLower(path.Ext(rel))] {
			return nil
		}

		name := path.Base(rel)
		index[name] = append(index[name], rel)
		return nil
	})
	if err != nil {
		return nil, err
	}

	for name := range index {
		sort.Strings(index[name])
	}
	return index, nil
}

func normalizeExts(exts []string) map[string]bool {
	m := make(map[string]bool, len(exts))
	for _, ext := range exts {
		e := strings.TrimSpace(strings.ToLower(ext))
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		m[e] = true
	}
	return m
}

func relativeTo(root, p string) string {
	if root == "." || root == p {
		if root == p {
			return "."
		}
		return p
	}
	return strings.TrimPrefix(p, root+"/")
}

func depth(rel string) int {
	if rel == "." {
		return 0
	}
	return strings.Count(rel, "/")
}
