package locate

import (
	"reflect"
	"testing"
	"testing/fstest"
)

func TestIndex_GroupsByBaseName(t *testing.T) {
	fsys := fstest.MapFS{
		"root/photo1.jpg":            &fstest.MapFile{Data: []byte("a")},
		"root/album/photo1.jpg":      &fstest.MapFile{Data: []byte("a")},
		"root/album/clip.MP4":        &fstest.MapFile{Data: []byte("b")},
		"root/album/notes.txt":       &fstest.MapFile{Data: []byte("c")},
		"root/album/deep/photo2.png": &fstest.MapFile{Data: []byte("d")},
	}

	got, err := Index(fsys, "root", DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := map[string][]string{
		"photo1.jpg": {"album/photo1.jpg", "photo1.jpg"},
		"clip.MP4":   {"album/clip.MP4"},
		"photo2.png": {"album/deep/photo2.png"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected index\n got: %v\nwant: %v", got, want)
	}
}

func TestIndex_MaxDepth(t *testing.T) {
	fsys := fstest.MapFS{
		"root/a.jpg":            &fstest.MapFile{Data: []byte("a")},
		"root/sub/b.png":        &fstest.MapFile{Data: []byte("b")},
		"root/sub/nested/c.mp4": &fstest.MapFile{Data: []byte("c")},
	}

	testCases := []struct {
		name     string
		maxDepth int
		want     []string
	}{
		{
			name:     "depth 0 includes only top-level",
			maxDepth: 0,
			want:     []string{"a.jpg"},
		},
		{
			name:     "depth 1 includes one subdirectory",
			maxDepth: 1,
			want:     []string{"a.jpg", "b.png"},
		},
		{
			name:     "unlimited includes everything",
			maxDepth: -1,
			want:     []string{"a.jpg", "b.png", "c.mp4"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			opts := DefaultOptions()
			opts.MaxDepth = tc.maxDepth

			index, err := Index(fsys, "root", opts)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			for _, name := range tc.want {
				if len(index[name]) == 0 {
					t.Fatalf("expected %q in index, got %v", name, index)
				}
			}
			if len(index) != len(tc.want) {
				t.Fatalf("unexpected index size\n got: %v\nwant names: %v", index, tc.want)
			}
		})
	}
}

func TestIndex_InvalidMaxDepth(t *testing.T) {
	fsys := fstest.MapFS{"root/a.jpg": &fstest.MapFile{Data: []byte("a")}}

	opts := DefaultOptions()
	opts.MaxDepth = -2

	if _, err := Index(fsys, "root", opts); err == nil {
		t.Fatal("expected an error for MaxDepth < -1")
	}
}
