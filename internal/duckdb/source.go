package duckdb

import (
	"os"
	"time"
)

// Source identifies a file as it was when read. Size and modification time
// stand in for content identity.
type Source struct {
	Path    string    `json:"path"`
	Size    int64     `json:"size"`
	ModTime time.Time `json:"modified"`
}

// StatSource records the current size and modification time of path.
func StatSource(path string) (Source, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Source{}, err
	}
	return Source{Path: path, Size: info.Size(), ModTime: info.ModTime()}, nil
}

// Changed reports whether the file at s.Path no longer matches s, including
// when it has been removed. A zero Source never changes.
func (s Source) Changed() bool {
	if s.Path == "" {
		return false
	}
	now, err := StatSource(s.Path)
	if err != nil {
		return true
	}
	return now.Size != s.Size || !now.ModTime.Equal(s.ModTime)
}
