package library

import (
	"fmt"

	"launchsift/internal/utils"
)

// entryFile is the on-disk library format: a TOML document with repeated
// [[entry]] tables.
type entryFile struct {
	Entries []Entry `toml:"entry"`
}

// LoadEntries reads a library file. Entries without a name are rejected since
// the name is both the display title and the index key.
func LoadEntries(path string) ([]*Entry, error) {
	var file entryFile
	if err := utils.LoadTOMLFile(path, &file); err != nil {
		return nil, fmt.Errorf("loading library file %s: %w", path, err)
	}
	out := make([]*Entry, 0, len(file.Entries))
	for i := range file.Entries {
		e := &file.Entries[i]
		if e.Name == "" {
			return nil, fmt.Errorf("library file %s: entry %d has no name", path, i)
		}
		out = append(out, e)
	}
	return out, nil
}

// SaveEntries writes a library file, mainly for generating demo data.
func SaveEntries(path string, entries []*Entry) error {
	file := entryFile{Entries: make([]Entry, len(entries))}
	for i, e := range entries {
		file.Entries[i] = *e
	}
	return utils.SaveTOMLFile(file, path)
}
