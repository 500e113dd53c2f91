package emu

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/cespare/xxhash"
	"github.com/hashicorp/go-multierror"

	"github.com/thelolagemann/gomeboy-mbc/pkg/utils"
)

// save file naming convention:
// <folder>/<title>/<xxhash of the ROM>.sav
//
// While the cartridge runs, writes go to a temporary file next to the
// save, which replaces the save on Close if anything was written. A crash
// leaves the previous save untouched.

// Save is the battery backed store of a cartridge. It implements
// cartridge.SaveStore.
type Save struct {
	b        []byte   // the save file data
	f        *os.File // temporary file that is written to while running
	modified bool
	existed  bool

	Path string // the path to the save file
}

// Open opens the save for rom in folder, creating it with size zero bytes
// if it doesn't exist yet. A save larger than size is kept whole.
func Open(folder, title string, rom []byte, size int) (*Save, error) {
	romSaveFolder := filepath.Join(folder, sanitise(title))
	if err := os.MkdirAll(romSaveFolder, 0755); err != nil {
		return nil, fmt.Errorf("save: %w", err)
	}

	s := &Save{
		Path: filepath.Join(romSaveFolder, fmt.Sprintf("%016x.sav", xxhash.Sum64(rom))),
	}

	existing, err := utils.LoadFile(s.Path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("save: %w", err)
	default:
		s.existed = true
	}
	if len(existing) > size {
		size = len(existing)
	}
	s.b = make([]byte, size)
	copy(s.b, existing)

	if err := s.createTemporarySaveFile(); err != nil {
		return nil, fmt.Errorf("save: %w", err)
	}
	return s, nil
}

// Existed returns true if the save was read from disk rather than created.
func (s *Save) Existed() bool {
	return s.existed
}

// Bytes returns the save data.
func (s *Save) Bytes() []byte {
	return s.b
}

// WriteAt writes p to the temporary file at off, growing the save if
// needed.
func (s *Save) WriteAt(p []byte, off int64) (int, error) {
	if off < 0 {
		return 0, fmt.Errorf("save: negative offset %d", off)
	}
	if end := int(off) + len(p); end > len(s.b) {
		s.b = append(s.b, make([]byte, end-len(s.b))...)
	}
	copy(s.b[off:], p)
	return s.f.WriteAt(p, off)
}

// MarkModified flags the save to be committed on Close.
func (s *Save) MarkModified() {
	s.modified = true
}

// Modified returns true if the save has been written to since it was opened.
func (s *Save) Modified() bool {
	return s.modified
}

// Close commits the temporary file over the save if it was modified,
// otherwise the temporary file is discarded.
func (s *Save) Close() error {
	if s.f == nil {
		return nil
	}

	var result *multierror.Error
	if err := s.f.Sync(); err != nil {
		result = multierror.Append(result, err)
	}
	if err := s.f.Close(); err != nil {
		result = multierror.Append(result, err)
	}

	if s.modified && result == nil {
		if err := os.Rename(s.f.Name(), s.Path); err != nil {
			result = multierror.Append(result, err)
		}
	} else if err := os.Remove(s.f.Name()); err != nil {
		result = multierror.Append(result, err)
	}

	s.f = nil
	return result.ErrorOrNil()
}

// createTemporarySaveFile creates the temporary save file holding the
// current save data.
func (s *Save) createTemporarySaveFile() error {
	var err error
	s.f, err = os.CreateTemp(filepath.Dir(s.Path), fmt.Sprintf("%s.*", filepath.Base(s.Path)))
	if err != nil {
		return err
	}
	if _, err := s.f.WriteAt(s.b, 0); err != nil {
		return multierror.Append(err, s.f.Close(), os.Remove(s.f.Name())).ErrorOrNil()
	}
	return nil
}

// sanitise makes title usable as a folder name.
func sanitise(title string) string {
	title = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		return r
	}, strings.TrimSpace(title))
	if title == "" {
		return "untitled"
	}
	return title
}
