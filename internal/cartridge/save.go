package cartridge

import (
	"io"

	"github.com/thelolagemann/gomeboy-mbc/pkg/log"
)

// SaveStore is the battery backed storage of a cartridge. RAM bank n
// lives at offset n*0x2000, the clock record directly after the last
// RAM bank.
type SaveStore interface {
	io.WriterAt
	MarkModified()
}

// saver writes through to the SaveStore while autosaving is enabled.
type saver struct {
	store    SaveStore
	autosave bool
	log      log.Logger
}

func (s *saver) active() bool {
	return s.autosave && s.store != nil
}

func (s *saver) writeAt(p []byte, off int64) {
	if !s.active() {
		return
	}
	if _, err := s.store.WriteAt(p, off); err != nil {
		s.log.Errorf("unable to write save data at %#x: %v", off, err)
		return
	}
	s.store.MarkModified()
}
