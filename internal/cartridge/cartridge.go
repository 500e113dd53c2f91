// Package cartridge emulates the memory bank controllers of Game Boy
// cartridges. A Cartridge sits on the bus at 0x0000-0x7FFF and
// 0xA000-0xBFFF, and turns writes to its ROM area into bank switching,
// clock access and rumble.
package cartridge

import (
	"bytes"
	"fmt"
	"time"

	"github.com/thelolagemann/gomeboy-mbc/internal/types"
	"github.com/thelolagemann/gomeboy-mbc/pkg/log"
)

// Cartridge is a loaded cartridge with its controller bound.
type Cartridge struct {
	Header

	router  *router
	banking *banking
	clock   *Clock
	rumble  *rumble
	save    *saver

	// set by options
	log      log.Logger
	store    SaveStore
	autosave bool
	now      func() time.Time
}

var _ types.Stater = (*Cartridge)(nil)

// New parses the header of rom and returns a Cartridge with the matching
// controller bound.
func New(rom []byte, opts ...Opt) (*Cartridge, error) {
	h, err := ParseHeader(rom)
	if err != nil {
		return nil, err
	}
	return NewWithHeader(rom, h, opts...)
}

// NewWithHeader returns a Cartridge for rom described by h.
func NewWithHeader(rom []byte, h Header, opts ...Opt) (*Cartridge, error) {
	kind, ok := h.Kind()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, h.CartridgeType)
	}

	c := &Cartridge{
		Header: h,
		rumble: &rumble{present: h.HasRumble()},
		log:    log.NewNullLogger(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.save = &saver{store: c.store, autosave: c.autosave, log: c.log}

	c.banking = newBanking(padROM(rom), h.RAMBanks(), c.save)
	c.banking.rockman = kind == KindMBC1 && h.Rockman()

	clockOffset := int64(c.banking.numRAMBanks * ramBankSize)
	switch kind {
	case KindMBC3:
		c.clock = newClock(ClockMBC3, c.now, c.save, clockOffset)
	case KindHuC3:
		c.clock = newClock(ClockHuC3, c.now, c.save, clockOffset)
	}

	c.router = newRouter(kind, c.banking, c.clock, c.rumble)

	c.log.Infof("cartridge: %s, %d ROM banks, %d RAM banks, %s", h, c.banking.numROMBanks, c.banking.numRAMBanks, kind)
	return c, nil
}

// padROM extends rom to at least two whole 16KiB banks.
func padROM(rom []byte) []byte {
	size := len(rom)
	if size < 2*romBankSize {
		size = 2 * romBankSize
	}
	if r := size % romBankSize; r != 0 {
		size += romBankSize - r
	}
	if size == len(rom) {
		return rom
	}

	padded := make([]byte, size)
	copy(padded, rom)
	for i := len(rom); i < size; i++ {
		padded[i] = 0xff
	}
	return padded
}

// Read returns the value at address from ROM, external RAM or the clock.
func (c *Cartridge) Read(address uint16) uint8 {
	return c.router.Read(address)
}

// Write writes an 8-bit value to the cartridge.
func (c *Cartridge) Write(address uint16, value uint8) {
	c.router.Write(address, value)
}

// Kind returns the controller bound to the cartridge.
func (c *Cartridge) Kind() Kind {
	return c.router.kind
}

// Clock returns the real time clock of MBC3 and HuC3 cartridges, or nil.
func (c *Cartridge) Clock() *Clock {
	return c.clock
}

// ROMBank returns the bank mapped at 0x4000-0x7FFF.
func (c *Cartridge) ROMBank() int {
	return c.banking.romBank
}

// RAMBank returns the bank mapped at 0xA000-0xBFFF.
func (c *Cartridge) RAMBank() int {
	return c.banking.ramBank
}

// RAMEnabled returns true if the RAM gate is open.
func (c *Cartridge) RAMEnabled() bool {
	return c.banking.ramEnabled
}

// RAM returns the external RAM of the cartridge.
func (c *Cartridge) RAM() []byte {
	return c.banking.sram
}

// SaveRAM returns the battery backed contents of the cartridge: every RAM
// bank, followed by the clock record on cartridges with a timer.
func (c *Cartridge) SaveRAM() []byte {
	data := make([]byte, len(c.banking.sram), len(c.banking.sram)+ClockRecordSize)
	copy(data, c.banking.sram)

	if c.clock != nil && c.HasTimer() {
		record, err := c.clock.MarshalBinary()
		if err != nil {
			c.log.Errorf("unable to encode clock: %v", err)
			return data
		}
		data = append(data, record...)
	}
	return data
}

// LoadRAM restores data produced by SaveRAM. A missing or blank clock
// record leaves the clock running from the time the cartridge was created.
func (c *Cartridge) LoadRAM(data []byte) error {
	n := copy(c.banking.sram, data)

	if c.clock == nil || len(data) < n+ClockRecordSize {
		return nil
	}
	record := data[n : n+ClockRecordSize]
	if bytes.Equal(record, make([]byte, ClockRecordSize)) {
		return nil
	}
	if err := c.clock.UnmarshalBinary(record); err != nil {
		return fmt.Errorf("cartridge: load RAM: %w", err)
	}
	return nil
}

// Flush writes the whole of SaveRAM to the save store.
func (c *Cartridge) Flush() error {
	if c.store == nil {
		return nil
	}
	if _, err := c.store.WriteAt(c.SaveRAM(), 0); err != nil {
		return fmt.Errorf("cartridge: flush: %w", err)
	}
	c.store.MarkModified()
	return nil
}

// Save implements types.Stater.
func (c *Cartridge) Save(s *types.State) {
	c.router.regs.Save(s)
}

// Load implements types.Stater.
func (c *Cartridge) Load(s *types.State) {
	c.router.regs.Load(s)
}
