package cartridge

import "github.com/thelolagemann/gomeboy-mbc/internal/types"

// mbc3 supports up to 2MiB of ROM and 32KiB of RAM, and on some boards a
// real time clock whose registers replace the RAM bank at 0xA000-0xBFFF
// when selected.
type mbc3 struct {
	*banking

	clock      *Clock
	selected   Selection
	latchValue uint8
}

func (m *mbc3) selectROM(_ uint16, value uint8) {
	value &= 0x7f
	if value == 0 {
		value = 1
	}
	m.setROMBank(int(value))
}

// selectRAM selects RAM banks with 0x00-0x03, and clock registers with
// 0x08-0x0C. Other values are ignored.
func (m *mbc3) selectRAM(value uint8) {
	switch {
	case value <= 0x03:
		m.setRAMBank(int(value))
		m.selected = RAMBank(value)
	case value >= uint8(ClockSeconds) && value <= uint8(ClockControl):
		m.selected = ClockField(value)
	}
}

// latch latches the clock on a 0 -> non-zero transition of the latch register.
func (m *mbc3) latch(value uint8) {
	if m.latchValue == 0 && value != 0 {
		m.clock.Latch()
	}
	m.latchValue = value
}

func (m *mbc3) readRAM(address uint16) uint8 {
	if !m.ramEnabled {
		return 0xff
	}

	if field, ok := m.selected.(ClockField); ok {
		return uint8(m.clock.Read(field))
	}
	return m.banking.readRAM(address)
}

func (m *mbc3) writeRAM(address uint16, value uint8) {
	if !m.ramEnabled {
		return
	}

	if field, ok := m.selected.(ClockField); ok {
		m.clock.Write(field, value)
		return
	}
	m.banking.writeRAM(address, value)
}

func (m *mbc3) Save(s *types.State) {
	m.banking.Save(s)
	switch sel := m.selected.(type) {
	case ClockField:
		s.Write8(uint8(sel))
	case RAMBank:
		s.Write8(uint8(sel))
	}
	s.Write8(m.latchValue)
	m.clock.Save(s)
}

func (m *mbc3) Load(s *types.State) {
	m.banking.Load(s)
	if sel := s.Read8(); sel >= uint8(ClockSeconds) {
		m.selected = ClockField(sel)
	} else {
		m.selected = RAMBank(sel)
	}
	m.latchValue = s.Read8()
	m.clock.Load(s)
}
