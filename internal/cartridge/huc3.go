package cartridge

import (
	"github.com/thelolagemann/gomeboy-mbc/internal/types"
	"github.com/thelolagemann/gomeboy-mbc/pkg/log"
)

// HuC3 modes, written to 0x0000-0x1FFF alongside the RAM gate.
const (
	huc3ModeCommand  = 0x0b
	huc3ModeRead     = 0x0c
	huc3ModeReserved = 0x0d
	huc3ModeIR       = 0x0e
)

// huc3Protocol decodes the command bytes the HuC3 accepts through the RAM
// window, exposing the clock four bits at a time.
type huc3Protocol struct {
	mode  uint8
	shift uint8
	value uint8

	clock *Clock
	log   log.Logger
}

func (p *huc3Protocol) command(cmd uint8) {
	switch cmd & 0xf0 {
	case 0x10: // read clock
		if p.shift > 24 {
			return
		}

		switch p.shift {
		case 0, 4, 8:
			p.value = uint8(p.clock.Read(ClockMinuteOfDay)>>p.shift) & 0x0f
		case 12, 16, 20:
			p.value = uint8(p.clock.Read(ClockDays)>>(p.shift-12)) & 0x0f
		case 24:
			p.value = uint8(p.clock.Read(ClockYears)) & 0x0f
		}
		p.shift += 4
	case 0x40:
		switch cmd & 0x0f {
		case 0, 4, 7:
			p.shift = 0
		}

		p.clock.Latch()
	case 0x50:
	case 0x60:
		p.value = 1
	default:
		p.log.Errorf("unhandled HuC3 command %02x", cmd)
	}
}

// huc3 is the Hudson HuC3, which adds a clock and an infrared port behind
// a mode register.
type huc3 struct {
	*banking
	protocol *huc3Protocol
}

func (h *huc3) enableRAM(value uint8) {
	h.banking.enableRAM(value)
	h.protocol.mode = value
}

func (h *huc3) selectROM(_ uint16, value uint8) {
	if value == 0 {
		value = 1
	}
	h.setROMBank(int(value))
}

func (h *huc3) selectRAM(value uint8) {
	h.setRAMBank(int(value & 0x0f))
}

func (h *huc3) readRAM(address uint16) uint8 {
	switch h.protocol.mode {
	case huc3ModeRead:
		return h.protocol.value
	case huc3ModeCommand, huc3ModeReserved:
		// some games need this to boot
		return 1
	}
	return h.banking.readRAM(address)
}

func (h *huc3) writeRAM(address uint16, value uint8) {
	switch h.protocol.mode {
	case huc3ModeCommand:
		h.protocol.command(value)
	case huc3ModeRead, huc3ModeReserved, huc3ModeIR:
	default:
		h.banking.writeRAM(address, value)
	}
}

func (h *huc3) Save(s *types.State) {
	h.banking.Save(s)
	s.Write8(h.protocol.mode)
	s.Write8(h.protocol.shift)
	s.Write8(h.protocol.value)
	h.protocol.clock.Save(s)
}

func (h *huc3) Load(s *types.State) {
	h.banking.Load(s)
	h.protocol.mode = s.Read8()
	h.protocol.shift = s.Read8()
	h.protocol.value = s.Read8()
	h.protocol.clock.Load(s)
}
