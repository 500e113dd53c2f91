package cartridge

import (
	"fmt"

	"github.com/thelolagemann/gomeboy-mbc/internal/ram"
	"github.com/thelolagemann/gomeboy-mbc/internal/types"
)

// Kind is the family of memory bank controller on a cartridge.
type Kind uint8

const (
	KindROM Kind = iota
	KindMBC1
	KindMBC2
	KindMBC3
	KindMBC5
	KindMBC7
	KindHuC1
	KindHuC3
)

func (k Kind) String() string {
	switch k {
	case KindROM:
		return "ROM"
	case KindMBC1:
		return "MBC1"
	case KindMBC2:
		return "MBC2"
	case KindMBC3:
		return "MBC3"
	case KindMBC5:
		return "MBC5"
	case KindMBC7:
		return "MBC7"
	case KindHuC1:
		return "HuC1"
	case KindHuC3:
		return "HuC3"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Mapper is the view of a cartridge the bus sees.
type Mapper interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)
}

// Selection is the value held by the RAM bank register. Most controllers
// only ever hold a RAMBank, MBC3 may hold a ClockField instead.
type Selection interface {
	selection()
}

// RAMBank selects an external RAM bank.
type RAMBank uint8

func (RAMBank) selection() {}

// registers are the controller specific handlers for each address range.
type registers interface {
	enableRAM(value uint8)                 // 0x0000-0x1FFF
	selectROM(address uint16, value uint8) // 0x2000-0x3FFF
	selectRAM(value uint8)                 // 0x4000-0x5FFF
	latch(value uint8)                     // 0x6000-0x7FFF
	readRAM(address uint16) uint8          // 0xA000-0xBFFF
	writeRAM(address uint16, value uint8)  // 0xA000-0xBFFF

	types.Stater
}

// router dispatches bus accesses to the registers of the bound controller.
type router struct {
	kind Kind
	regs registers
	mem  *ram.Windows
}

// Read returns the value at the given address. ROM reads go through the
// mapped windows, external RAM reads through the controller.
func (r *router) Read(address uint16) uint8 {
	switch {
	case address < 0x8000:
		return r.mem.Read(address)
	case address >= 0xA000 && address < 0xC000:
		return r.regs.readRAM(address)
	}
	return 0xff
}

// Write writes an 8-bit value to the cartridge.
func (r *router) Write(address uint16, value uint8) {
	switch {
	case address < 0x2000:
		r.regs.enableRAM(value)
	case address < 0x4000:
		r.regs.selectROM(address, value)
	case address < 0x6000:
		r.regs.selectRAM(value)
	case address < 0x8000:
		r.regs.latch(value)
	case address >= 0xA000 && address < 0xC000:
		r.regs.writeRAM(address, value)
	}
}

// newRouter binds the controller for kind.
func newRouter(kind Kind, b *banking, clock *Clock, rumble *rumble) *router {
	var regs registers
	switch kind {
	case KindMBC1:
		regs = &mbc1{banking: b}
	case KindMBC2:
		regs = &mbc2{banking: b}
	case KindMBC3:
		regs = &mbc3{banking: b, clock: clock, selected: RAMBank(0)}
	case KindMBC5, KindMBC7:
		regs = &mbc5{banking: b, rumble: rumble}
	case KindHuC1:
		regs = &huc1{banking: b}
	case KindHuC3:
		regs = &huc3{banking: b, protocol: &huc3Protocol{clock: clock, log: b.save.log}}
	default:
		regs = newROMOnly(b)
	}

	return &router{kind: kind, regs: regs, mem: b.mem}
}
