package cartridge

import (
	"github.com/thelolagemann/gomeboy-mbc/internal/ram"
	"github.com/thelolagemann/gomeboy-mbc/internal/types"
)

const (
	romBankSize = 0x4000
	ramBankSize = 0x2000
)

// banking holds the register state shared by every memory bank
// controller, and maps the selected banks into the address space.
type banking struct {
	mem  *ram.Windows
	rom  []byte
	sram []byte

	ramEnabled  bool
	romBank     int
	ramBank     int
	memoryModel uint8 // 0 = ROM banking mode, 1 = RAM banking mode

	numROMBanks int
	numRAMBanks int

	rockman bool

	save *saver
}

func newBanking(rom []byte, numRAMBanks int, save *saver) *banking {
	b := &banking{
		mem:         ram.NewWindows(),
		rom:         rom,
		sram:        make([]byte, numRAMBanks*ramBankSize),
		numROMBanks: len(rom) / romBankSize,
		numRAMBanks: numRAMBanks,
		save:        save,
	}

	// bank 0 is fixed at 0x0000-0x3FFF
	b.mem.Map(0x0, 4, rom)
	b.setROMBank(1)
	b.setRAMBank(0)

	return b
}

// enableRAM sets the RAM gate, which only opens for a low nibble of 0xA.
func (b *banking) enableRAM(value uint8) {
	b.ramEnabled = value&0x0f == 0x0a
}

// setROMBank maps the given bank into 0x4000-0x7FFF, wrapping it to the
// size of the ROM.
func (b *banking) setROMBank(bank int) {
	b.romBank = bank % b.numROMBanks
	b.mem.Map(0x4, 4, b.rom[b.romBank*romBankSize:])
}

// setRAMBank maps the given bank into 0xA000-0xBFFF. Cartridges without
// RAM ignore it.
func (b *banking) setRAMBank(bank int) {
	if b.numRAMBanks == 0 {
		return
	}
	b.ramBank = bank % b.numRAMBanks
	b.mem.Map(0xa, 2, b.sram[b.ramBank*ramBankSize:])
}

func (b *banking) ramAccessible() bool {
	return b.ramEnabled && b.numRAMBanks > 0
}

func (b *banking) latch(uint8) {}

func (b *banking) readRAM(address uint16) uint8 {
	if !b.ramAccessible() {
		return 0xff
	}
	return b.mem.Read(address)
}

func (b *banking) writeRAM(address uint16, value uint8) {
	if b.ramAccessible() {
		b.writeSRAM(address, value)
	}
}

// writeSRAM writes to the selected RAM bank, writing changed bytes
// through to the save store.
func (b *banking) writeSRAM(address uint16, value uint8) {
	if !b.mem.Mapped(address) || b.mem.Read(address) == value {
		return
	}
	b.mem.Write(address, value)

	offset := int64(b.ramBank*ramBankSize) + int64(address&0x1fff)
	b.save.writeAt([]byte{value}, offset)
}

func (b *banking) Save(s *types.State) {
	s.WriteBool(b.ramEnabled)
	s.Write32(uint32(b.romBank))
	s.Write32(uint32(b.ramBank))
	s.Write8(b.memoryModel)
	s.WriteData(b.sram)
}

func (b *banking) Load(s *types.State) {
	b.ramEnabled = s.ReadBool()
	romBank := int(s.Read32())
	ramBank := int(s.Read32())
	b.memoryModel = s.Read8()
	s.ReadData(b.sram)

	b.setROMBank(romBank)
	b.setRAMBank(ramBank)
}
