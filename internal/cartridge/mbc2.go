package cartridge

// mbc2 has a 512 x 4-bit RAM array built into the controller, mirrored
// across 0xA000-0xBFFF.
type mbc2 struct {
	*banking
}

func (m *mbc2) selectROM(_ uint16, value uint8) {
	value &= 0x0f // 4-bit

	// like MBC1, values of 0 can't be written
	if value == 0 {
		value = 1
	}
	m.setROMBank(int(value))
}

func (m *mbc2) selectRAM(uint8) {}

func (m *mbc2) readRAM(address uint16) uint8 {
	if !m.ramAccessible() {
		return 0xff
	}
	// upper 4 bits are open bus
	return m.mem.Read(0xa000|address&0x01ff) | 0xf0
}

func (m *mbc2) writeRAM(address uint16, value uint8) {
	if m.ramAccessible() {
		m.writeSRAM(0xa000|address&0x01ff, value&0x0f)
	}
}
