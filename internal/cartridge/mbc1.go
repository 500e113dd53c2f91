package cartridge

// mbc1 supports up to 2MiB of ROM and 32KiB of RAM. The 2-bit register
// at 0x4000 holds either the upper ROM bank bits or the RAM bank,
// depending on the banking mode.
type mbc1 struct {
	*banking
}

func (m *mbc1) selectROM(_ uint16, value uint8) {
	value &= 0x1f // 5-bit value

	var bank int
	if m.rockman {
		// the Rockman 8 board skips banks 0x10-0x17
		bank = int(value)
		if value > 0x0f {
			bank -= 8
		}
	} else {
		bank = m.romBank&0xe0 | int(value)
	}

	// can't write a value of 0
	if bank == 0 {
		bank = 1
	}
	m.setROMBank(bank)
}

func (m *mbc1) selectRAM(value uint8) {
	value &= 3 // 2-bit value

	if m.memoryModel == 0 {
		bank := m.romBank&0x1f | int(value)<<5
		if bank == 0 {
			bank = 1
		}
		m.setROMBank(bank)
	} else {
		m.setRAMBank(int(value))
	}
}

func (m *mbc1) latch(value uint8) {
	m.memoryModel = value & 1
}
