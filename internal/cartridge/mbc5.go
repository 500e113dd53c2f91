package cartridge

import "github.com/thelolagemann/gomeboy-mbc/internal/types"

// mbc5 supports up to 8MiB of ROM with a 9-bit bank number split over
// 0x2000-0x2FFF (low 8 bits) and 0x3000-0x3FFF (bit 8), and up to 16 RAM
// banks. Unlike the earlier controllers bank 0 may be mapped at 0x4000.
// The MBC7 banks identically.
type mbc5 struct {
	*banking
	rumble *rumble
}

func (m *mbc5) selectROM(address uint16, value uint8) {
	if address < 0x3000 {
		m.setROMBank(m.romBank&0x100 | int(value))
	} else {
		m.setROMBank(m.romBank&0xff | int(value&1)<<8)
	}
}

func (m *mbc5) selectRAM(value uint8) {
	value &= 0x0f

	// bit 3 controls rumble on cartridges that feature a rumble motor
	value = m.rumble.filter(value)

	m.setRAMBank(int(value))
}

func (m *mbc5) Save(s *types.State) {
	m.banking.Save(s)
	s.WriteBool(m.rumble.last)
}

func (m *mbc5) Load(s *types.State) {
	m.banking.Load(s)
	m.rumble.last = s.ReadBool()
}
