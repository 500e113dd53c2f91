package cartridge

// huc1 is the Hudson HuC1. It banks like an MBC1 without the bank 0
// correction, and shares the infrared port (unemulated) with the HuC3.
type huc1 struct {
	*banking
}

func (h *huc1) selectROM(_ uint16, value uint8) {
	h.setROMBank(int(value & 0x3f))
}

func (h *huc1) selectRAM(value uint8) {
	value &= 3

	if h.memoryModel == 0 {
		h.setROMBank(int(value))
	} else {
		h.setRAMBank(int(value))
	}
}

func (h *huc1) latch(value uint8) {
	h.memoryModel = value & 1
}
