package cartridge

// romOnly is a cartridge without a bank controller, optionally with up
// to 8KiB of RAM wired straight to 0xA000-0xBFFF.
type romOnly struct {
	*banking
}

// newROMOnly returns a romOnly with its RAM enabled, as there is no
// gate in front of it.
func newROMOnly(b *banking) *romOnly {
	b.ramEnabled = true
	return &romOnly{banking: b}
}

func (r *romOnly) selectROM(uint16, uint8) {}

func (r *romOnly) selectRAM(uint8) {}
