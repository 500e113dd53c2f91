package cartridge

import "github.com/thelolagemann/gomeboy-mbc/internal/types"

// rumble drives the motor of MBC5 rumble cartridges from bit 3 of the
// RAM bank register.
type rumble struct {
	present  bool // the cartridge declares a motor
	strength uint8
	inserted bool // a rumble device is attached to the host
	last     bool

	callback func(on bool, strength uint8)
}

// filter returns the RAM bank select value left once the motor bit has
// been consumed. The motor is only driven when its state changes.
func (r *rumble) filter(value uint8) uint8 {
	if !r.present {
		return value
	}

	if r.strength > 0 && r.inserted {
		on := value&types.Bit3 != 0
		if on != r.last {
			if r.callback != nil {
				r.callback(on, r.strength)
			}
			r.last = on
		}
	}

	// without a device the motor bit is passed on as a bank bit
	if r.inserted {
		value &^= types.Bit3
	}
	return value
}
