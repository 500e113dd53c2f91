package cartridge

import (
	"time"

	"github.com/thelolagemann/gomeboy-mbc/pkg/log"
)

// Opt is a function that modifies a Cartridge before its controller is
// bound.
type Opt func(c *Cartridge)

func WithLogger(l log.Logger) Opt {
	return func(c *Cartridge) {
		c.log = l
	}
}

// WithSaveStore sets the battery backed store of the cartridge. Nothing
// is written to it until autosaving is enabled or Flush is called.
func WithSaveStore(store SaveStore) Opt {
	return func(c *Cartridge) {
		c.store = store
	}
}

// WithAutosave writes RAM and clock changes through to the save store as
// they happen.
func WithAutosave() Opt {
	return func(c *Cartridge) {
		c.autosave = true
	}
}

// WithRumbleStrength sets the strength of the rumble motor, 0 disables it.
func WithRumbleStrength(strength uint8) Opt {
	return func(c *Cartridge) {
		c.rumble.strength = strength
	}
}

// WithRumbleDevice attaches a rumble device, called with the motor
// strength whenever the motor is switched on or off.
func WithRumbleDevice(callback func(on bool, strength uint8)) Opt {
	return func(c *Cartridge) {
		c.rumble.inserted = callback != nil
		c.rumble.callback = callback
	}
}

// WithClock sets the wall clock the real time clock is driven by.
func WithClock(now func() time.Time) Opt {
	return func(c *Cartridge) {
		c.now = now
	}
}
