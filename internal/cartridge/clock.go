package cartridge

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"time"

	"github.com/thelolagemann/gomeboy-mbc/internal/types"
)

// ClockField identifies a register of the real time clock. The MBC3 fields
// take the values written to the RAM bank register to select them.
type ClockField uint8

const (
	ClockSeconds ClockField = 0x08 + iota
	ClockMinutes
	ClockHours
	ClockDayLow
	ClockControl // bit 0 day bit 8, bit 6 halt, bit 7 day carry
)

const (
	ClockMinuteOfDay ClockField = 0x10 + iota // HuC3: 12-bit minute counter
	ClockDays                                 // HuC3: 12-bit day counter
	ClockYears                                // HuC3: year counter
)

func (ClockField) selection() {}

// ClockRecordSize is the size of the clock record stored after the RAM
// banks in a save.
const ClockRecordSize = 32

// clockRecord is the persisted layout of a Clock, little endian.
type clockRecord struct {
	Seconds, Minutes, Hours, Days, Control, Years uint32
	Last                                          int64
}

// ClockStyle selects how a Clock carries time past its top register.
type ClockStyle uint8

const (
	ClockMBC3 ClockStyle = iota // 9-bit day counter with carry flag
	ClockHuC3                   // days roll over into years every 365 days
)

// Clock is the real time clock shared by MBC3 and HuC3 cartridges. The
// registers only move when latched, so reads between two latches see a
// frozen snapshot of time.
type Clock struct {
	seconds, minutes, hours uint8
	days                    uint16
	control                 uint8
	years                   uint16

	last int64 // unix time of the previous latch

	style  ClockStyle
	now    func() time.Time
	save   *saver
	offset int64
}

// newClock returns a clock running from now, persisting to offset in
// the save store.
func newClock(style ClockStyle, now func() time.Time, save *saver, offset int64) *Clock {
	return &Clock{
		style:  style,
		now:    now,
		save:   save,
		offset: offset,
		last:   now().Unix(),
	}
}

// Read returns the latched value of field.
func (c *Clock) Read(field ClockField) uint16 {
	switch field {
	case ClockSeconds:
		return uint16(c.seconds)
	case ClockMinutes:
		return uint16(c.minutes)
	case ClockHours:
		return uint16(c.hours)
	case ClockDayLow:
		return c.days & 0xff
	case ClockControl:
		return uint16(c.control)
	case ClockMinuteOfDay:
		return uint16(c.hours)*60 + uint16(c.minutes)
	case ClockDays:
		return c.days
	case ClockYears:
		return c.years
	}
	return 0xff
}

// Write sets an MBC3 clock register. Writes that don't change the register
// have no effect, otherwise the clock is persisted. It returns true if the
// register changed.
func (c *Clock) Write(field ClockField, value uint8) bool {
	switch field {
	case ClockSeconds, ClockMinutes, ClockHours, ClockDayLow, ClockControl:
		if uint8(c.Read(field)) == value {
			return false
		}
	default:
		return false
	}

	// the written value counts from now
	c.advance()

	switch field {
	case ClockSeconds:
		c.seconds = value
	case ClockMinutes:
		c.minutes = value
	case ClockHours:
		c.hours = value
	case ClockDayLow:
		c.days = c.days&0x100 | uint16(value)
	case ClockControl:
		c.days = c.days&0xff | uint16(value&types.Bit0)<<8
		c.control = value
	}

	c.persist()
	return true
}

// Latch advances the registers by the time passed since the previous
// latch or write, and persists the clock. A halted MBC3 clock keeps its
// registers.
func (c *Clock) Latch() {
	c.advance()
	c.persist()
}

// advance folds the wall time elapsed since last into the registers.
func (c *Clock) advance() {
	now := c.now().Unix()
	elapsed := now - c.last
	c.last = now

	if elapsed <= 0 || (c.style == ClockMBC3 && c.control&types.Bit6 != 0) {
		return
	}

	seconds := int64(c.seconds) + elapsed
	minutes := int64(c.minutes) + seconds/60
	hours := int64(c.hours) + minutes/60
	days := int64(c.days) + hours/24

	c.seconds = uint8(seconds % 60)
	c.minutes = uint8(minutes % 60)
	c.hours = uint8(hours % 24)

	switch c.style {
	case ClockMBC3:
		if days > 0x1ff {
			c.control |= types.Bit7
			days &= 0x1ff
		}
		c.days = uint16(days)
		c.control = c.control&^types.Bit0 | uint8(days>>8)&types.Bit0
	case ClockHuC3:
		c.years = uint16((int64(c.years) + days/365) & 0xfff)
		c.days = uint16(days % 365)
	}
}

// persist writes the clock record after the last RAM bank.
func (c *Clock) persist() {
	if !c.save.active() {
		return
	}
	b, err := c.MarshalBinary()
	if err != nil {
		c.save.log.Errorf("unable to encode clock: %v", err)
		return
	}
	c.save.writeAt(b, c.offset)
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (c *Clock) MarshalBinary() ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(ClockRecordSize)
	err := binary.Write(&buf, binary.LittleEndian, clockRecord{
		Seconds: uint32(c.seconds),
		Minutes: uint32(c.minutes),
		Hours:   uint32(c.hours),
		Days:    uint32(c.days),
		Control: uint32(c.control),
		Years:   uint32(c.years),
		Last:    c.last,
	})
	return buf.Bytes(), err
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (c *Clock) UnmarshalBinary(data []byte) error {
	if len(data) < ClockRecordSize {
		return fmt.Errorf("clock record: need %d bytes, got %d", ClockRecordSize, len(data))
	}
	var r clockRecord
	if err := binary.Read(bytes.NewReader(data), binary.LittleEndian, &r); err != nil {
		return fmt.Errorf("clock record: %w", err)
	}

	c.seconds = uint8(r.Seconds)
	c.minutes = uint8(r.Minutes)
	c.hours = uint8(r.Hours)
	c.days = uint16(r.Days)
	c.control = uint8(r.Control)
	c.years = uint16(r.Years)
	c.last = r.Last
	return nil
}

func (c *Clock) Save(s *types.State) {
	b, _ := c.MarshalBinary()
	s.WriteData(b)
}

func (c *Clock) Load(s *types.State) {
	b := make([]byte, ClockRecordSize)
	s.ReadData(b)
	if err := c.UnmarshalBinary(b); err != nil {
		c.save.log.Errorf("unable to load clock state: %v", err)
	}
}
