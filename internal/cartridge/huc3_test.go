package cartridge

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/thelolagemann/gomeboy-mbc/pkg/log"
)

func newHuC3(t *testing.T, opts ...Opt) *Cartridge {
	t.Helper()
	now, _ := fixedClock()
	return newTestCartridge(t, Header{CartridgeType: HUDSONHUC3, RAMSize: 0x8000}, 8, append(opts, WithClock(now))...)
}

func TestHuC3_ClockNibbles(t *testing.T) {
	c := newHuC3(t)
	clock := c.Clock()
	clock.hours, clock.minutes = 20, 34 // 1234 = 0x4d2
	clock.days = 0x123
	clock.years = 7

	c.Write(0x0000, huc3ModeCommand)
	c.Write(0xA000, 0x40)

	for i, want := range []uint8{0x2, 0xd, 0x4, 0x3, 0x2, 0x1, 0x7} {
		c.Write(0x0000, huc3ModeCommand)
		c.Write(0xA000, 0x10)
		c.Write(0x0000, huc3ModeRead)
		assert.Equal(t, want, c.Read(0xA000), "nibble %d", i)
	}

	// past the year nibble reads stop advancing
	c.Write(0x0000, huc3ModeCommand)
	c.Write(0xA000, 0x10)
	c.Write(0x0000, huc3ModeRead)
	assert.Equal(t, uint8(0x7), c.Read(0xA000))

	// and start over once reset
	c.Write(0x0000, huc3ModeCommand)
	c.Write(0xA000, 0x47)
	c.Write(0xA000, 0x10)
	c.Write(0x0000, huc3ModeRead)
	assert.Equal(t, uint8(0x2), c.Read(0xA000))
}

func TestHuC3_ResetOnlyOnSomeArguments(t *testing.T) {
	c := newHuC3(t)
	c.Clock().minutes = 0x0f

	c.Write(0x0000, huc3ModeCommand)
	c.Write(0xA000, 0x10)
	c.Write(0xA000, 0x41) // latches, keeps the shift
	c.Write(0xA000, 0x10)
	c.Write(0x0000, huc3ModeRead)
	assert.Equal(t, uint8(0x0), c.Read(0xA000), "second nibble of minute 15")
}

func TestHuC3_StatusReads(t *testing.T) {
	c := newHuC3(t)

	c.Write(0x0000, huc3ModeCommand)
	assert.Equal(t, uint8(1), c.Read(0xA000))

	c.Write(0x0000, huc3ModeReserved)
	assert.Equal(t, uint8(1), c.Read(0xA000))

	c.Write(0x0000, huc3ModeCommand)
	c.Write(0xA000, 0x60)
	c.Write(0x0000, huc3ModeRead)
	assert.Equal(t, uint8(1), c.Read(0xA000))

	// 0x50 is accepted and ignored
	c.Write(0x0000, huc3ModeCommand)
	c.Write(0xA000, 0x50)
	c.Write(0x0000, huc3ModeRead)
	assert.Equal(t, uint8(1), c.Read(0xA000))
}

func TestHuC3_UnknownCommand(t *testing.T) {
	var buf bytes.Buffer
	c := newHuC3(t, WithLogger(log.NewWithOutput(&buf)))

	c.Write(0x0000, huc3ModeCommand)
	c.Write(0xA000, 0x60)
	c.Write(0xA000, 0x70)

	assert.Contains(t, buf.String(), "unhandled HuC3 command 70")
	c.Write(0x0000, huc3ModeRead)
	assert.Equal(t, uint8(1), c.Read(0xA000), "value register unchanged")
}

func TestHuC3_RAMMode(t *testing.T) {
	store := &memoryStore{}
	c := newHuC3(t, WithSaveStore(store), WithAutosave())

	c.Write(0x0000, 0x0a)
	c.Write(0x4000, 0x01)
	c.Write(0xA001, 0x5c)
	assert.Equal(t, uint8(0x5c), c.Read(0xA001))
	assert.Equal(t, []int64{ramBankSize + 1}, store.writes)

	// the protocol modes never reach RAM
	for _, mode := range []uint8{huc3ModeRead, huc3ModeReserved, huc3ModeIR} {
		c.Write(0x0000, mode)
		c.Write(0xA001, 0x11)
	}
	c.Write(0x0000, huc3ModeCommand)
	c.Write(0xA001, 0x60)

	c.Write(0x0000, 0x0a)
	assert.Equal(t, uint8(0x5c), c.Read(0xA001))
	assert.Len(t, store.writes, 1)
}
