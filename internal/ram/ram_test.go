package ram

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWindows_MapReadWrite(t *testing.T) {
	w := NewWindows()
	bank := make([]byte, 2*WindowSize)
	bank[0] = 0x11
	bank[WindowSize] = 0x22

	assert.Equal(t, uint8(0xff), w.Read(0xA000))
	assert.False(t, w.Mapped(0xA000))

	w.Map(0xA, 2, bank)
	assert.True(t, w.Mapped(0xBFFF))
	assert.Equal(t, uint8(0x11), w.Read(0xA000))
	assert.Equal(t, uint8(0x22), w.Read(0xB000))

	w.Write(0xB001, 0x33)
	assert.Equal(t, uint8(0x33), bank[WindowSize+1], "writes go through to the bank")

	w.Write(0xC000, 0x44)
	assert.Equal(t, uint8(0xff), w.Read(0xC000), "writes to unmapped windows are dropped")
	assert.False(t, w.Mapped(0xC000))
}
