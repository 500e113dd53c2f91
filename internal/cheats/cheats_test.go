package cheats

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thelolagemann/gomeboy-mbc/internal/cartridge"
	"github.com/thelolagemann/gomeboy-mbc/pkg/log"
)

func newTestGenie(t *testing.T) *GameGenie {
	t.Helper()
	rom := make([]byte, 4*0x4000)
	rom[0x0150] = 0xc3
	rom[0x4123] = 0x21          // bank 1
	rom[2*0x4000+0x0123] = 0x22 // bank 2

	c, err := cartridge.NewWithHeader(rom, cartridge.Header{CartridgeType: cartridge.MBC1})
	require.NoError(t, err)
	return NewGameGenie(c, log.NewNullLogger())
}

func TestParseGameGenie(t *testing.T) {
	c, err := ParseGameGenie("3E1-23B-6AE")
	require.NoError(t, err)
	assert.Equal(t, uint8(0x3e), c.NewData)
	assert.Equal(t, uint16(0x4123), c.Address)
	assert.Equal(t, uint8(0x21), c.OldData)
	assert.True(t, c.Compare)
	assert.Equal(t, "3E1-23B-6AE", c.String())

	c, err = ParseGameGenie("001-50F")
	require.NoError(t, err)
	assert.Equal(t, uint16(0x0150), c.Address)
	assert.False(t, c.Compare)
}

func TestParseGameGenie_Errors(t *testing.T) {
	for _, code := range []string{"", "3E1-23B-6A", "3E123B6AE00", "ZZ1-23B", "3E1-2XB"} {
		_, err := ParseGameGenie(code)
		assert.ErrorIs(t, err, ErrInvalidCode, code)
	}

	_, err := ParseGameGenie("000-007")
	assert.ErrorIs(t, err, ErrNotROM)
}

func TestGameGenie_Read(t *testing.T) {
	g := newTestGenie(t)
	require.NoError(t, g.Load("3E1-23B-6AE", "infinite lives"))

	assert.Equal(t, uint8(0x3e), g.Read(0x4123))
	assert.Equal(t, uint8(0x00), g.Read(0x4124))

	// compare value doesn't match bank 2
	g.Write(0x2000, 0x02)
	assert.Equal(t, uint8(0x22), g.Read(0x4123))

	g.Write(0x2000, 0x01)
	g.Disable("infinite lives")
	assert.Equal(t, uint8(0x21), g.Read(0x4123))
	g.Enable("infinite lives")
	assert.Equal(t, uint8(0x3e), g.Read(0x4123))
}

func TestGameGenie_NoCompare(t *testing.T) {
	g := newTestGenie(t)
	require.NoError(t, g.Load("3E1-23B", "any bank"))

	g.Write(0x2000, 0x02)
	assert.Equal(t, uint8(0x3e), g.Read(0x4123))
	assert.Equal(t, uint8(0xff), g.Read(0xA000), "RAM is never patched")
}

func TestGameGenie_ParseAndSave(t *testing.T) {
	file := `# infinite lives
3E1-23B-6AE

# skip intro
001-50F
`
	g := newTestGenie(t)
	require.NoError(t, g.Parse(strings.NewReader(file)))
	require.Len(t, g.Codes, 2)
	assert.Equal(t, "infinite lives", g.Codes[0].Name)
	assert.Equal(t, "skip intro", g.Codes[1].Name)
	assert.Equal(t, uint8(0x00), g.Read(0x0150))

	var buf bytes.Buffer
	require.NoError(t, g.Save(&buf))
	assert.Equal(t, "# infinite lives\n3E1-23B-6AE\n# skip intro\n001-50F\n", buf.String())

	err := newTestGenie(t).Parse(strings.NewReader("# broken\n12345678\n"))
	assert.ErrorIs(t, err, ErrInvalidCode)
	assert.ErrorContains(t, err, "line 2")
}
