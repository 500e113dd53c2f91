package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thelolagemann/gomeboy-mbc/internal/cartridge"
	"github.com/thelolagemann/gomeboy-mbc/pkg/log"
)

func writeROM(t *testing.T, typ cartridge.CartridgeType) string {
	t.Helper()
	rom := make([]byte, 4*0x4000)
	for bank := 0; bank < 4; bank++ {
		rom[bank*0x4000] = uint8(bank)
	}
	copy(rom[0x0134:], "TRACE")
	rom[0x0147] = uint8(typ)
	rom[0x0148] = 0x01
	rom[0x0149] = 0x03

	path := filepath.Join(t.TempDir(), "trace.gb")
	require.NoError(t, os.WriteFile(path, rom, 0644))
	return path
}

func TestRun(t *testing.T) {
	cfg := config{rom: writeROM(t, cartridge.MBC3TIMERRAMBATT), saveFolder: t.TempDir()}

	trace := `
# switch to bank 2
W 2000 02
R 4000
W 0000 0A
W 4000 01
W A000 5A
r 0xA000
`
	var out bytes.Buffer
	require.NoError(t, run(cfg, log.NewNullLogger(), strings.NewReader(trace), &out))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "TRACE |"))
	assert.Equal(t, "4000 02", lines[1])
	assert.Equal(t, "A000 5A", lines[2])

	saves, err := filepath.Glob(filepath.Join(cfg.saveFolder, "TRACE", "*.sav"))
	require.NoError(t, err)
	require.Len(t, saves, 1)
	data, err := os.ReadFile(saves[0])
	require.NoError(t, err)
	assert.Len(t, data, 4*0x2000+cartridge.ClockRecordSize)
	assert.Equal(t, uint8(0x5a), data[0x2000])

	// RAM is restored from the save on the next run
	out.Reset()
	cfg.autosave = true
	require.NoError(t, run(cfg, log.NewNullLogger(), strings.NewReader("W 0000 0A\nW 4000 01\nR A000\n"), &out))
	assert.True(t, strings.HasSuffix(out.String(), "A000 5A\n"))
}

func TestRun_Cheats(t *testing.T) {
	cheatFile := filepath.Join(t.TempDir(), "cheats.txt")
	require.NoError(t, os.WriteFile(cheatFile, []byte("# bank 1\n990-00B\n"), 0644))

	cfg := config{rom: writeROM(t, cartridge.MBC1), cheats: cheatFile}
	var out bytes.Buffer
	require.NoError(t, run(cfg, log.NewNullLogger(), strings.NewReader("R 4000\nR 4001\n"), &out))
	assert.True(t, strings.HasSuffix(out.String(), "4000 99\n4001 00\n"))
}

func TestRun_Errors(t *testing.T) {
	var out bytes.Buffer
	err := run(config{rom: filepath.Join(t.TempDir(), "missing.gb")}, log.NewNullLogger(), strings.NewReader(""), &out)
	assert.Error(t, err)

	err = run(config{rom: writeROM(t, cartridge.MMM01)}, log.NewNullLogger(), strings.NewReader(""), &out)
	assert.ErrorIs(t, err, cartridge.ErrUnsupportedType)
}

func TestReplay_Malformed(t *testing.T) {
	c, err := cartridge.NewWithHeader(make([]byte, 0x8000), cartridge.Header{CartridgeType: cartridge.MBC1})
	require.NoError(t, err)

	for _, trace := range []string{
		"X 2000",
		"W 2000",
		"W 12345 01",
		"W 2000 100",
		"R zz",
	} {
		err := replay(c, strings.NewReader("R 0000\n"+trace), &bytes.Buffer{})
		assert.ErrorContains(t, err, "line 2", trace)
	}
}
