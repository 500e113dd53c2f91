package cheats

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrInvalidCode = errors.New("invalid Game Genie code")
	ErrNotROM      = errors.New("code does not patch ROM")
)

// A GameGenieCode is a six or nine digit hex code, formatted as ABC-DEF or
// ABC-DEF-GHI. AB is the new data, FCDE is the ROM address XORed by
// 0xF000, GI is the old data XORed by 0xBA and rotated left by 2, and H
// is unknown (possibly a checksum). Six digit codes patch the address
// regardless of the ROM bank mapped there.
type GameGenieCode struct {
	NewData uint8
	Address uint16
	OldData uint8
	Compare bool // OldData must match before the patch applies

	Name    string // name provided by the user
	Enabled bool
	rawCode string
}

// ParseGameGenie parses a single Game Genie code.
func ParseGameGenie(code string) (GameGenieCode, error) {
	var c GameGenieCode

	digits := strings.ReplaceAll(code, "-", "")
	switch {
	case len(code) == 7 && len(digits) == 6:
	case len(code) == 11 && len(digits) == 9:
		c.Compare = true
	default:
		return c, fmt.Errorf("%w: %q", ErrInvalidCode, code)
	}

	v, err := strconv.ParseUint(digits[0:2], 16, 8)
	if err != nil {
		return c, fmt.Errorf("%w: %q", ErrInvalidCode, code)
	}
	c.NewData = uint8(v)

	// reorganize CDEF to FCDE
	v, err = strconv.ParseUint(digits[5:6]+digits[2:5], 16, 16)
	if err != nil {
		return c, fmt.Errorf("%w: %q", ErrInvalidCode, code)
	}
	c.Address = uint16(v) ^ 0xF000
	if c.Address >= 0x8000 {
		return c, fmt.Errorf("%w: %q addresses %04X", ErrNotROM, code, c.Address)
	}

	if c.Compare {
		v, err = strconv.ParseUint(digits[6:7]+digits[8:9], 16, 8)
		if err != nil {
			return c, fmt.Errorf("%w: %q", ErrInvalidCode, code)
		}
		gi := uint8(v)
		c.OldData = (gi>>2 | gi<<6) ^ 0xBA
	}

	c.rawCode = code
	return c, nil
}

// String returns the code as it was parsed.
func (c GameGenieCode) String() string {
	return c.rawCode
}

// patches reports whether the code replaces value read from address.
func (c GameGenieCode) patches(address uint16, value uint8) bool {
	return c.Enabled && c.Address == address && (!c.Compare || c.OldData == value)
}
