package cartridge

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrShortROM is returned when a ROM is too small to contain a header.
	ErrShortROM = errors.New("cartridge: rom too short for header")
	// ErrUnsupportedType is returned for cartridge types without a mapper.
	ErrUnsupportedType = errors.New("cartridge: unsupported cartridge type")
)

type CartridgeType uint8 // CartridgeType represents the hardware present in a Cartridge.

const (
	ROM               CartridgeType = 0x00
	MBC1              CartridgeType = 0x01
	MBC1RAM           CartridgeType = 0x02
	MBC1RAMBATT       CartridgeType = 0x03
	MBC2              CartridgeType = 0x05
	MBC2BATT          CartridgeType = 0x06
	ROMRAM            CartridgeType = 0x08
	ROMRAMBATT        CartridgeType = 0x09
	MMM01             CartridgeType = 0x0B
	MMM01RAM          CartridgeType = 0x0C
	MMM01RAMBATT      CartridgeType = 0x0D
	MBC3TIMERBATT     CartridgeType = 0x0F
	MBC3TIMERRAMBATT  CartridgeType = 0x10
	MBC3              CartridgeType = 0x11
	MBC3RAM           CartridgeType = 0x12
	MBC3RAMBATT       CartridgeType = 0x13
	MBC5              CartridgeType = 0x19
	MBC5RAM           CartridgeType = 0x1A
	MBC5RAMBATT       CartridgeType = 0x1B
	MBC5RUMBLE        CartridgeType = 0x1C
	MBC5RUMBLERAM     CartridgeType = 0x1D
	MBC5RUMBLERAMBATT CartridgeType = 0x1E
	MBC7SENSORRUMBLE  CartridgeType = 0x22
	POCKETCAMERA      CartridgeType = 0xFC
	BANDAITAMA5       CartridgeType = 0xFD
	HUDSONHUC3        CartridgeType = 0xFE
	HUDSONHUC1        CartridgeType = 0xFF
)

var cartridgeTypeNames = map[CartridgeType]string{
	ROM:               "ROM",
	MBC1:              "MBC1",
	MBC1RAM:           "MBC1+RAM",
	MBC1RAMBATT:       "MBC1+RAM+BATTERY",
	MBC2:              "MBC2",
	MBC2BATT:          "MBC2+BATTERY",
	ROMRAM:            "ROM+RAM",
	ROMRAMBATT:        "ROM+RAM+BATTERY",
	MMM01:             "MMM01",
	MMM01RAM:          "MMM01+RAM",
	MMM01RAMBATT:      "MMM01+RAM+BATTERY",
	MBC3TIMERBATT:     "MBC3+TIMER+BATTERY",
	MBC3TIMERRAMBATT:  "MBC3+TIMER+RAM+BATTERY",
	MBC3:              "MBC3",
	MBC3RAM:           "MBC3+RAM",
	MBC3RAMBATT:       "MBC3+RAM+BATTERY",
	MBC5:              "MBC5",
	MBC5RAM:           "MBC5+RAM",
	MBC5RAMBATT:       "MBC5+RAM+BATTERY",
	MBC5RUMBLE:        "MBC5+RUMBLE",
	MBC5RUMBLERAM:     "MBC5+RUMBLE+RAM",
	MBC5RUMBLERAMBATT: "MBC5+RUMBLE+RAM+BATTERY",
	MBC7SENSORRUMBLE:  "MBC7+SENSOR+RUMBLE+RAM+BATTERY",
	POCKETCAMERA:      "POCKET CAMERA",
	BANDAITAMA5:       "BANDAI TAMA5",
	HUDSONHUC3:        "HuC3",
	HUDSONHUC1:        "HuC1+RAM+BATTERY",
}

func (t CartridgeType) String() string {
	if s, ok := cartridgeTypeNames[t]; ok {
		return s
	}
	return fmt.Sprintf("CartridgeType(%#02x)", uint8(t))
}

// Kind returns the mapper family used to emulate the cartridge type.
func (t CartridgeType) Kind() (Kind, bool) {
	switch t {
	case ROM, ROMRAM, ROMRAMBATT:
		return KindROM, true
	case MBC1, MBC1RAM, MBC1RAMBATT:
		return KindMBC1, true
	case MBC2, MBC2BATT:
		return KindMBC2, true
	case MBC3TIMERBATT, MBC3TIMERRAMBATT, MBC3, MBC3RAM, MBC3RAMBATT:
		return KindMBC3, true
	case MBC5, MBC5RAM, MBC5RAMBATT, MBC5RUMBLE, MBC5RUMBLERAM, MBC5RUMBLERAMBATT:
		return KindMBC5, true
	case MBC7SENSORRUMBLE:
		return KindMBC7, true
	case HUDSONHUC1:
		return KindHuC1, true
	case HUDSONHUC3:
		return KindHuC3, true
	}
	return 0, false
}

// HasRumble returns true if the cartridge declares a rumble motor.
func (t CartridgeType) HasRumble() bool {
	return t == MBC5RUMBLE || t == MBC5RUMBLERAM || t == MBC5RUMBLERAMBATT
}

// HasTimer returns true if the cartridge carries a real time clock.
func (t CartridgeType) HasTimer() bool {
	return t == MBC3TIMERBATT || t == MBC3TIMERRAMBATT || t == HUDSONHUC3
}

// HasBattery returns true if the cartridge RAM (and clock) survive power off.
func (t CartridgeType) HasBattery() bool {
	switch t {
	case MBC1RAMBATT, MBC2BATT, ROMRAMBATT, MMM01RAMBATT, MBC3TIMERBATT, MBC3TIMERRAMBATT,
		MBC3RAMBATT, MBC5RAMBATT, MBC5RUMBLERAMBATT, MBC7SENSORRUMBLE, HUDSONHUC3, HUDSONHUC1:
		return true
	}
	return false
}

// Header holds the parts of the cartridge header at $0100-$014F the
// mappers depend on.
type Header struct {
	Title          string        // $0134-$0143 Title of the game in uppercase ASCII.
	CartridgeType                // $0147 - Specifies the hardware present on a Cartridge.
	ROMSize        int           // $0148 - 32 KiB x (1<<value)
	RAMSize        int           // $0149 - Specifies how much RAM is present on the Cartridge, if any.
	HeaderChecksum uint8         // $014D - 8-Bit checksum of header bytes $0134-$014C
	GlobalChecksum uint16        // $014E-$014F 16-bit (big endian) checksum of Cartridge ROM
}

var ramSizes = map[uint8]int{
	0x00: 0,          // 0KiB
	0x01: 2 * 1024,   // 2KiB, unofficial
	0x02: 8 * 1024,   // 8KiB
	0x03: 32 * 1024,  // 32KiB
	0x04: 128 * 1024, // 128KiB
	0x05: 64 * 1024,  // 64KiB
}

// ParseHeader parses the cartridge header from rom.
func ParseHeader(rom []byte) (Header, error) {
	if len(rom) < 0x150 {
		return Header{}, fmt.Errorf("%w: %d bytes", ErrShortROM, len(rom))
	}

	h := Header{
		CartridgeType:  CartridgeType(rom[0x0147]),
		ROMSize:        (32 * 1024) << rom[0x0148],
		RAMSize:        ramSizes[rom[0x0149]],
		HeaderChecksum: rom[0x014D],
		GlobalChecksum: binary.BigEndian.Uint16(rom[0x014E:0x0150]),
	}

	// CGB cartridges reduced the title to 15 bytes
	if rom[0x0143]&0x80 != 0 {
		h.Title = string(rom[0x0134:0x0143])
	} else {
		h.Title = string(rom[0x0134:0x0144])
	}
	h.Title = strings.TrimRight(strings.Replace(h.Title, "\x00", "", -1), " ")

	if _, ok := h.Kind(); !ok {
		return h, fmt.Errorf("%w: %s", ErrUnsupportedType, h.CartridgeType)
	}

	return h, nil
}

// RAMBanks returns the number of 8KiB external RAM banks. MBC2 carries
// its 512x4 bit RAM on the controller itself, which is exposed as one bank.
func (h Header) RAMBanks() int {
	switch h.CartridgeType {
	case MBC2, MBC2BATT:
		return 1
	}
	return (h.RAMSize + 0x1fff) / 0x2000
}

// SaveSize returns the size of the battery save produced by
// Cartridge.SaveRAM.
func (h Header) SaveSize() int {
	size := h.RAMBanks() * ramBankSize
	if h.HasTimer() {
		size += ClockRecordSize
	}
	return size
}

// Rockman reports whether the cartridge is the unlicensed Rockman 8, whose
// board remaps MBC1 bank numbers above 15.
func (h Header) Rockman() bool {
	return h.Title == "ROCKMAN 99"
}

// String implements the fmt.Stringer interface.
func (h Header) String() string {
	return fmt.Sprintf("%s | (%dKiB|%dKiB) %s", h.Title, h.ROMSize/1024, h.RAMSize/1024, h.CartridgeType)
}
