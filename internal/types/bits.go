// Package types holds the small building blocks shared by the cartridge
// packages: bit masks and the save state codec.
package types

// Bit masks for the 8-bit registers of the cartridge controllers.
const (
	Bit0 = 1 << iota // 0b0000_0001
	Bit1             // 0b0000_0010
	Bit2             // 0b0000_0100
	Bit3             // 0b0000_1000 rumble motor on MBC5
	Bit4             // 0b0001_0000
	Bit5             // 0b0010_0000
	Bit6             // 0b0100_0000 clock halt on MBC3
	Bit7             // 0b1000_0000 day counter carry on MBC3
)
