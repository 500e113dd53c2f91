// Package ram provides the windowed memory that backs the cartridge
// address space.
package ram

// WindowSize is the granularity at which banks are mapped into the
// address space.
const WindowSize = 0x1000

// Windows splits the 16-bit address space into 16 windows of 4KiB, each
// of which may point into a ROM or RAM bank. Remapping a window only
// swaps a slice header, the underlying bank data is never copied.
type Windows struct {
	data [0x10][]byte
}

// NewWindows returns a Windows with nothing mapped.
func NewWindows() *Windows {
	return &Windows{}
}

// Map maps count consecutive windows starting at index to data, which
// must be at least count*WindowSize bytes long.
func (w *Windows) Map(index, count int, data []byte) {
	for i := 0; i < count; i++ {
		w.data[index+i] = data[i*WindowSize : (i+1)*WindowSize]
	}
}

// Mapped returns true if the window containing address points at memory.
func (w *Windows) Mapped(address uint16) bool {
	return w.data[address>>12] != nil
}

// Read returns the value at the given address, or 0xFF if the window
// containing it is unmapped.
func (w *Windows) Read(address uint16) uint8 {
	if d := w.data[address>>12]; d != nil {
		return d[address&0xfff]
	}
	return 0xff
}

// Write writes the value to the given address. Writes to unmapped
// windows are dropped.
func (w *Windows) Write(address uint16, value uint8) {
	if d := w.data[address>>12]; d != nil {
		d[address&0xfff] = value
	}
}
