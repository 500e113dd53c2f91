package types

import (
	"encoding/binary"
	"errors"
)

// ErrStateTruncated is returned by State.Err when a read ran past the end
// of the underlying data.
var ErrStateTruncated = errors.New("state: truncated")

// State is a little endian snapshot of mapper state, used to save and
// restore a cartridge between runs.
type State struct {
	raw          []byte
	readPosition int
	err          error
}

// Stater is an interface that allows an object to be saved
// and loaded from a state.
type Stater interface {
	Load(*State) // Load the state of the object
	Save(*State) // Save the state of the object
}

// NewState creates a new, empty state.
func NewState() *State {
	return &State{raw: make([]byte, 0, 64)}
}

// StateFromBytes creates a new state from the given bytes.
func StateFromBytes(raw []byte) *State {
	return &State{raw: raw}
}

// ResetPosition rewinds the read position, allowing the state to be
// read from the beginning.
func (s *State) ResetPosition() {
	s.readPosition = 0
	s.err = nil
}

// Err returns ErrStateTruncated if any read ran out of data.
func (s *State) Err() error {
	return s.err
}

func (s *State) Write8(value uint8) {
	s.raw = append(s.raw, value)
}

func (s *State) Write16(value uint16) {
	s.raw = binary.LittleEndian.AppendUint16(s.raw, value)
}

func (s *State) Write32(value uint32) {
	s.raw = binary.LittleEndian.AppendUint32(s.raw, value)
}

func (s *State) Write64(value uint64) {
	s.raw = binary.LittleEndian.AppendUint64(s.raw, value)
}

func (s *State) WriteBool(value bool) {
	if value {
		s.Write8(1)
	} else {
		s.Write8(0)
	}
}

// WriteData appends data prefixed with its length.
func (s *State) WriteData(data []byte) {
	s.Write32(uint32(len(data)))
	s.raw = append(s.raw, data...)
}

// next returns the next n bytes, or nil if fewer remain.
func (s *State) next(n int) []byte {
	if s.readPosition+n > len(s.raw) {
		s.err = ErrStateTruncated
		s.readPosition = len(s.raw)
		return nil
	}
	b := s.raw[s.readPosition : s.readPosition+n]
	s.readPosition += n
	return b
}

func (s *State) Read8() uint8 {
	if b := s.next(1); b != nil {
		return b[0]
	}
	return 0
}

func (s *State) Read16() uint16 {
	if b := s.next(2); b != nil {
		return binary.LittleEndian.Uint16(b)
	}
	return 0
}

func (s *State) Read32() uint32 {
	if b := s.next(4); b != nil {
		return binary.LittleEndian.Uint32(b)
	}
	return 0
}

func (s *State) Read64() uint64 {
	if b := s.next(8); b != nil {
		return binary.LittleEndian.Uint64(b)
	}
	return 0
}

func (s *State) ReadBool() bool {
	return s.Read8() != 0
}

// ReadData reads a length prefixed block written by WriteData into p.
// Extra stored bytes are skipped, missing bytes leave p untouched.
func (s *State) ReadData(p []byte) {
	n := int(s.Read32())
	if b := s.next(n); b != nil {
		copy(p, b)
	}
}

func (s *State) Bytes() []byte {
	return s.raw
}
