// Package cheats patches cartridge ROM reads with Game Genie codes.
package cheats

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/thelolagemann/gomeboy-mbc/internal/cartridge"
	"github.com/thelolagemann/gomeboy-mbc/pkg/log"
)

// GameGenie sits between the bus and a cartridge, replacing the values
// read from ROM addresses its enabled codes patch.
type GameGenie struct {
	cartridge.Mapper

	Codes []GameGenieCode
	log   log.Logger
}

var _ cartridge.Mapper = (*GameGenie)(nil)

// NewGameGenie wraps m.
func NewGameGenie(m cartridge.Mapper, l log.Logger) *GameGenie {
	return &GameGenie{Mapper: m, log: l}
}

// Read returns the value at address, patched by the first matching code.
func (g *GameGenie) Read(address uint16) uint8 {
	value := g.Mapper.Read(address)
	if address >= 0x8000 {
		return value
	}
	for _, c := range g.Codes {
		if c.patches(address, value) {
			return c.NewData
		}
	}
	return value
}

// Load parses code and adds it, enabled, under name.
func (g *GameGenie) Load(code, name string) error {
	c, err := ParseGameGenie(code)
	if err != nil {
		return err
	}
	c.Name = name
	c.Enabled = true
	g.Codes = append(g.Codes, c)

	g.log.Debugf("parsed Game Genie code %s (%s): %04X = %02X", code, name, c.Address, c.NewData)
	return nil
}

// Enable enables every code loaded under name.
func (g *GameGenie) Enable(name string) {
	g.setEnabled(name, true)
}

// Disable disables every code loaded under name.
func (g *GameGenie) Disable(name string) {
	g.setEnabled(name, false)
}

func (g *GameGenie) setEnabled(name string, enabled bool) {
	for i := range g.Codes {
		if g.Codes[i].Name == name {
			g.Codes[i].Enabled = enabled
		}
	}
}

// LoadFile loads the cheat file at filename.
func (g *GameGenie) LoadFile(filename string) error {
	f, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := g.Parse(f); err != nil {
		return fmt.Errorf("%s: %w", filename, err)
	}
	return nil
}

// Parse loads the codes in a cheat file. The file format is as follows:
//
//	# Cheat Name
//	ABC-DEF-GHI
//	ABC-DEF
//
// Codes take the name of the comment preceding them. Blank lines are
// skipped.
func (g *GameGenie) Parse(r io.Reader) error {
	scanner := bufio.NewScanner(r)

	var name string
	for line := 1; scanner.Scan(); line++ {
		text := strings.TrimSpace(scanner.Text())
		switch {
		case text == "":
		case strings.HasPrefix(text, "#"):
			name = strings.TrimSpace(text[1:])
		default:
			if err := g.Load(text, name); err != nil {
				return fmt.Errorf("line %d: %w", line, err)
			}
		}
	}
	return scanner.Err()
}

// Save writes the loaded codes in the cheat file format.
func (g *GameGenie) Save(w io.Writer) error {
	var name string
	for i, c := range g.Codes {
		if i == 0 || c.Name != name {
			name = c.Name
			if _, err := fmt.Fprintf(w, "# %s\n", name); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w, c); err != nil {
			return err
		}
	}
	return nil
}
