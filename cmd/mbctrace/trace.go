package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/thelolagemann/gomeboy-mbc/internal/cartridge"
)

// replay runs the bus accesses in r against c, one per line:
//
//	W <address> <value>
//	R <address>
//
// Numbers are hex. Blank lines and lines starting with # are skipped. The
// result of every read is written to w.
func replay(c cartridge.Mapper, r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	for line := 1; scanner.Scan(); line++ {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		switch op := strings.ToUpper(fields[0]); {
		case op == "W" && len(fields) == 3:
			address, err := parseHex(fields[1], 16)
			if err != nil {
				return fmt.Errorf("line %d: %w", line, err)
			}
			value, err := parseHex(fields[2], 8)
			if err != nil {
				return fmt.Errorf("line %d: %w", line, err)
			}
			c.Write(uint16(address), uint8(value))
		case op == "R" && len(fields) == 2:
			address, err := parseHex(fields[1], 16)
			if err != nil {
				return fmt.Errorf("line %d: %w", line, err)
			}
			if _, err := fmt.Fprintf(w, "%04X %02X\n", address, c.Read(uint16(address))); err != nil {
				return err
			}
		default:
			return fmt.Errorf("line %d: malformed access %q", line, scanner.Text())
		}
	}
	return scanner.Err()
}

func parseHex(s string, bits int) (uint64, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "$")
	return strconv.ParseUint(s, 16, bits)
}
