package log

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewWithOutput(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithOutput(&buf)

	l.Errorf("unhandled HuC3 command %02x", 0x70)
	l.Debugf("rom bank %d", 3)

	out := buf.String()
	assert.Contains(t, out, "level=error")
	assert.Contains(t, out, "msg=unhandled HuC3 command 70")
	assert.Contains(t, out, "msg=rom bank 3")
	assert.NotContains(t, out, "time=")
}

func TestNullLogger(t *testing.T) {
	l := NewNullLogger()
	l.Infof("%d", 1)
	l.Errorf("%d", 2)
	l.Debugf("%d", 3)
}
