package progress

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

func TestSpinnerStops(t *testing.T) {
	defer goleak.VerifyNone(t)

	var buf bytes.Buffer
	s := NewSpinner(&buf)
	s.interval = time.Millisecond

	s.Stop()
	s.Start("Asking Nebula AI")
	s.Start("Still asking")
	time.Sleep(10 * time.Millisecond)
	s.Stop()
	s.Stop()

	assert.NotEmpty(t, buf.String())
}

func TestCIIndicator(t *testing.T) {
	var buf bytes.Buffer
	c := &CIIndicator{w: &buf}

	c.Stop()
	assert.Empty(t, buf.String())

	c.Start("Asking Nebula AI")
	c.Stop()
	c.Stop()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 2)
	assert.Equal(t, "Asking Nebula AI...", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "Done in "))
}

func TestNewIndicatorHonoursCI(t *testing.T) {
	t.Setenv("CI", "true")
	_, ok := NewIndicator(&bytes.Buffer{}).(*CIIndicator)
	assert.True(t, ok)

	t.Setenv("CI", "")
	t.Setenv("GITHUB_ACTIONS", "")
	_, ok = NewIndicator(&bytes.Buffer{}).(*Spinner)
	assert.True(t, ok)
}
