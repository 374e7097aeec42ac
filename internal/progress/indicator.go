// Package progress shows feedback while the terminal waits on the assistant.
package progress

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"
)

// Indicator signals that a long operation is under way until Stop is called.
type Indicator interface {
	Start(message string)
	Stop()
}

// NewIndicator returns a Spinner for interactive use, or a CIIndicator if
// the CI environment variable is set.
func NewIndicator(w io.Writer) Indicator {
	if os.Getenv("CI") != "" || os.Getenv("GITHUB_ACTIONS") != "" {
		return &CIIndicator{w: w}
	}
	return NewSpinner(w)
}

// Spinner animates an indeterminate progress bar.
type Spinner struct {
	w        io.Writer
	interval time.Duration

	mu   sync.Mutex
	bar  *progressbar.ProgressBar
	stop chan struct{}
	done chan struct{}
}

func NewSpinner(w io.Writer) *Spinner {
	return &Spinner{w: w, interval: 100 * time.Millisecond}
}

// Start shows the spinner. A second Start while running only updates the
// message.
func (s *Spinner) Start(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.bar != nil {
		s.bar.Describe(message)
		return
	}

	s.bar = progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(s.w),
		progressbar.OptionSetDescription(message),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionClearOnFinish(),
	)
	s.stop = make(chan struct{})
	s.done = make(chan struct{})
	go s.spin(s.bar, s.stop, s.done)
}

func (s *Spinner) spin(bar *progressbar.ProgressBar, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			_ = bar.Add(1)
		}
	}
}

// Stop clears the spinner. It is safe to call more than once.
func (s *Spinner) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.bar == nil {
		return
	}
	close(s.stop)
	<-s.done
	_ = s.bar.Finish()
	s.bar = nil
}

// CIIndicator prints start and finish lines suitable for CI logs.
type CIIndicator struct {
	w       io.Writer
	started time.Time
	running bool
}

func (c *CIIndicator) Start(message string) {
	c.started = time.Now()
	c.running = true
	fmt.Fprintf(c.w, "%s...\n", message)
}

func (c *CIIndicator) Stop() {
	if !c.running {
		return
	}
	c.running = false
	fmt.Fprintf(c.w, "Done in %s\n", time.Since(c.started).Round(time.Millisecond))
}
