package core

import (
	"strings"
	"sync"
	"time"
)

// Hardware barcode scanners emulate a keyboard: a burst of printable
// characters milliseconds apart, terminated by Enter. The ScanClassifier
// tells those bursts apart from human typing purely by inter-keystroke
// timing, so it can run as a global capture-phase listener without
// corrupting normal text entry.

const (
	// defaultScanTimeout is the widest inter-key gap still considered
	// scanner input while a text field has focus. Humans rarely type faster.
	defaultScanTimeout = 50 * time.Millisecond
	// defaultDebounce both resets a stale buffer and, once idle, flushes a
	// completed burst that arrived without a terminating Enter.
	defaultDebounce  = 100 * time.Millisecond
	defaultMinLength = 3
)

// KeyEvent is one keydown as seen by the adapter hosting the classifier.
// Key is either a single printable character or the literal "Enter".
// FromTextInput marks events whose target is a text input or textarea.
// Time is the adapter's clock so tests and replays own the timeline.
type KeyEvent struct {
	Key           string
	Ctrl          bool
	Alt           bool
	Meta          bool
	FromTextInput bool
	Time          time.Time
}

// ScannerConfig tunes the classifier. Zero values mean defaults.
type ScannerConfig struct {
	ScanTimeout time.Duration
	Debounce    time.Duration
	MinLength   int
}

// ScanClassifier accumulates keystroke bursts and emits completed scans
// through the onScan callback. Safe for use from the debounce timer
// goroutine alongside the event feed.
type ScanClassifier struct {
	mu          sync.Mutex
	onScan      func(string)
	enabled     bool
	buf         strings.Builder
	lastKey     time.Time
	timer       *time.Timer
	scanTimeout time.Duration
	debounce    time.Duration
	minLength   int
}

// NewScanClassifier builds an enabled classifier. cfg may be nil for
// defaults.
func NewScanClassifier(onScan func(string), cfg *ScannerConfig) *ScanClassifier {
	c := &ScanClassifier{
		onScan:      onScan,
		enabled:     true,
		scanTimeout: defaultScanTimeout,
		debounce:    defaultDebounce,
		minLength:   defaultMinLength,
	}
	if cfg != nil {
		if cfg.ScanTimeout > 0 {
			c.scanTimeout = cfg.ScanTimeout
		}
		if cfg.Debounce > 0 {
			c.debounce = cfg.Debounce
		}
		if cfg.MinLength > 0 {
			c.minLength = cfg.MinLength
		}
	}
	return c
}

// HandleKey feeds one keydown through the classifier. The return value is
// true when the event must be suppressed by the caller: an Enter that
// completed a scan, which would otherwise submit whatever form has focus.
func (c *ScanClassifier) HandleKey(ev KeyEvent) bool {
	c.mu.Lock()

	if !c.enabled {
		c.mu.Unlock()
		return false
	}

	gap := ev.Time.Sub(c.lastKey)
	c.lastKey = ev.Time
	c.stopTimerLocked()

	// A long gap means whatever was buffered is not part of this burst.
	if gap > c.debounce {
		c.buf.Reset()
	}

	if ev.Key == "Enter" {
		scan := c.takeBufferLocked()
		c.mu.Unlock()
		// Length is judged after trimming so trailing whitespace cannot
		// carry a too-short buffer over the threshold.
		if len(scan) >= c.minLength {
			c.emit(scan)
			return true
		}
		return false
	}

	// Only unmodified single printable characters participate.
	if len([]rune(ev.Key)) != 1 || ev.Ctrl || ev.Alt || ev.Meta {
		c.mu.Unlock()
		return false
	}

	// While a text field has focus, slow keys are the human typing into it.
	if ev.FromTextInput && gap > c.scanTimeout {
		c.buf.Reset()
		c.mu.Unlock()
		return false
	}

	c.buf.WriteString(ev.Key)
	c.timer = time.AfterFunc(c.debounce, c.flushIdle)
	c.mu.Unlock()
	return false
}

// flushIdle fires when a burst ends without Enter. Short buffers are typing
// noise and are discarded.
func (c *ScanClassifier) flushIdle() {
	c.mu.Lock()
	if !c.enabled {
		c.buf.Reset()
		c.mu.Unlock()
		return
	}
	scan := c.takeBufferLocked()
	c.mu.Unlock()
	if len(scan) >= c.minLength {
		c.emit(scan)
	}
}

// ClearBuffer drops any partial scan, e.g. when a modal takes over input.
func (c *ScanClassifier) ClearBuffer() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopTimerLocked()
	c.buf.Reset()
}

// SetEnabled suspends or resumes capture. Disabling clears the buffer.
func (c *ScanClassifier) SetEnabled(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.enabled = enabled
	if !enabled {
		c.stopTimerLocked()
		c.buf.Reset()
	}
}

func (c *ScanClassifier) stopTimerLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

func (c *ScanClassifier) takeBufferLocked() string {
	scan := strings.TrimSpace(c.buf.String())
	c.buf.Reset()
	return scan
}

// emit runs the callback outside the lock so handlers may call back into
// the classifier.
func (c *ScanClassifier) emit(scan string) {
	if scan != "" && c.onScan != nil {
		c.onScan(scan)
	}
}
