//go:build tinygo && !baremetal

package hal

import "time"

// tinyGoHostHAL is used by `tinygo run` targets like linux/wasm where there
// is no MCU pin mapping and no window backend.
type tinyGoHostHAL struct {
	logger *tinyGoHostLogger
	fb     *nullFramebuffer
	t      *tinyGoHostTime
}

// New returns a TinyGo-on-host HAL implementation.
func New() HAL {
	return &tinyGoHostHAL{
		logger: &tinyGoHostLogger{},
		fb:     newNullFramebuffer(ScreenWidth, ScreenHeight),
		t:      newTinyGoHostTime(),
	}
}

func (h *tinyGoHostHAL) Logger() Logger   { return h.logger }
func (h *tinyGoHostHAL) Display() Display { return tinyGoHostDisplay{fb: h.fb} }
func (h *tinyGoHostHAL) Input() Input     { return tinyGoHostInput{} }
func (h *tinyGoHostHAL) Time() Time       { return h.t }

type tinyGoHostDisplay struct {
	fb Framebuffer
}

func (d tinyGoHostDisplay) Framebuffer() Framebuffer { return d.fb }

type tinyGoHostInput struct{}

func (tinyGoHostInput) Gamepad() Gamepad { return tinyGoHostGamepad{} }

type tinyGoHostGamepad struct{}

func (tinyGoHostGamepad) Buttons() Buttons { return 0 }

type tinyGoHostLogger struct{}

func (l *tinyGoHostLogger) WriteLineString(s string) { println(s) }
func (l *tinyGoHostLogger) WriteLineBytes(b []byte)  { println(string(b)) }

type tinyGoHostTime struct {
	ch  chan uint64
	seq uint64
}

func newTinyGoHostTime() *tinyGoHostTime {
	t := &tinyGoHostTime{ch: make(chan uint64, 16)}
	go func() {
		ticker := time.NewTicker(time.Second / TickHz)
		defer ticker.Stop()
		for range ticker.C {
			t.seq++
			select {
			case t.ch <- t.seq:
			default:
			}
		}
	}()
	return t
}

func (t *tinyGoHostTime) Ticks() <-chan uint64 { return t.ch }
