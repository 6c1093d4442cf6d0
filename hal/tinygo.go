//go:build tinygo && baremetal && !picocalc

package hal

import "machine"

type tinyGoHAL struct {
	logger *uartLogger
	fb     Framebuffer
	pad    Gamepad
	t      *tinyGoTime
}

// New returns a generic baremetal HAL: serial logging and an in-memory
// framebuffer, for boards without a supported panel.
func New() HAL {
	uart := machine.UART0
	uart.Configure(machine.UARTConfig{BaudRate: 115200})

	return &tinyGoHAL{
		logger: &uartLogger{uart: uart},
		fb:     newNullFramebuffer(ScreenWidth, ScreenHeight),
		pad:    stubGamepad{},
		t:      newTinyGoTime(),
	}
}

func (h *tinyGoHAL) Logger() Logger   { return h.logger }
func (h *tinyGoHAL) Display() Display { return tinyGoDisplay{fb: h.fb} }
func (h *tinyGoHAL) Input() Input     { return tinyGoInput{pad: h.pad} }
func (h *tinyGoHAL) Time() Time       { return h.t }
