//go:build tinygo && baremetal && picocalc

package hal

import "machine"

type picoCalcHAL struct {
	logger *uartLogger
	fb     Framebuffer
	pad    Gamepad
	t      *tinyGoTime
}

// New returns a PicoCalc HAL implementation (Pico/Pico2 on the PicoCalc carrier).
//
// UART: UART0 on GP0 (TX) / GP1 (RX), 115200 8N1.
func New() HAL {
	uart := machine.UART0
	uart.Configure(machine.UARTConfig{
		BaudRate: 115200,
		TX:       machine.GP0,
		RX:       machine.GP1,
	})

	var fb Framebuffer
	if d, err := newPicoCalcDisplay(); err == nil {
		fb = d
	} else {
		fb = newNullFramebuffer(ScreenWidth, ScreenHeight)
	}

	var pad Gamepad
	if p, err := newPicoCalcGamepad(); err == nil {
		pad = p
	} else {
		pad = stubGamepad{}
	}

	return &picoCalcHAL{
		logger: &uartLogger{uart: uart},
		fb:     fb,
		pad:    pad,
		t:      newTinyGoTime(),
	}
}

func (h *picoCalcHAL) Logger() Logger   { return h.logger }
func (h *picoCalcHAL) Display() Display { return tinyGoDisplay{fb: h.fb} }
func (h *picoCalcHAL) Input() Input     { return tinyGoInput{pad: h.pad} }
func (h *picoCalcHAL) Time() Time       { return h.t }
