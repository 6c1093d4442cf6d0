//go:build tinygo && baremetal && picocalc

package hal

import (
	"fmt"
	"machine"
	"time"
)

const (
	picoCalcKbdAddr uint16 = 0x1F
	picoCalcKbdCmd         = 0x09
)

const (
	picoCalcKeyEnter byte = 0x0D
	picoCalcKeyEsc   byte = 0xB1
	picoCalcKeyLeft  byte = 0xB4
	picoCalcKeyRight byte = 0xB7
	picoCalcKeyUp    byte = 0xB5
	picoCalcKeyDown  byte = 0xB6
)

// i2cGamepad folds PicoCalc keyboard press/release events into the gamepad
// bitmask: arrows = d-pad, enter = A, esc = B.
type i2cGamepad struct {
	i2c   *machine.I2C
	write [1]byte
	read  [2]byte

	state Buttons
}

func newPicoCalcGamepad() (*i2cGamepad, error) {
	write := [1]byte{picoCalcKbdCmd}

	// Prefer I2C1 (original PicoCalc wiring), but some TinyGo targets expose only I2C0.
	for _, bus := range []*machine.I2C{machine.I2C1, machine.I2C0} {
		if bus == nil {
			continue
		}
		for _, freq := range []uint32{100_000, 400_000} {
			if err := bus.Configure(machine.I2CConfig{
				SCL:       machine.GP7,
				SDA:       machine.GP6,
				Frequency: freq,
			}); err != nil {
				continue
			}

			p := &i2cGamepad{i2c: bus, write: write}

			// Probe the device to ensure the selected I2C instance works.
			// On boot the keyboard MCU can be slow to respond, so retry briefly.
			const probeTries = 50
			for i := 0; i < probeTries; i++ {
				if err := p.i2c.Tx(picoCalcKbdAddr, p.write[:], p.read[:]); err == nil {
					return p, nil
				}
				time.Sleep(10 * time.Millisecond)
			}
		}
	}

	return nil, fmt.Errorf("gamepad: I2C unavailable")
}

// Buttons drains pending keyboard events and returns the resulting mask.
// Called once per tick from the frame loop.
func (p *i2cGamepad) Buttons() Buttons {
	for i := 0; i < 8; i++ {
		if err := p.i2c.Tx(picoCalcKbdAddr, p.write[:], p.read[:]); err != nil {
			break
		}
		if p.read[0] == 0 && p.read[1] == 0 {
			break
		}
		mask := buttonFor(p.read[1])
		switch p.read[0] {
		case 0x01: // key down
			p.state |= mask
		case 0x03: // key up
			p.state &^= mask
		}
	}
	return p.state
}

func buttonFor(code byte) Buttons {
	switch code {
	case picoCalcKeyUp:
		return ButtonUp
	case picoCalcKeyDown:
		return ButtonDown
	case picoCalcKeyLeft:
		return ButtonLeft
	case picoCalcKeyRight:
		return ButtonRight
	case picoCalcKeyEnter, '\r', '\n':
		return ButtonA
	case picoCalcKeyEsc, ' ':
		return ButtonB
	default:
		return 0
	}
}
