//go:build !tinygo && !cgo

package hal

type hostGamepad struct {
	state Buttons
}

func newHostGamepad() *hostGamepad {
	return &hostGamepad{}
}

func (p *hostGamepad) Buttons() Buttons { return p.state }

func (p *hostGamepad) poll() {
	// No input support without the window backend.
}
