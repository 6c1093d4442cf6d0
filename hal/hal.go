package hal

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

// Console geometry and tick rate. The engine reads sizes from the
// framebuffer; these are the values every host implementation provides.
const (
	ScreenWidth  = 160
	ScreenHeight = 160
	TickHz       = 60
)

// PixelFormat defines the framebuffer pixel encoding.
type PixelFormat uint8

const (
	// PixelFormatIndexed4 is 4bpp palette indices, two pixels per byte,
	// row-major, low nibble = left pixel.
	PixelFormatIndexed4 PixelFormat = iota + 1
)

// RGB is one palette entry. Palette-to-colour mapping happens host-side;
// the engine only ever writes indices.
type RGB struct {
	R, G, B uint8
}

// PaletteSize is the number of palette entries on this console.
const PaletteSize = 16

// Framebuffer is the console pixel buffer plus a "present" hook.
type Framebuffer interface {
	Width() int
	Height() int
	Format() PixelFormat
	StrideBytes() int
	Buffer() []byte
	Palette() [PaletteSize]RGB
	SetPalette(p [PaletteSize]RGB)
	Clear(index uint8)
	Present() error
}

// Buttons is the gamepad state bitmask for one tick.
//
// The engine does its own edge detection; no debouncing is assumed from
// the host.
type Buttons uint8

const (
	ButtonA     Buttons = 1 << 0
	ButtonB     Buttons = 1 << 1
	ButtonLeft  Buttons = 1 << 4
	ButtonRight Buttons = 1 << 5
	ButtonUp    Buttons = 1 << 6
	ButtonDown  Buttons = 1 << 7
)

// Pressed reports whether every button in mask is held.
func (b Buttons) Pressed(mask Buttons) bool { return b&mask == mask }

// Gamepad provides the current button state (best-effort on each platform).
type Gamepad interface {
	Buttons() Buttons
}

// Display provides access to the framebuffer (if available).
type Display interface {
	Framebuffer() Framebuffer
}

// Input provides access to input devices (if available).
type Input interface {
	Gamepad() Gamepad
}

// Time provides a base tick stream.
//
// The tick duration is platform-defined; the frame loop steps once per tick.
type Time interface {
	Ticks() <-chan uint64
}

// HAL provides the only contact point between the engine and the outside world.
type HAL interface {
	Logger() Logger
	Display() Display
	Input() Input
	Time() Time
}
