package ssd1322

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"

	"github.com/birdistheword96/ssd1322/command"
	"github.com/birdistheword96/ssd1322/image4bit"
)

// Orientation selects how the image maps onto the panel. Each orientation is
// a fixed remapping preset; SetOrientation keeps the stored value and the
// controller's remap register in lockstep.
type Orientation uint8

const (
	// Standard is the default panel mapping.
	Standard Orientation = iota
	// Inverted rotates the image by 180°.
	Inverted
)

// remap returns the remapping preset for the orientation. Both presets use
// horizontal increment and the dual-progressive COM layout; they differ in
// column remap direction and COM scan direction.
func (o Orientation) remap() command.SetRemapping {
	if o == Inverted {
		return command.SetRemapping{
			Increment: command.Horizontal,
			Column:    command.ColumnReverse,
			Nibble:    command.NibbleForward,
			ComScan:   command.RowZeroFirst,
			Layout:    command.DualProgressive,
		}
	}
	return command.SetRemapping{
		Increment: command.Horizontal,
		Column:    command.ColumnForward,
		Nibble:    command.NibbleForward,
		ComScan:   command.RowZeroLast,
		Layout:    command.DualProgressive,
	}
}

// resetStep is the pause between steps of the power-on reset choreography.
// The datasheet minimums are 100µs for the reset pulse, 100µs before VCC is
// applied and 1ms for the internal VDD to settle; 1ms per step clears all of
// them.
const resetStep = time.Millisecond

// Opts is the configuration for the SSD1322 display.
type Opts struct {
	// Display dimensions in pixels.
	W int // Width (default: 256, must be even and ≤480)
	H int // Height (default: 64, must be ≤128)

	// InvertColors renders the RAM contents with grayscale levels inverted.
	InvertColors bool

	// Orientation is the panel mapping applied at the end of Init.
	Orientation Orientation

	// Sleep is the delay hook used during HardReset. nil means time.Sleep.
	Sleep func(time.Duration)
}

// Dev is the device handle for the SSD1322 display.
//
// A Dev exclusively owns its transport and pins: the data/command pin's
// level is shared state across consecutive writes, so no other code may
// drive the bus while the Dev exists, and methods must not be called
// concurrently.
type Dev struct {
	// Communication
	c     conn.Conn   // SPI connection
	dc    gpio.PinOut // Data/Command pin
	rst   gpio.PinOut // Reset pin
	power gpio.PinOut // Power-enable pin
	sleep func(time.Duration)

	// Display geometry
	rect image.Rectangle

	// State mirroring the last commands sent
	inverted    bool
	orientation Orientation
	halted      bool

	next *image4bit.HorizontalNibble // for lazy Draw buffering
}

// New creates a SSD1322 device on an already configured connection.
//
// The device is not touched: the controller is in an undefined electrical
// state until HardReset and Init have run, in that order. opts can be nil to
// use defaults (256x64, standard orientation).
func New(c conn.Conn, dc, rst, power gpio.PinOut, opts *Opts) (*Dev, error) {
	if opts == nil {
		opts = &Opts{W: 256, H: 64}
	}

	if opts.W <= 0 || opts.W%2 != 0 || opts.W > command.NumPixelCols {
		return nil, errors.New("ssd1322: width must be even and between 2 and 480")
	}
	if opts.H <= 0 || opts.H > command.NumPixelRows {
		return nil, errors.New("ssd1322: height must be between 1 and 128")
	}

	sleep := opts.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}

	return &Dev{
		c:           c,
		dc:          dc,
		rst:         rst,
		power:       power,
		sleep:       sleep,
		rect:        image.Rect(0, 0, opts.W, opts.H),
		inverted:    opts.InvertColors,
		orientation: opts.Orientation,
	}, nil
}

// NewSPI creates a SSD1322 device connected via SPI.
//
// The SPI port is configured for 10MHz, Mode0 (CPOL=0, CPHA=0), 8-bit
// transfers. The dc, rst and power GPIO pins must be configured as outputs.
func NewSPI(p spi.Port, dc, rst, power gpio.PinOut, opts *Opts) (*Dev, error) {
	// SSD1322 supports Mode0 or Mode3; Mode0 at 10MHz is conservative
	// (up to 20MHz supported).
	c, err := p.Connect(10*physic.MegaHertz, spi.Mode0, 8)
	if err != nil {
		return nil, err
	}
	return New(c, dc, rst, power, opts)
}

// HardReset performs the power-on reset sequence from section 8.9 of the
// SSD1322 manual: pulse RES# low, release it, then enable VCC, pausing
// between each step. It must run before Init and may be re-run at any time
// to recover from a failed or cancelled transfer.
func (d *Dev) HardReset() error {
	d.sleep(resetStep)
	if err := d.rst.Out(gpio.Low); err != nil {
		return &PinError{Pin: "reset", Err: err}
	}
	d.sleep(resetStep)
	if err := d.rst.Out(gpio.High); err != nil {
		return &PinError{Pin: "reset", Err: err}
	}
	d.sleep(resetStep)
	if err := d.power.Out(gpio.High); err != nil {
		return &PinError{Pin: "power", Err: err}
	}
	d.sleep(resetStep)
	d.halted = false
	return nil
}

// Init hard-resets the controller and sends the default initialization
// sequence, then applies the configured orientation.
//
// The order is protocol-mandated: the command lock is released first, sleep
// mode is entered before the configuration commands and left only after all
// of them have been issued. The first failing step aborts the rest.
func (d *Dev) Init() error {
	if err := d.HardReset(); err != nil {
		return err
	}

	mode := command.Normal
	if d.inverted {
		mode = command.Inverse
	}

	cmds := []command.Command{
		command.SetCommandLock{Locked: false},
		command.SetSleepMode{Enabled: true},
		Standard.remap(),
		command.SetStartLine{Line: 0},
		command.SetDisplayOffset{Line: 0},
		command.SetDisplayMode{Mode: mode},
		command.FunctionSelect{Source: command.InternalVDD},
		command.SetPhaseLengths{Phase1: 5, Phase2: 15},
		command.SetClockFoscDivset{Fosc: 10, Divset: 1},
		command.SetDisplayEnhancements{ExternalVSL: true, EnhancedLowGS: true},
		command.SetSecondPrechargePeriod{Period: 8},
		command.SetDefaultGrayScaleTable{},
		command.SetPreChargeVoltage{Voltage: 31},
		command.SetComDeselectVoltage{Voltage: 7},
		command.SetContrastCurrent{Current: 0x3C},
		command.SetMasterContrast{Contrast: 0x0A},
		command.SetMuxRatio{Ratio: 0x3F},
		command.DisablePartialDisplay{},
		command.SetSleepMode{Enabled: false},
	}
	for _, c := range cmds {
		if err := d.writeCommand(c); err != nil {
			return err
		}
	}

	return d.SetOrientation(d.orientation)
}

// SetOrientation stores the orientation and re-issues the matching remapping
// command. It may be called at any time after Init without re-running the
// full initialization sequence.
func (d *Dev) SetOrientation(orientation Orientation) error {
	d.orientation = orientation
	return d.writeCommand(orientation.remap())
}

// SetAddressWindow selects the rectangular display RAM region that following
// data writes will fill. The window is centered on the controller's
// 480-column RAM, so narrower panels land in the middle of each row.
func (d *Dev) SetAddressWindow(startX, startY, width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("ssd1322: address window %dx%d at (%d,%d): %w",
			width, height, startX, startY, command.ErrOutOfRange)
	}

	offset := (command.NumPixelCols - width + startX) / 2
	colStart := offset / 4
	colEnd := colStart + width/4 - 1
	rowStart := startY
	rowEnd := startY + height - 1

	if colStart < 0 || colEnd > command.BufColMax ||
		rowStart < 0 || rowEnd > command.PixelRowMax {
		return fmt.Errorf("ssd1322: address window %dx%d at (%d,%d): %w",
			width, height, startX, startY, command.ErrOutOfRange)
	}

	if err := d.writeCommand(command.SetColumnAddress{Start: uint8(colStart), End: uint8(colEnd)}); err != nil {
		return err
	}
	return d.writeCommand(command.SetRowAddress{Start: uint8(rowStart), End: uint8(rowEnd)})
}

// WriteData streams raw bytes into display RAM. The caller must have set the
// address window and issued a write-RAM command beforehand.
func (d *Dev) WriteData(p []byte) error {
	if err := d.dc.Out(gpio.High); err != nil {
		return &PinError{Pin: "dc", Err: err}
	}
	if err := d.c.Tx(p, nil); err != nil {
		return &CommError{Err: err}
	}
	return nil
}

// FlushBuffer issues a write-RAM command and streams the packed buffer. The
// caller must have set the address window beforehand.
func (d *Dev) FlushBuffer(p []byte) error {
	if err := d.writeCommand(command.WriteRAM{}); err != nil {
		return err
	}
	return d.WriteData(p)
}

// FlushFrame transfers a whole frame: it sets the address window to the
// frame's bounds at the origin, issues write-RAM and streams the packed
// pixel data in a single transport write. This is the steady-state per-frame
// operation and performs no allocation.
func (d *Dev) FlushFrame(f *image4bit.HorizontalNibble) error {
	if d.halted {
		return ErrHalted
	}
	if err := d.SetAddressWindow(0, 0, f.Rect.Dx(), f.Rect.Dy()); err != nil {
		return err
	}
	return d.FlushBuffer(f.Pix)
}

// UploadGrayScaleTable uploads a custom grayscale gamma table (15 entries,
// GS1..GS15) and enables it. Init restores the factory table.
func (d *Dev) UploadGrayScaleTable(levels []uint8) error {
	op, data, err := command.SetGrayScaleTable{Levels: levels}.EncodeBuf()
	if err != nil {
		return err
	}
	if err := d.dc.Out(gpio.Low); err != nil {
		return &PinError{Pin: "dc", Err: err}
	}
	if err := d.c.Tx([]byte{op}, nil); err != nil {
		return &CommError{Err: err}
	}
	if err := d.WriteData(data); err != nil {
		return err
	}
	return d.writeCommand(command.EnableGrayScaleTable{})
}

// SetContrast sets the contrast current (0-255).
func (d *Dev) SetContrast(contrast byte) error {
	if d.halted {
		return ErrHalted
	}
	return d.writeCommand(command.SetContrastCurrent{Current: contrast})
}

// SetMasterContrast scales all grayscale levels by level/16 (0-15, 15 is
// normal contrast).
func (d *Dev) SetMasterContrast(level byte) error {
	if d.halted {
		return ErrHalted
	}
	return d.writeCommand(command.SetMasterContrast{Contrast: level})
}

// Invert renders the display with grayscale levels inverted (level 0 becomes
// 15 and vice versa) without touching the RAM contents.
func (d *Dev) Invert(invert bool) error {
	if d.halted {
		return ErrHalted
	}
	mode := command.Normal
	if invert {
		mode = command.Inverse
	}
	d.inverted = invert
	return d.writeCommand(command.SetDisplayMode{Mode: mode})
}

// Sleep powers the display multiplexer and drivers off or on. RAM contents
// survive sleep.
func (d *Dev) Sleep(enabled bool) error {
	return d.writeCommand(command.SetSleepMode{Enabled: enabled})
}

// Halt puts the display to sleep and refuses further drawing operations
// until HardReset and Init run again. It implements conn.Resource.
func (d *Dev) Halt() error {
	d.halted = true
	return d.writeCommand(command.SetSleepMode{Enabled: true})
}

// ColorModel returns the color model of the display.
func (d *Dev) ColorModel() color.Model {
	return image4bit.Gray4Model
}

// Bounds returns the image bounds of the display.
func (d *Dev) Bounds() image.Rectangle {
	return d.rect
}

// Draw draws an image onto the display. When src is a full-frame
// HorizontalNibble its packed buffer is streamed directly; other sources are
// composited into an internal frame first. The whole frame is transferred
// either way.
func (d *Dev) Draw(dst image.Rectangle, src image.Image, sp image.Point) error {
	if d.halted {
		return ErrHalted
	}

	dst = dst.Intersect(d.rect)
	if dst.Empty() {
		return nil
	}

	// Fast path: full-frame source already in the controller's layout.
	if srcImg, ok := src.(*image4bit.HorizontalNibble); ok {
		if dst == d.rect && sp == (image.Point{}) && srcImg.Rect == d.rect {
			return d.FlushFrame(srcImg)
		}
	}

	if d.next == nil {
		d.next = image4bit.NewHorizontalNibble(d.rect)
	}
	draw.Draw(d.next, dst, src, sp, draw.Src)
	return d.FlushFrame(d.next)
}

// String returns a string representation of the device.
func (d *Dev) String() string {
	return fmt.Sprintf("ssd1322.Dev{%dx%d}", d.rect.Dx(), d.rect.Dy())
}

// writeCommand encodes and transmits one command using the two-phase
// framing: opcode with DC low, then exactly the encoded parameter bytes with
// DC high. Encoding errors are returned before anything reaches the bus.
func (d *Dev) writeCommand(c command.Command) error {
	cd, err := c.Encode()
	if err != nil {
		return err
	}

	if err := d.dc.Out(gpio.Low); err != nil {
		return &PinError{Pin: "dc", Err: err}
	}
	if err := d.c.Tx([]byte{cd.Cmd}, nil); err != nil {
		return &CommError{Err: err}
	}

	if cd.Len > 0 {
		if err := d.dc.Out(gpio.High); err != nil {
			return &PinError{Pin: "dc", Err: err}
		}
		if err := d.c.Tx(cd.Args[:cd.Len], nil); err != nil {
			return &CommError{Err: err}
		}
	}
	return nil
}
