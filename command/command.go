// Package command encodes SSD1322 controller commands into their wire format.
//
// Every supported controller operation is a small typed value implementing
// Command. Encoding is pure: it validates the operation's parameters against
// the controller's documented limits and produces the opcode plus up to two
// parameter bytes. Nothing here performs I/O; the driver package decides how
// the bytes reach the bus.
//
// The opcode table and bit packings follow the SSD1322 datasheet and must be
// reproduced byte-for-byte for hardware compatibility.
package command

import "errors"

// Display RAM geometry of the SSD1322.
const (
	// NumPixelCols is the display RAM width in pixels.
	NumPixelCols = 480
	// NumPixelRows is the display RAM height in pixels.
	NumPixelRows = 128
	// NumBufCols is the number of display RAM column addresses. Each column
	// address covers a horizontal group of 4 pixels (2 bytes).
	NumBufCols = NumPixelCols / 4
	// PixelColMax is the highest valid pixel column index.
	PixelColMax = NumPixelCols - 1
	// PixelRowMax is the highest valid pixel row index.
	PixelRowMax = NumPixelRows - 1
	// BufColMax is the highest valid display RAM column address.
	BufColMax = NumBufCols - 1
)

// GrayScaleTableLen is the number of entries (GS1..GS15) in a custom
// grayscale gamma table.
const GrayScaleTableLen = 15

// Encoding errors.
var (
	// ErrOutOfRange is returned when a command parameter is outside the
	// controller's documented range.
	ErrOutOfRange = errors.New("command: parameter out of range")

	// ErrBadTableLength is returned when a grayscale table payload does not
	// contain exactly GrayScaleTableLen entries.
	ErrBadTableLength = errors.New("command: grayscale table must have 15 entries")
)

// Data is an encoded command: one opcode byte and up to two parameter bytes.
// Only Args[:Len] is meaningful; trailing bytes must not be transmitted.
type Data struct {
	Cmd  byte
	Args [2]byte
	Len  int
}

// A Command encodes itself into the controller's wire format.
type Command interface {
	Encode() (Data, error)
}

func cmd0(op byte) (Data, error) {
	return Data{Cmd: op}, nil
}

func cmd1(op, a0 byte) (Data, error) {
	return Data{Cmd: op, Args: [2]byte{a0}, Len: 1}, nil
}

func cmd2(op, a0, a1 byte) (Data, error) {
	return Data{Cmd: op, Args: [2]byte{a0, a1}, Len: 2}, nil
}

// IncrementAxis selects how the address pointer advances while image data is
// written: along columns (left to right, then top to bottom) or along rows.
type IncrementAxis uint8

const (
	// Horizontal increments the column address first.
	Horizontal IncrementAxis = iota
	// Vertical increments the row address first.
	Vertical
)

// ColumnRemap controls the direction in which display RAM column addresses
// map onto groups of pixel column driver lines.
type ColumnRemap uint8

const (
	// ColumnForward maps column addresses 0..119 to pixel columns left to right.
	ColumnForward ColumnRemap = iota
	// ColumnReverse maps column addresses 0..119 to pixel columns right to left.
	ColumnReverse
)

// NibbleRemap controls the nibble-wise endianness of each 2-byte word,
// i.e. the order in which a group of 4 pixels maps onto the 4 stored nibbles.
type NibbleRemap uint8

const (
	// NibbleReverse maps the word 0xABCD to pixels 3,2,1,0.
	NibbleReverse NibbleRemap = iota
	// NibbleForward maps the word 0xABCD to pixels 0,1,2,3.
	NibbleForward
)

// ComScanDirection controls the order in which COM lines scan the rows.
// Toggling it flips the displayed image vertically without redrawing.
type ComScanDirection uint8

const (
	// RowZeroFirst scans row address 0 as the first display row.
	RowZeroFirst ComScanDirection = iota
	// RowZeroLast scans row address 0 as the last display row.
	RowZeroLast
)

// ComLayout describes how the module wires COM lines to display rows. This is
// fixed by the panel; a wrong value yields a corrupted image.
type ComLayout uint8

const (
	// Progressive maps COM lines 0..127 to rows 0..127.
	Progressive ComLayout = iota
	// Interlaced maps even COM lines to even rows and odd to odd.
	Interlaced
	// DualProgressive pairs two COM lines per row, halving the maximum image
	// height to 64 rows.
	DualProgressive
)

// DisplayMode selects blanking and intensity inversion.
type DisplayMode uint8

const (
	// BlankDark blanks the display with all pixels off (level 0).
	BlankDark DisplayMode = iota
	// BlankBright blanks the display with all pixels on (level 15).
	BlankBright
	// Normal shows the display RAM contents.
	Normal
	// Inverse shows the display RAM contents with levels inverted.
	Inverse
)

// VDDSource selects the core logic supply regulator.
type VDDSource uint8

const (
	// ExternalVDD disables the internal regulator; VDD comes from the module.
	ExternalVDD VDDSource = iota
	// InternalVDD enables the internal VDD regulator (the usual setting).
	InternalVDD
)

// EnableGrayScaleTable activates a previously uploaded grayscale gamma table.
type EnableGrayScaleTable struct{}

func (EnableGrayScaleTable) Encode() (Data, error) { return cmd0(0x00) }

// SetColumnAddress sets the column address range for RAM access and resets
// the column pointer to Start. Valid range is 0..119.
type SetColumnAddress struct {
	Start, End uint8
}

func (c SetColumnAddress) Encode() (Data, error) {
	if c.Start > BufColMax || c.End > BufColMax {
		return Data{}, ErrOutOfRange
	}
	return cmd2(0x15, c.Start, c.End)
}

// WriteRAM starts a RAM write; all following data bytes land in display RAM
// until the next command.
type WriteRAM struct{}

func (WriteRAM) Encode() (Data, error) { return cmd0(0x5C) }

// ReadRAM starts a RAM read; data is clocked out until the next command.
type ReadRAM struct{}

func (ReadRAM) Encode() (Data, error) { return cmd0(0x5D) }

// SetRowAddress sets the row address range for RAM access and resets the row
// pointer to Start. Valid range is 0..127.
type SetRowAddress struct {
	Start, End uint8
}

func (c SetRowAddress) Encode() (Data, error) {
	if c.Start > PixelRowMax || c.End > PixelRowMax {
		return Data{}, ErrOutOfRange
	}
	return cmd2(0x75, c.Start, c.End)
}

// SetRemapping configures address increment direction, column remap, nibble
// remap, COM scan direction and COM layout. The five settings always travel
// together in one two-byte command.
type SetRemapping struct {
	Increment IncrementAxis
	Column    ColumnRemap
	Nibble    NibbleRemap
	ComScan   ComScanDirection
	Layout    ComLayout
}

func (c SetRemapping) Encode() (Data, error) {
	var a0, a1 byte
	if c.Increment == Vertical {
		a0 |= 0x01
	}
	if c.Column == ColumnReverse {
		a0 |= 0x02
	}
	if c.Nibble == NibbleForward {
		a0 |= 0x04
	}
	if c.ComScan == RowZeroLast {
		a0 |= 0x10
	}
	a1 = 0x01
	switch c.Layout {
	case Interlaced:
		a0 |= 0x20
	case DualProgressive:
		a1 |= 0x10
	}
	return cmd2(0xA0, a0, a1)
}

// SetStartLine sets the display start line, rolling the displayed image
// upwards. Applied before the MUX ratio. Valid range is 0..127.
type SetStartLine struct {
	Line uint8
}

func (c SetStartLine) Encode() (Data, error) {
	if c.Line > PixelRowMax {
		return Data{}, ErrOutOfRange
	}
	return cmd1(0xA1, c.Line)
}

// SetDisplayOffset sets the COM line offset, rolling both the image and the
// active rows. Applied after the MUX ratio. Valid range is 0..127.
type SetDisplayOffset struct {
	Line uint8
}

func (c SetDisplayOffset) Encode() (Data, error) {
	if c.Line > PixelRowMax {
		return Data{}, ErrOutOfRange
	}
	return cmd1(0xA2, c.Line)
}

// SetDisplayMode selects the display operating mode.
type SetDisplayMode struct {
	Mode DisplayMode
}

func (c SetDisplayMode) Encode() (Data, error) {
	switch c.Mode {
	case BlankDark:
		return cmd0(0xA4)
	case BlankBright:
		return cmd0(0xA5)
	case Normal:
		return cmd0(0xA6)
	case Inverse:
		return cmd0(0xA7)
	}
	return Data{}, ErrOutOfRange
}

// EnablePartialDisplay activates only the inclusive row range Start..End,
// leaving the other rows dark. Both must be 0..127 with Start <= End.
type EnablePartialDisplay struct {
	Start, End uint8
}

func (c EnablePartialDisplay) Encode() (Data, error) {
	if c.Start > PixelRowMax || c.End > PixelRowMax || c.Start > c.End {
		return Data{}, ErrOutOfRange
	}
	return cmd2(0xA8, c.Start, c.End)
}

// DisablePartialDisplay returns the whole display area to normal operation.
type DisablePartialDisplay struct{}

func (DisablePartialDisplay) Encode() (Data, error) { return cmd0(0xA9) }

// FunctionSelect chooses the VDD source.
type FunctionSelect struct {
	Source VDDSource
}

func (c FunctionSelect) Encode() (Data, error) {
	if c.Source == ExternalVDD {
		return cmd1(0xAB, 0x00)
	}
	return cmd1(0xAB, 0x01)
}

// SetSleepMode powers the display multiplexer and drivers off (Enabled) or
// back on.
type SetSleepMode struct {
	Enabled bool
}

func (c SetSleepMode) Encode() (Data, error) {
	if c.Enabled {
		return cmd0(0xAE)
	}
	return cmd0(0xAF)
}

// SetPhaseLengths sets the reset (phase 1, 5..31 DCLKs) and first pre-charge
// (phase 2, 3..15 DCLKs) period lengths. Phase 1 is stored halved after
// subtracting one; phase 2 occupies the high nibble.
type SetPhaseLengths struct {
	Phase1, Phase2 uint8
}

func (c SetPhaseLengths) Encode() (Data, error) {
	if c.Phase1 < 5 || c.Phase1 > 31 || c.Phase2 < 3 || c.Phase2 > 15 {
		return Data{}, ErrOutOfRange
	}
	p1 := (c.Phase1 - 1) >> 1
	p2 := 0xF0 & (c.Phase2 << 4)
	return cmd1(0xB1, p1|p2)
}

// SetClockFoscDivset sets the oscillator frequency (0..15, higher is faster)
// and the DCLK divider (0..10, dividing Fosc by 2^n).
type SetClockFoscDivset struct {
	Fosc, Divset uint8
}

func (c SetClockFoscDivset) Encode() (Data, error) {
	if c.Fosc > 15 || c.Divset > 10 {
		return Data{}, ErrOutOfRange
	}
	return cmd1(0xB3, c.Fosc<<4|c.Divset)
}

// SetDisplayEnhancements enables or disables the "external VSL" and
// "enhanced low grayscale quality" display enhancements.
type SetDisplayEnhancements struct {
	ExternalVSL   bool
	EnhancedLowGS bool
}

func (c SetDisplayEnhancements) Encode() (Data, error) {
	vsl := byte(0xA2)
	if c.ExternalVSL {
		vsl = 0xA0
	}
	gs := byte(0xB5)
	if c.EnhancedLowGS {
		gs = 0xFD
	}
	return cmd2(0xB4, vsl, gs)
}

// SetSecondPrechargePeriod sets the second pre-charge period, 0..15 DCLKs.
type SetSecondPrechargePeriod struct {
	Period uint8
}

func (c SetSecondPrechargePeriod) Encode() (Data, error) {
	if c.Period > 15 {
		return Data{}, ErrOutOfRange
	}
	return cmd1(0xB6, c.Period)
}

// SetDefaultGrayScaleTable restores the factory grayscale gamma table.
type SetDefaultGrayScaleTable struct{}

func (SetDefaultGrayScaleTable) Encode() (Data, error) { return cmd0(0xB9) }

// SetPreChargeVoltage sets the pre-charge voltage level, 0..31, spanning
// 0.2*Vcc to 0.6*Vcc.
type SetPreChargeVoltage struct {
	Voltage uint8
}

func (c SetPreChargeVoltage) Encode() (Data, error) {
	if c.Voltage > 31 {
		return Data{}, ErrOutOfRange
	}
	return cmd1(0xBB, c.Voltage)
}

// SetComDeselectVoltage sets the COM deselect voltage level, 0..7, spanning
// 0.72*Vcc to 0.86*Vcc.
type SetComDeselectVoltage struct {
	Voltage uint8
}

func (c SetComDeselectVoltage) Encode() (Data, error) {
	if c.Voltage > 7 {
		return Data{}, ErrOutOfRange
	}
	return cmd1(0xBE, c.Voltage)
}

// SetContrastCurrent sets the segment drive current, 0..255.
type SetContrastCurrent struct {
	Current uint8
}

func (c SetContrastCurrent) Encode() (Data, error) {
	return cmd1(0xC1, c.Current)
}

// SetMasterContrast uniformly scales all grayscale levels by N/16, 0..15,
// where 15 is normal contrast and 0 maximum dimming.
type SetMasterContrast struct {
	Contrast uint8
}

func (c SetMasterContrast) Encode() (Data, error) {
	if c.Contrast > 15 {
		return Data{}, ErrOutOfRange
	}
	return cmd1(0xC7, c.Contrast)
}

// SetMuxRatio sets the number of active COM lines, 16..128. The controller
// expects a zero-based count, so the ratio is encoded as ratio-1.
type SetMuxRatio struct {
	Ratio uint8
}

func (c SetMuxRatio) Encode() (Data, error) {
	if c.Ratio < 16 || int(c.Ratio) > NumPixelRows {
		return Data{}, ErrOutOfRange
	}
	return cmd1(0xCA, c.Ratio-1)
}

// SetCommandLock locks (Locked) or unlocks the command interface. While
// locked, the controller ignores every command except SetCommandLock.
type SetCommandLock struct {
	Locked bool
}

func (c SetCommandLock) Encode() (Data, error) {
	if c.Locked {
		return cmd1(0xFD, 0x16)
	}
	return cmd1(0xFD, 0x12)
}

// SetGrayScaleTable uploads a custom grayscale gamma table. Its payload does
// not fit the two-byte Data form, so it encodes to an opcode plus a data
// slice instead; Levels must contain exactly GrayScaleTableLen entries
// (GS1..GS15). The table takes effect once EnableGrayScaleTable is issued.
type SetGrayScaleTable struct {
	Levels []uint8
}

// EncodeBuf returns the opcode and data payload for the table upload.
func (c SetGrayScaleTable) EncodeBuf() (op byte, data []byte, err error) {
	if len(c.Levels) != GrayScaleTableLen {
		return 0, nil, ErrBadTableLength
	}
	return 0xB8, c.Levels, nil
}
