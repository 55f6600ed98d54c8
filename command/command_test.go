package command

import (
	"errors"
	"testing"
)

func TestSetColumnAddressValidRange(t *testing.T) {
	for start := 0; start <= BufColMax; start += 7 {
		for end := 0; end <= BufColMax; end += 7 {
			d, err := SetColumnAddress{Start: uint8(start), End: uint8(end)}.Encode()
			if err != nil {
				t.Fatalf("SetColumnAddress(%d, %d) = %v, want nil", start, end, err)
			}
			if d.Cmd != 0x15 || d.Len != 2 || d.Args[0] != uint8(start) || d.Args[1] != uint8(end) {
				t.Fatalf("SetColumnAddress(%d, %d) = %+v", start, end, d)
			}
		}
	}
}

func TestSetColumnAddressOutOfRange(t *testing.T) {
	tests := []struct {
		name       string
		start, end uint8
	}{
		{"start too high", 120, 0},
		{"end too high", 0, 120},
		{"both too high", 255, 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := (SetColumnAddress{Start: tt.start, End: tt.end}).Encode(); !errors.Is(err, ErrOutOfRange) {
				t.Errorf("Encode() = %v, want ErrOutOfRange", err)
			}
		})
	}
}

func TestSetRowAddress(t *testing.T) {
	d, err := SetRowAddress{Start: 0, End: 127}.Encode()
	if err != nil {
		t.Fatalf("Encode() = %v", err)
	}
	if d.Cmd != 0x75 || d.Len != 2 || d.Args[0] != 0 || d.Args[1] != 127 {
		t.Fatalf("Encode() = %+v", d)
	}

	if _, err := (SetRowAddress{Start: 128, End: 0}).Encode(); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("row start 128: err = %v, want ErrOutOfRange", err)
	}
	if _, err := (SetRowAddress{Start: 0, End: 128}).Encode(); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("row end 128: err = %v, want ErrOutOfRange", err)
	}
}

func TestSetMuxRatioFullSweep(t *testing.T) {
	for ratio := 16; ratio <= 128; ratio++ {
		d, err := SetMuxRatio{Ratio: uint8(ratio)}.Encode()
		if err != nil {
			t.Fatalf("SetMuxRatio(%d) = %v, want nil", ratio, err)
		}
		if d.Cmd != 0xCA || d.Len != 1 || d.Args[0] != uint8(ratio-1) {
			t.Fatalf("SetMuxRatio(%d) = %+v, want opcode 0xCA arg %d", ratio, d, ratio-1)
		}
	}

	for _, ratio := range []uint8{0, 15, 129, 255} {
		if _, err := (SetMuxRatio{Ratio: ratio}).Encode(); !errors.Is(err, ErrOutOfRange) {
			t.Errorf("SetMuxRatio(%d) err = %v, want ErrOutOfRange", ratio, err)
		}
	}
}

func TestSetRemapping(t *testing.T) {
	tests := []struct {
		name string
		cmd  SetRemapping
		a0   byte
		a1   byte
	}{
		{
			"defaults",
			SetRemapping{},
			0x00, 0x01,
		},
		{
			"standard orientation preset",
			SetRemapping{
				Increment: Horizontal,
				Column:    ColumnForward,
				Nibble:    NibbleForward,
				ComScan:   RowZeroLast,
				Layout:    DualProgressive,
			},
			0x14, 0x11,
		},
		{
			"inverted orientation preset",
			SetRemapping{
				Increment: Horizontal,
				Column:    ColumnReverse,
				Nibble:    NibbleForward,
				ComScan:   RowZeroFirst,
				Layout:    DualProgressive,
			},
			0x06, 0x11,
		},
		{
			"vertical interlaced",
			SetRemapping{
				Increment: Vertical,
				Column:    ColumnReverse,
				Nibble:    NibbleReverse,
				ComScan:   RowZeroFirst,
				Layout:    Interlaced,
			},
			0x23, 0x01,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := tt.cmd.Encode()
			if err != nil {
				t.Fatalf("Encode() = %v", err)
			}
			if d.Cmd != 0xA0 || d.Len != 2 {
				t.Fatalf("Encode() = %+v, want opcode 0xA0 with 2 args", d)
			}
			if d.Args[0] != tt.a0 || d.Args[1] != tt.a1 {
				t.Errorf("args = [0x%02X 0x%02X], want [0x%02X 0x%02X]",
					d.Args[0], d.Args[1], tt.a0, tt.a1)
			}
		})
	}
}

func TestSetPhaseLengths(t *testing.T) {
	tests := []struct {
		name           string
		phase1, phase2 uint8
		want           byte
		wantErr        bool
	}{
		{"default profile", 5, 15, 0xF2, false},
		{"minimums", 5, 3, 0x32, false},
		{"maximums", 31, 15, 0xFF, false},
		{"phase1 too short", 4, 15, 0, true},
		{"phase1 too long", 32, 15, 0, true},
		{"phase2 too short", 5, 2, 0, true},
		{"phase2 too long", 5, 16, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := SetPhaseLengths{Phase1: tt.phase1, Phase2: tt.phase2}.Encode()
			if tt.wantErr {
				if !errors.Is(err, ErrOutOfRange) {
					t.Fatalf("err = %v, want ErrOutOfRange", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Encode() = %v", err)
			}
			if d.Cmd != 0xB1 || d.Len != 1 || d.Args[0] != tt.want {
				t.Errorf("Encode() = %+v, want opcode 0xB1 arg 0x%02X", d, tt.want)
			}
		})
	}
}

func TestSetClockFoscDivset(t *testing.T) {
	d, err := SetClockFoscDivset{Fosc: 10, Divset: 1}.Encode()
	if err != nil {
		t.Fatalf("Encode() = %v", err)
	}
	if d.Cmd != 0xB3 || d.Len != 1 || d.Args[0] != 0xA1 {
		t.Fatalf("Encode() = %+v, want opcode 0xB3 arg 0xA1", d)
	}

	if _, err := (SetClockFoscDivset{Fosc: 16, Divset: 0}).Encode(); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("fosc 16: err = %v, want ErrOutOfRange", err)
	}
	if _, err := (SetClockFoscDivset{Fosc: 0, Divset: 11}).Encode(); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("divset 11: err = %v, want ErrOutOfRange", err)
	}
}

func TestSetDisplayEnhancements(t *testing.T) {
	tests := []struct {
		name   string
		vsl    bool
		lowGS  bool
		a0, a1 byte
	}{
		{"both enabled", true, true, 0xA0, 0xFD},
		{"both disabled", false, false, 0xA2, 0xB5},
		{"vsl only", true, false, 0xA0, 0xB5},
		{"low gs only", false, true, 0xA2, 0xFD},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := SetDisplayEnhancements{ExternalVSL: tt.vsl, EnhancedLowGS: tt.lowGS}.Encode()
			if err != nil {
				t.Fatalf("Encode() = %v", err)
			}
			if d.Cmd != 0xB4 || d.Len != 2 || d.Args[0] != tt.a0 || d.Args[1] != tt.a1 {
				t.Errorf("Encode() = %+v, want 0xB4 [0x%02X 0x%02X]", d, tt.a0, tt.a1)
			}
		})
	}
}

func TestSetDisplayMode(t *testing.T) {
	tests := []struct {
		mode DisplayMode
		op   byte
	}{
		{BlankDark, 0xA4},
		{BlankBright, 0xA5},
		{Normal, 0xA6},
		{Inverse, 0xA7},
	}

	for _, tt := range tests {
		d, err := SetDisplayMode{Mode: tt.mode}.Encode()
		if err != nil {
			t.Fatalf("SetDisplayMode(%d) = %v", tt.mode, err)
		}
		if d.Cmd != tt.op || d.Len != 0 {
			t.Errorf("SetDisplayMode(%d) = %+v, want opcode 0x%02X with no args", tt.mode, d, tt.op)
		}
	}
}

func TestSleepAndLock(t *testing.T) {
	if d, _ := (SetSleepMode{Enabled: true}).Encode(); d.Cmd != 0xAE || d.Len != 0 {
		t.Errorf("sleep on = %+v, want opcode 0xAE", d)
	}
	if d, _ := (SetSleepMode{Enabled: false}).Encode(); d.Cmd != 0xAF || d.Len != 0 {
		t.Errorf("sleep off = %+v, want opcode 0xAF", d)
	}
	if d, _ := (SetCommandLock{Locked: true}).Encode(); d.Cmd != 0xFD || d.Args[0] != 0x16 || d.Len != 1 {
		t.Errorf("lock = %+v, want 0xFD 0x16", d)
	}
	if d, _ := (SetCommandLock{Locked: false}).Encode(); d.Cmd != 0xFD || d.Args[0] != 0x12 || d.Len != 1 {
		t.Errorf("unlock = %+v, want 0xFD 0x12", d)
	}
}

func TestEnablePartialDisplay(t *testing.T) {
	d, err := EnablePartialDisplay{Start: 8, End: 56}.Encode()
	if err != nil {
		t.Fatalf("Encode() = %v", err)
	}
	if d.Cmd != 0xA8 || d.Len != 2 || d.Args[0] != 8 || d.Args[1] != 56 {
		t.Fatalf("Encode() = %+v", d)
	}

	if _, err := (EnablePartialDisplay{Start: 56, End: 8}).Encode(); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("start > end: err = %v, want ErrOutOfRange", err)
	}
	if _, err := (EnablePartialDisplay{Start: 0, End: 128}).Encode(); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("end 128: err = %v, want ErrOutOfRange", err)
	}
}

func TestSingleArgumentRanges(t *testing.T) {
	tests := []struct {
		name    string
		cmd     Command
		op      byte
		arg     byte
		wantErr bool
	}{
		{"start line 0", SetStartLine{Line: 0}, 0xA1, 0x00, false},
		{"start line 127", SetStartLine{Line: 127}, 0xA1, 0x7F, false},
		{"start line 128", SetStartLine{Line: 128}, 0, 0, true},
		{"display offset 0", SetDisplayOffset{Line: 0}, 0xA2, 0x00, false},
		{"display offset 128", SetDisplayOffset{Line: 128}, 0, 0, true},
		{"function select internal", FunctionSelect{Source: InternalVDD}, 0xAB, 0x01, false},
		{"function select external", FunctionSelect{Source: ExternalVDD}, 0xAB, 0x00, false},
		{"second precharge 8", SetSecondPrechargePeriod{Period: 8}, 0xB6, 0x08, false},
		{"second precharge 16", SetSecondPrechargePeriod{Period: 16}, 0, 0, true},
		{"precharge voltage 31", SetPreChargeVoltage{Voltage: 31}, 0xBB, 0x1F, false},
		{"precharge voltage 32", SetPreChargeVoltage{Voltage: 32}, 0, 0, true},
		{"com deselect 7", SetComDeselectVoltage{Voltage: 7}, 0xBE, 0x07, false},
		{"com deselect 8", SetComDeselectVoltage{Voltage: 8}, 0, 0, true},
		{"contrast current 0", SetContrastCurrent{Current: 0}, 0xC1, 0x00, false},
		{"contrast current 255", SetContrastCurrent{Current: 255}, 0xC1, 0xFF, false},
		{"master contrast 15", SetMasterContrast{Contrast: 15}, 0xC7, 0x0F, false},
		{"master contrast 16", SetMasterContrast{Contrast: 16}, 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := tt.cmd.Encode()
			if tt.wantErr {
				if !errors.Is(err, ErrOutOfRange) {
					t.Fatalf("err = %v, want ErrOutOfRange", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Encode() = %v", err)
			}
			if d.Cmd != tt.op || d.Len != 1 || d.Args[0] != tt.arg {
				t.Errorf("Encode() = %+v, want opcode 0x%02X arg 0x%02X", d, tt.op, tt.arg)
			}
		})
	}
}

func TestZeroArgumentOpcodes(t *testing.T) {
	tests := []struct {
		name string
		cmd  Command
		op   byte
	}{
		{"enable grayscale table", EnableGrayScaleTable{}, 0x00},
		{"write RAM", WriteRAM{}, 0x5C},
		{"read RAM", ReadRAM{}, 0x5D},
		{"disable partial display", DisablePartialDisplay{}, 0xA9},
		{"default grayscale table", SetDefaultGrayScaleTable{}, 0xB9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := tt.cmd.Encode()
			if err != nil {
				t.Fatalf("Encode() = %v", err)
			}
			if d.Cmd != tt.op || d.Len != 0 {
				t.Errorf("Encode() = %+v, want opcode 0x%02X with no args", d, tt.op)
			}
		})
	}
}

func TestSetGrayScaleTable(t *testing.T) {
	levels := []uint8{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15}
	op, data, err := SetGrayScaleTable{Levels: levels}.EncodeBuf()
	if err != nil {
		t.Fatalf("EncodeBuf() = %v", err)
	}
	if op != 0xB8 {
		t.Errorf("opcode = 0x%02X, want 0xB8", op)
	}
	if len(data) != GrayScaleTableLen {
		t.Errorf("len(data) = %d, want %d", len(data), GrayScaleTableLen)
	}

	for _, n := range []int{0, 2, 14, 16} {
		if _, _, err := (SetGrayScaleTable{Levels: make([]uint8, n)}).EncodeBuf(); !errors.Is(err, ErrBadTableLength) {
			t.Errorf("table of %d entries: err = %v, want ErrBadTableLength", n, err)
		}
	}
}
