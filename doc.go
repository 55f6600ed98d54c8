// Package ssd1322 controls a SSD1322 OLED display via SPI.
//
// The SSD1322 is a 4-bit grayscale OLED controller supporting up to 480×128
// pixels. Common display resolutions are 256×64 and 128×64. The driver
// implements the display.Drawer interface from periph.io.
//
// # Architecture
//
// The driver is split into three pieces:
//
//   - package command: pure, validated encoding of every controller command
//     into its opcode and parameter bytes. No I/O.
//   - package image4bit: the packed 4-bit frame buffer (two pixels per byte)
//     in exactly the layout the controller's RAM write expects.
//   - package ssd1322 (this package): the device session owning the SPI
//     connection and the DC/RST/POWER pins, sequencing reset, initialization,
//     orientation changes and frame transfer.
//
// # Hardware Connection
//
// Connect the SSD1322 display to your system via SPI:
//
//	Display Pin → System Pin
//	GND         → GND
//	VCC         → 3.3V (or 5V depending on display)
//	SCL/CLK     → SPI Clock (SCLK)
//	SDA/MOSI    → SPI Data (MOSI)
//	DC          → GPIO (any available pin)
//	CS          → SPI Chip Select (or GND if always selected)
//	RES         → GPIO for hardware reset
//	POWER/EN    → GPIO controlling the panel supply
//
// # Basic Usage
//
//	host.Init()
//	b, _ := spireg.Open("")
//	dev, _ := ssd1322.NewSPI(b,
//		gpioreg.ByName("GPIO25"), // DC
//		gpioreg.ByName("GPIO24"), // RST
//		gpioreg.ByName("GPIO23"), // POWER
//		&ssd1322.Opts{W: 256, H: 64})
//	if err := dev.Init(); err != nil { // hard reset + init sequence
//		log.Fatal(err)
//	}
//
//	img := image4bit.NewHorizontalNibble(dev.Bounds())
//	for x := 0; x < 256; x++ {
//		for y := 0; y < 64; y++ {
//			img.SetGray4(x, y, image4bit.Gray4{Y: uint8(x * 15 / 255)})
//		}
//	}
//	dev.FlushFrame(img)
//
// Construction does not touch the panel: the controller is in an undefined
// electrical state until Init has run. After a failed or cancelled transfer
// the controller's address pointer and command/data mode are indeterminate;
// recover with HardReset followed by Init.
//
// # Concurrency
//
// A Dev has no internal locking. It exclusively owns the bus and the DC pin,
// whose level is shared mutable state across writes, so callers must
// serialize access. For double buffering, alternate two HorizontalNibble
// frames between a producer and FlushFrame rather than sharing one.
//
// # Orientation
//
// SetOrientation flips the image 180° by re-issuing the controller's
// remapping command; no redraw is needed and the full init sequence does not
// re-run.
//
// # Datasheet
//
// https://www.displayfuture.com/Display/datasheet/controller/SSD1322.pdf
package ssd1322
