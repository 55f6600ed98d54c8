// Package image4bit provides a 4-bit grayscale image format for the SSD1322
// display controller.
//
// The SSD1322 uses 16 intensity levels (0-15) and stores pixels in horizontal
// nibble packing: each byte holds two adjacent pixels, high nibble = even x
// (left pixel), low nibble = odd x (right pixel).
//
// Memory layout example for a 4-pixel row:
//
//	Pixels: 0  1  2  3
//	Values: 5  10 3  12
//	Bytes:  0x5A 0x3C
//
// This package provides:
//
// - Gray4: a color type representing 4-bit grayscale (0-15)
// - Gray4Model: a color model converting standard Go colors to Gray4
// - HorizontalNibble: an image.Image implementation in the SSD1322's layout
//
// HorizontalNibble implements draw.Image, so standard image operations and
// external renderers can composite into it:
//
//	img := image4bit.NewHorizontalNibble(image.Rect(0, 0, 256, 64))
//	img.SetGray4(10, 20, image4bit.Gray4{Y: 8})
//	img.Clear(image4bit.Gray4{Y: 0})
//	draw.Draw(img, img.Bounds(), image.NewUniform(image4bit.Gray4{Y: 15}), image.Point{}, draw.Src)
//
// The packed Pix slice is exactly what the controller's RAM write expects and
// can be streamed to the display without conversion.
package image4bit
