// Package label renders item labels: a human-readable text block plus a
// rasterized bar rendering of the item's generated code. The bars use the
// EAN 7-module digit patterns between plain guard bars; no checksum digit
// is encoded, so the output is a visual label, not a validated symbol.
package label

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/idanc/machsan/internal/model"
)

// Rendering geometry, in pixels.
const (
	moduleWidth = 2
	barHeight   = 60
	quietZone   = 16
	textBand    = 18
)

// guard is the bar pattern framing the digit modules.
const guard = "101"

// digitPatterns are the EAN left-hand odd-parity encodings, 7 modules per
// digit, '1' meaning a dark module.
var digitPatterns = [10]string{
	"0001101", "0011001", "0010011", "0111101", "0100011",
	"0110001", "0101111", "0111011", "0110111", "0001011",
}

// Text builds the printable description block for one item.
func Text(item model.Item) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Item no.: %d\n", item.Ordinal)
	fmt.Fprintf(&b, "Serial: %s\n", item.Serial)
	fmt.Fprintf(&b, "Brand: %s\n", item.Brand)
	fmt.Fprintf(&b, "Model: %s\n", item.Model)
	b.WriteString("\nSpecifications:\n")
	b.WriteString("-----------------\n")
	fmt.Fprintf(&b, "Screen: %s\n", item.Screen)
	fmt.Fprintf(&b, "Processor: %s\n", item.Processor)
	fmt.Fprintf(&b, "Memory: %s\n", item.Memory)
	fmt.Fprintf(&b, "Disk: %s\n", item.Disk)
	fmt.Fprintf(&b, "Graphics: %s\n", item.Graphics)
	fmt.Fprintf(&b, "Resolution: %s\n", item.Resolution)
	fmt.Fprintf(&b, "Touch: %s\n", item.Touch)
	fmt.Fprintf(&b, "OS: %s\n", item.OS)
	fmt.Fprintf(&b, "Status: %s\n", item.Status)
	fmt.Fprintf(&b, "\nCode: %s\n", item.Code)
	return b.String()
}

// Render rasterizes the item's generated code as a bar image with the
// digits drawn beneath. The code must be digits only.
func Render(item model.Item) (*image.RGBA, error) {
	modules, err := encode(item.Code)
	if err != nil {
		return nil, err
	}

	width := 2*quietZone + len(modules)*moduleWidth
	height := barHeight + textBand
	img := image.NewRGBA(image.Rect(0, 0, width, height))

	// White background.
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.White)
		}
	}

	// Bars.
	for n, dark := range modules {
		if dark != '1' {
			continue
		}
		x0 := quietZone + n*moduleWidth
		for x := x0; x < x0+moduleWidth; x++ {
			for y := 0; y < barHeight; y++ {
				img.Set(x, y, color.Black)
			}
		}
	}

	// Digit caption, centered under the bars.
	face := basicfont.Face7x13
	textWidth := font.MeasureString(face, item.Code).Ceil()
	d := &font.Drawer{
		Dst:  img,
		Src:  image.Black,
		Face: face,
		Dot: fixed.P((width-textWidth)/2, barHeight+textBand-4),
	}
	d.DrawString(item.Code)

	return img, nil
}

// WritePNG renders the item's code and encodes it as PNG to w.
func WritePNG(w io.Writer, item model.Item) error {
	img, err := Render(item)
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encoding label PNG: %w", err)
	}
	return nil
}

// SavePNG writes the rendered label to a file.
func SavePNG(path string, item model.Item) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating label file: %w", err)
	}
	defer f.Close()

	if err := WritePNG(f, item); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing label file: %w", err)
	}
	return nil
}

// encode expands a digit string into guard-framed bar modules.
func encode(code string) (string, error) {
	if code == "" {
		return "", fmt.Errorf("empty code")
	}
	var b strings.Builder
	b.WriteString(guard)
	for _, r := range code {
		if r < '0' || r > '9' {
			return "", fmt.Errorf("code contains non-digit %q", r)
		}
		b.WriteString(digitPatterns[r-'0'])
	}
	b.WriteString(guard)
	return b.String(), nil
}
