package brailleart

import (
	"image"
	"image/draw"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// TextImage renders label as black text on a white backdrop, sized to fit
// the measured text. Lines are split on \n and stacked. A nil face falls
// back to the builtin fixed 7x13 font. Feed the result through a Transformer
// to print banner text as braille art.
func TextImage(label string, face font.Face) image.Image {
	if face == nil {
		face = basicfont.Face7x13
	}
	metrics := face.Metrics()
	ascent := metrics.Ascent.Ceil()
	lineHeight := metrics.Height.Ceil()
	lines := strings.Split(label, "\n")

	d := font.Drawer{Face: face}
	width := 1
	for _, line := range lines {
		if w := d.MeasureString(line).Ceil(); w > width {
			width = w
		}
	}

	img := image.NewRGBA(image.Rect(0, 0, width, lineHeight*len(lines)))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)
	d.Dst = img
	d.Src = image.Black
	for i, line := range lines {
		d.Dot = fixed.P(0, ascent+i*lineHeight)
		d.DrawString(line)
	}
	return img
}
