package brailleart

import (
	"image"
	"io"
	"strings"
)

// compactHeader pins a monospace font, keeps rows from wrapping, and sizes
// every glyph span to half an em so cells keep a fixed pitch even with fonts
// that render braille blanks at odd widths.
const compactHeader = `<head><style>body { font: normal 12px/1.1em monospace; display: block; margin: 1em; white-space: nowrap; } body > span { display: inline-block; width: 0.5em; }</style></head><body>`

// TransformCompactHTML renders img as a minimal HTML document with one span
// per braille character and a line break per row. Tracking and leading do
// not apply in this mode; dots are pitched at exactly 6x12 pixels per
// character so the markup stays as small as possible.
func (t *Transformer) TransformCompactHTML(img image.Image) (string, error) {
	scaled, err := rescale(img, 6*t.width-1, 12*t.height-1)
	if err != nil {
		return "", err
	}

	origin := scaled.Bounds().Min
	var b strings.Builder
	b.WriteString(compactHeader)
	for row := 0; row < t.height; row++ {
		for col := 0; col < t.width; col++ {
			b.WriteString("<span>")
			b.WriteRune(t.CellAt(scaled, origin.X+col*6, origin.Y+row*12).Rune())
			b.WriteString("</span>")
		}
		b.WriteString("<br>")
	}
	b.WriteString("</body>")
	return b.String(), nil
}

// EncodeCompactHTML writes the compact HTML rendering to w.
func (t *Transformer) EncodeCompactHTML(w io.Writer, img image.Image) error {
	s, err := t.TransformCompactHTML(img)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, s)
	return err
}
