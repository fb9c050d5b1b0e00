package brailleart

import (
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/nfnt/resize"
)

// Transformer renders images as a fixed-size grid of braille characters.
// Geometry and sampling knobs are set at construction and never change
// afterwards, so a single Transformer is safe for concurrent use.
type Transformer struct {
	width    int // output width in characters
	height   int // output height in characters
	tracking int // extra letter-spacing in dots
	leading  int // extra line-spacing in dots

	threshold  float64 // darkness at or above which a dot is plotted
	edgeWeight float64 // weight of rim pixels relative to a dot's own core
}

// Option adjusts a Transformer under construction.
type Option func(t *Transformer)

// WithTracking adds extra letter-spacing between characters, in dots.
func WithTracking(dots int) Option {
	return func(t *Transformer) {
		t.tracking = dots
	}
}

// WithLeading adds extra line-spacing between rows, in dots.
func WithLeading(dots int) Option {
	return func(t *Transformer) {
		t.leading = dots
	}
}

// WithThreshold sets the darkness in [0, 1] at or above which a dot is
// plotted. 0 plots every dot, 1 only the purely black ones.
func WithThreshold(threshold float64) Option {
	return func(t *Transformer) {
		t.threshold = threshold
	}
}

// WithEdgeWeight sets the weight of the rim pixels around each dot's 2x2
// core. 0 decides every dot by its core alone.
func WithEdgeWeight(weight float64) Option {
	return func(t *Transformer) {
		t.edgeWeight = weight
	}
}

// New returns a Transformer that renders images as width x height braille
// characters.
func New(width, height int, opts ...Option) (*Transformer, error) {
	t := &Transformer{
		width:      width,
		height:     height,
		threshold:  0.5,
		edgeWeight: 0.5,
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.width < 1 || t.height < 1 {
		return nil, fmt.Errorf("%w: %dx%d", ErrDimension, t.width, t.height)
	}
	if t.tracking < 0 || t.leading < 0 {
		return nil, fmt.Errorf("%w: tracking %d, leading %d", ErrSpacing, t.tracking, t.leading)
	}
	if !(t.threshold >= 0 && t.threshold <= 1) {
		return nil, fmt.Errorf("%w: %v", ErrThreshold, t.threshold)
	}
	if !(t.edgeWeight >= 0) {
		return nil, fmt.Errorf("%w: %v", ErrEdgeWeight, t.edgeWeight)
	}
	return t, nil
}

// scaledSize is the pixel size images are resampled to before dot sampling.
// Dots are pitched 3 pixels apart, horizontally widened by tracking and
// vertically by leading, and the rim beyond the outermost dot cores is cut
// off at the image edge.
func (t *Transformer) scaledSize() (w, h int) {
	w = (2*t.width+t.tracking*(t.width-1))*3 - 1
	h = (4*t.height+t.leading*(t.height-1))*3 - 1
	return w, h
}

// Transform renders img as a flat buffer of (width+2)*height characters:
// each row is width braille glyphs followed by a CR LF pair. The image is
// resampled onto the dot grid first, so any input size works.
func (t *Transformer) Transform(img image.Image) ([]rune, error) {
	w, h := t.scaledSize()
	scaled, err := rescale(img, w, h)
	if err != nil {
		return nil, err
	}

	xStep := 6 + 3*t.tracking
	yStep := 12 + 3*t.leading
	origin := scaled.Bounds().Min
	out := make([]rune, 0, (t.width+2)*t.height)
	for row := 0; row < t.height; row++ {
		for col := 0; col < t.width; col++ {
			out = append(out, t.CellAt(scaled, origin.X+col*xStep, origin.Y+row*yStep).Rune())
		}
		out = append(out, '\r', '\n')
	}
	return out, nil
}

// Encode writes the rendered grid to w.
func (t *Transformer) Encode(w io.Writer, img image.Image) error {
	out, err := t.Transform(img)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, string(out))
	return err
}

// CellAt samples the braille cell whose top-left dot core is anchored at
// (x0, y0). The image is read as is; Transform resamples before calling.
func (t *Transformer) CellAt(img image.Image, x0, y0 int) Pattern {
	var p Pattern
	for y := 0; y < 4; y++ {
		for x := 0; x < 2; x++ {
			if t.dotAt(img, x0+x*3, y0+y*3) {
				p |= DotBit(y + x*4)
			}
		}
	}
	return p
}

// dotAt decides whether the dot anchored at (x0, y0) is dark enough to plot.
// It scans the dot's 2x2 core plus the single-pixel rim around it; core
// pixels count in full, rim pixels at the configured edge weight, and pixels
// outside the image contribute nothing. A dot with no pixels in bounds
// stays off.
func (t *Transformer) dotAt(img image.Image, x0, y0 int) bool {
	bounds := img.Bounds()
	var sum, weight float64
	for dx := -1; dx <= 2; dx++ {
		x := x0 + dx
		if x < bounds.Min.X || x >= bounds.Max.X {
			continue
		}
		for dy := -1; dy <= 2; dy++ {
			y := y0 + dy
			if y < bounds.Min.Y || y >= bounds.Max.Y {
				continue
			}
			w := t.edgeWeight
			if dx&^1 == 0 && dy&^1 == 0 { // the dot's own 2x2 core
				w = 1
			}
			sum += w * darkness(img.At(x, y))
			weight += w
		}
	}
	if weight == 0 {
		return false
	}
	return sum/weight >= t.threshold
}

// darkness is the complement of relative luminance: 0 for pure white, 1 for
// pure black. Rec. 709 coefficients, alpha ignored.
func darkness(c color.Color) float64 {
	r, g, b, _ := c.RGBA()
	return 1 - (0.2126*float64(r)+0.7152*float64(g)+0.0722*float64(b))/0xffff
}

// rescale resamples img to exactly w x h pixels, skipping the resampler when
// the size already matches.
func rescale(img image.Image, w, h int) (image.Image, error) {
	bounds := img.Bounds()
	if bounds.Dx() == w && bounds.Dy() == h {
		return img, nil
	}
	if bounds.Empty() {
		return nil, fmt.Errorf("%w: source %dx%d", ErrResample, bounds.Dx(), bounds.Dy())
	}
	scaled := resize.Resize(uint(w), uint(h), img, resize.Bilinear)
	if b := scaled.Bounds(); b.Dx() != w || b.Dy() != h {
		return nil, fmt.Errorf("%w: resampled to %dx%d, want %dx%d", ErrResample, b.Dx(), b.Dy(), w, h)
	}
	return scaled, nil
}
