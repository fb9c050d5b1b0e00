package brailleart_test

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/draw"
	"strings"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	brailleart "github.com/tangent65536/Braille-Unicode-Art"
)

func mustTransformer(w, h int, opts ...brailleart.Option) *brailleart.Transformer {
	t, err := brailleart.New(w, h, opts...)
	Expect(err).NotTo(HaveOccurred())
	return t
}

func whiteImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)
	return img
}

func blackImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.Black, image.Point{}, draw.Src)
	return img
}

// gradientImage shades from white at the top left to black at the bottom
// right.
func gradientImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := uint8(255 - (x+y)*255/(w+h-2))
			img.SetRGBA(x, y, color.RGBA{R: v, G: v, B: v, A: 0xff})
		}
	}
	return img
}

var _ = Describe("New", func() {
	It("rejects non-positive dimensions", func() {
		_, err := brailleart.New(0, 10)
		Expect(errors.Is(err, brailleart.ErrDimension)).To(BeTrue())
		_, err = brailleart.New(10, -1)
		Expect(errors.Is(err, brailleart.ErrDimension)).To(BeTrue())
	})

	It("rejects negative spacing", func() {
		_, err := brailleart.New(10, 10, brailleart.WithTracking(-1))
		Expect(errors.Is(err, brailleart.ErrSpacing)).To(BeTrue())
		_, err = brailleart.New(10, 10, brailleart.WithLeading(-1))
		Expect(errors.Is(err, brailleart.ErrSpacing)).To(BeTrue())
	})

	It("rejects thresholds outside [0, 1]", func() {
		_, err := brailleart.New(10, 10, brailleart.WithThreshold(-0.1))
		Expect(errors.Is(err, brailleart.ErrThreshold)).To(BeTrue())
		_, err = brailleart.New(10, 10, brailleart.WithThreshold(1.1))
		Expect(errors.Is(err, brailleart.ErrThreshold)).To(BeTrue())
	})

	It("rejects negative edge weights", func() {
		_, err := brailleart.New(10, 10, brailleart.WithEdgeWeight(-0.5))
		Expect(errors.Is(err, brailleart.ErrEdgeWeight)).To(BeTrue())
	})

	It("accepts the documented edge of each range", func() {
		_, err := brailleart.New(1, 1, brailleart.WithThreshold(0), brailleart.WithEdgeWeight(0))
		Expect(err).NotTo(HaveOccurred())
		_, err = brailleart.New(1, 1, brailleart.WithThreshold(1))
		Expect(err).NotTo(HaveOccurred())
	})
})

var _ = Describe("Transform", func() {
	It("renders an all-white image as blank characters", func() {
		xform := mustTransformer(3, 2)
		out, err := xform.Transform(whiteImage(30, 30))
		Expect(err).NotTo(HaveOccurred())
		Expect(string(out)).To(Equal("⠀⠀⠀\r\n⠀⠀⠀\r\n"))
	})

	It("renders an all-black image as filled characters", func() {
		xform := mustTransformer(3, 2)
		out, err := xform.Transform(blackImage(30, 30))
		Expect(err).NotTo(HaveOccurred())
		Expect(string(out)).To(Equal("⣿⣿⣿\r\n⣿⣿⣿\r\n"))
	})

	It("fills every dot of an all-black image even at the maximum threshold", func() {
		xform := mustTransformer(2, 1, brailleart.WithThreshold(1))
		out, err := xform.Transform(blackImage(16, 16))
		Expect(err).NotTo(HaveOccurred())
		Expect(string(out)).To(Equal("⣿⣿\r\n"))
	})

	It("emits exactly (width+2)*height characters with CR LF row ends", func() {
		xform := mustTransformer(5, 3, brailleart.WithTracking(1), brailleart.WithLeading(2))
		out, err := xform.Transform(gradientImage(64, 64))
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(HaveLen((5 + 2) * 3))
		Expect(strings.Count(string(out), "\r\n")).To(Equal(3))
		for _, row := range strings.Split(strings.TrimSuffix(string(out), "\r\n"), "\r\n") {
			chars := []rune(row)
			Expect(chars).To(HaveLen(5))
			for _, r := range chars {
				Expect(r).To(BeNumerically(">=", '⠀'))
				Expect(r).To(BeNumerically("<=", '⣿'))
			}
		}
	})

	It("never turns a dot on when the threshold rises", func() {
		img := gradientImage(48, 48)
		low, err := mustTransformer(4, 3, brailleart.WithThreshold(0.3)).Transform(img)
		Expect(err).NotTo(HaveOccurred())
		high, err := mustTransformer(4, 3, brailleart.WithThreshold(0.7)).Transform(img)
		Expect(err).NotTo(HaveOccurred())
		for i := range low {
			if low[i] == '\r' || low[i] == '\n' {
				Expect(high[i]).To(Equal(low[i]))
				continue
			}
			// Dots on at the higher threshold must be a subset of those on
			// at the lower one.
			Expect(uint8(high[i]-'⠀') &^ uint8(low[i]-'⠀')).To(BeZero())
		}
	})

	It("fails with ErrResample on an empty source image", func() {
		xform := mustTransformer(2, 2)
		_, err := xform.Transform(image.NewRGBA(image.Rectangle{}))
		Expect(errors.Is(err, brailleart.ErrResample)).To(BeTrue())
	})
})

var _ = Describe("Encode", func() {
	It("writes the same characters Transform returns", func() {
		xform := mustTransformer(3, 2)
		img := gradientImage(40, 40)
		out, err := xform.Transform(img)
		Expect(err).NotTo(HaveOccurred())
		var buf bytes.Buffer
		Expect(xform.Encode(&buf, img)).To(Succeed())
		Expect(buf.String()).To(Equal(string(out)))
	})
})

var _ = Describe("CellAt", func() {
	It("resolves a black 2x2 block in a 2x4 image to the single top-left dot", func() {
		img := whiteImage(2, 4)
		for y := 0; y < 2; y++ {
			for x := 0; x < 2; x++ {
				img.Set(x, y, color.Black)
			}
		}
		xform := mustTransformer(1, 1, brailleart.WithThreshold(0.5), brailleart.WithEdgeWeight(1))
		cell := xform.CellAt(img, 0, 0)
		Expect(cell).To(Equal(brailleart.Pattern(0x01)))
		Expect(cell.Rune()).To(Equal('⠁'))
	})

	It("ignores rim pixels when the edge weight is zero", func() {
		// Identical black cores, maximally different rims.
		coreOnly := whiteImage(4, 4)
		for y := 0; y < 2; y++ {
			for x := 0; x < 2; x++ {
				coreOnly.Set(x, y, color.Black)
			}
		}
		allBlack := blackImage(4, 4)

		coreJudged := mustTransformer(1, 1, brailleart.WithEdgeWeight(0))
		d0 := brailleart.DotBit(0)
		Expect(coreJudged.CellAt(coreOnly, 0, 0) & d0).To(Equal(d0))
		Expect(coreJudged.CellAt(allBlack, 0, 0) & d0).To(Equal(d0))

		// With the rim weighted in, the white rim pulls the same dot under
		// the threshold.
		rimJudged := mustTransformer(1, 1, brailleart.WithEdgeWeight(1))
		Expect(rimJudged.CellAt(coreOnly, 0, 0) & d0).To(Equal(brailleart.Pattern(0)))
	})

	It("leaves dots off when their whole neighborhood is out of bounds", func() {
		xform := mustTransformer(1, 1, brailleart.WithThreshold(0))
		img := blackImage(2, 2)
		// Only the top-left dot has pixels in bounds.
		Expect(xform.CellAt(img, 0, 0)).To(Equal(brailleart.DotBit(0)))
		// Anchored entirely outside the image, nothing gets plotted even
		// with a zero threshold.
		Expect(xform.CellAt(img, 12, 0)).To(Equal(brailleart.Pattern(0)))
	})
})
