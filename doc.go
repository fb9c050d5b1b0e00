/*
Package brailleart approximates raster images with unicode braille
characters.

Every braille character carries a 2x4 grid of dots, so one terminal cell can
stand in for eight pixels of a monochrome image. The package resamples an
image onto a dot grid, decides per dot whether its neighborhood is dark
enough to plot, and maps each 2x4 block of decisions to the matching rune in
the U+2800 to U+28FF block:

	xform, err := brailleart.New(80, 24)
	if err != nil {
		// handle it
	}
	err = xform.Encode(os.Stdout, img)

Dots are pitched 3 pixels apart. Each dot owns a 2x2 pixel core and shares
the single-pixel rim around it with its neighbors. Rim pixels count toward a
dot's darkness at a reduced, configurable weight, which keeps soft
anti-aliased edges from vanishing without ever counting a pixel into two
cores.
*/
package brailleart
