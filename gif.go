package brailleart

import (
	"image"
	"image/draw"
	"image/gif"
	"io"
	"time"
)

/*
PlayGIF draws each frame of a gif to w (usually os.Stdout) as braille art,
repositioning the cursor to the top of the picture after every frame with
terminal codes. Per-frame delays and disposal methods are respected. A loop
count of zero plays forever; a negative one plays the sequence once.
*/
func (t *Transformer) PlayGIF(w io.Writer, g *gif.GIF) error {
	if len(g.Image) == 0 {
		return nil
	}
	bounds := image.Rect(0, 0, g.Config.Width, g.Config.Height)
	if bounds.Empty() {
		bounds = g.Image[0].Bounds()
	}

	// The screen holds the composed frame, starting from a white canvas.
	screen := image.NewRGBA(bounds)
	draw.Draw(screen, bounds, image.White, image.Point{}, draw.Src)

	term := &Xterm{Writer: w}
	for loop := 0; ; loop++ {
		for i, frame := range g.Image {
			pause := frameDelay(g, i)

			switch disposalOf(g, i) {
			// Dispose previous essentially means draw then undo
			case gif.DisposalPrevious:
				previous := image.NewRGBA(bounds)
				copy(previous.Pix, screen.Pix)
				draw.Draw(screen, frame.Bounds(), frame, frame.Bounds().Min, draw.Over)
				if err := t.playFrame(w, term, screen); err != nil {
					return err
				}
				screen = previous
				<-pause
			// Dispose background blanks the area the frame just painted
			case gif.DisposalBackground:
				draw.Draw(screen, frame.Bounds(), frame, frame.Bounds().Min, draw.Over)
				if err := t.playFrame(w, term, screen); err != nil {
					return err
				}
				<-pause
				draw.Draw(screen, frame.Bounds(), image.White, image.Point{}, draw.Src)
				if err := t.playFrame(w, term, screen); err != nil {
					return err
				}
			// Dispose none or undefined means we just draw what we got over top
			default:
				draw.Draw(screen, frame.Bounds(), frame, frame.Bounds().Min, draw.Over)
				if err := t.playFrame(w, term, screen); err != nil {
					return err
				}
				<-pause
			}
		}
		if g.LoopCount < 0 {
			return nil
		}
		if g.LoopCount > 0 && loop+1 >= g.LoopCount {
			return nil
		}
	}
}

// playFrame renders the composed screen and moves the cursor back to the top
// of the picture for the next frame.
func (t *Transformer) playFrame(w io.Writer, term Terminal, screen image.Image) error {
	if err := t.Encode(w, screen); err != nil {
		return err
	}
	term.ResetCursor(t.height)
	return nil
}

func frameDelay(g *gif.GIF, i int) <-chan time.Time {
	var delay time.Duration
	if i < len(g.Delay) {
		delay = time.Duration(g.Delay[i]) * time.Second / 100
	}
	return time.After(delay)
}

// disposalOf tolerates gifs built by hand without a disposal slice.
func disposalOf(g *gif.GIF, i int) byte {
	if i < len(g.Disposal) {
		return g.Disposal[i]
	}
	return gif.DisposalNone
}
