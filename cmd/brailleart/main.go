package main

import (
	"fmt"
	"image"
	"image/draw"
	"image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"syscall"
	"unsafe"

	"github.com/codegangsta/cli"
	"github.com/disintegration/imaging"
	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	brailleart "github.com/tangent65536/Braille-Unicode-Art"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/font"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

func main() {
	app := cli.NewApp()
	app.Version = "1.0.0"
	app.Name = "brailleart"
	app.Usage = "A command-line tool for rendering images as unicode braille art."
	app.UsageText = "1) brailleart [options] [file|url]\n" +
		/*      */ "   2) brailleart [options] < [file]"
	app.Author = "Tangent65536"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "size,s",
			Usage: "`SIZE` = 80,25 renders 80 columns by 25 lines of characters. Defaults to the terminal size.",
		},
		cli.IntFlag{
			Name:  "tracking,t",
			Usage: "`TRACKING` = 0 gives the tightest grid. Each extra unit widens the gap between characters by one dot.",
		},
		cli.IntFlag{
			Name:  "leading,l",
			Usage: "`LEADING` = 0 gives the tightest grid. Each extra unit widens the gap between lines by one dot.",
		},
		cli.Float64Flag{
			Name:  "threshold",
			Usage: "`THRESHOLD` is the darkness at which a dot is plotted. 0 plots every dot, 1 only the purely black ones.",
			Value: 0.5,
		},
		cli.Float64Flag{
			Name:  "edge-weight,e",
			Usage: "`WEIGHT` of the pixels on the rim of each dot. 0 decides dots by their own 2x2 core alone.",
			Value: 0.5,
		},
		cli.Float64Flag{
			Name:  "gamma,g",
			Usage: "`GAMMA` = 1.0 gives the original image. GAMMA less than 1.0 darkens the image and GAMMA greater than 1.0 lightens it.",
			Value: 1.0,
		},
		cli.Float64Flag{
			Name:  "brightness,b",
			Usage: "`BRIGHTNESS` = 0 gives the original image. BRIGHTNESS = -100 gives solid black image. BRIGHTNESS = 100 gives solid white image.",
			Value: 0.0,
		},
		cli.Float64Flag{
			Name:  "contrast,c",
			Usage: "`CONTRAST` = 0 gives the original image. CONTRAST = -100 gives solid grey image. CONTRAST = 100 gives maximum contrast.",
			Value: 0.0,
		},
		cli.Float64Flag{
			Name:  "sharpen",
			Usage: "`SHARPEN` = 0 gives the original image. SHARPEN greater than 0 sharpens the image.",
			Value: 0.0,
		},
		cli.BoolFlag{
			Name:  "invert,i",
			Usage: "Inverts the image.",
		},
		cli.Float64Flag{
			Name:  "sigmoid-midpoint",
			Usage: "`MIDPOINT` of contrast that must be between 0 and 1.",
			Value: 0.5,
		},
		cli.Float64Flag{
			Name:  "sigmoid-factor",
			Usage: "`FACTOR` = 0 gives the original image. FACTOR greater than 0 increases contrast. FACTOR less than 0 decreases contrast.",
			Value: 0.0,
		},
		cli.BoolFlag{
			Name:  "html",
			Usage: "Renders a compact HTML document instead of plain text rows.",
		},
		cli.StringFlag{
			Name:  "text",
			Usage: "Renders `LABEL` as a text banner instead of reading an input image.",
		},
		cli.StringFlag{
			Name:  "font",
			Usage: "`PATH` to a ttf font used with --text. Defaults to a builtin fixed 7x13 font.",
		},
		cli.Float64Flag{
			Name:  "font-size",
			Usage: "Point `SIZE` used with --font.",
			Value: 72,
		},
		cli.BoolFlag{
			Name:  "play,p",
			Usage: "EXPERIMENTAL! Animates gifs in the terminal. ESC or CTRL-C to quit.",
		},
		cli.BoolFlag{
			Name:  "mjpeg,m",
			Usage: "EXPERIMENTAL! Animates an mjpeg stream in the terminal, eg: curl http://... | brailleart -m --fps 20",
		},
		cli.IntFlag{
			Name:  "fps",
			Usage: "`FPS` = 25 plays an mjpeg stream at 25 frames per second.",
			Value: 25,
		},
	}
	app.Action = func(c *cli.Context) {
		cols, lines := dimensions(c)
		xform, err := brailleart.New(cols, lines,
			brailleart.WithTracking(c.Int("tracking")),
			brailleart.WithLeading(c.Int("leading")),
			brailleart.WithThreshold(c.Float64("threshold")),
			brailleart.WithEdgeWeight(c.Float64("edge-weight")),
		)
		if err != nil {
			exit(err.Error(), 1)
		}

		// A text banner needs no input image at all
		if label := c.String("text"); label != "" {
			render(c, xform, brailleart.TextImage(label, fontFace(c)))
			return
		}

		var reader io.Reader

		// Try to parse the args, if there are any, as a file or url
		if input := c.Args().First(); input != "" {
			// Is it a file?
			if file, err := os.Open(input); err == nil {
				reader = file
			} else {
				// Is it a url?
				resp, err := http.Get(input)
				if err != nil {
					exit(err.Error(), 1)
				}
				defer resp.Body.Close()
				reader = resp.Body
			}
		} else {
			reader = os.Stdin
		}

		// First try to play the input as an animated gif
		if c.Bool("play") {
			giff, err := gif.DecodeAll(reader)
			if err != nil {
				exit(err.Error(), 1)
			}
			adjustGIF(c, giff)
			if err := xform.PlayGIF(os.Stdout, giff); err != nil {
				exit(err.Error(), 1)
			}
			return
		}

		// Or as a motion-jpeg stream
		if c.Bool("mjpeg") {
			anim := brailleart.NewAnimator(os.Stdout, xform, nil)
			if err := anim.Animate(reader, c.Int("fps")); err != nil {
				exit(err.Error(), 1)
			}
			return
		}

		img, _, err := image.Decode(reader)
		if err != nil {
			exit(err.Error(), 1)
		}
		render(c, xform, adjust(c, img))
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func render(c *cli.Context, xform *brailleart.Transformer, img image.Image) {
	if c.Bool("html") {
		if err := xform.EncodeCompactHTML(os.Stdout, img); err != nil {
			exit(err.Error(), 1)
		}
		return
	}
	if err := xform.Encode(os.Stdout, img); err != nil {
		exit(err.Error(), 1)
	}
}

// adjust runs the requested image corrections. Scaling is left to the
// braille transform itself.
func adjust(c *cli.Context, img image.Image) image.Image {
	if c.IsSet("gamma") {
		img = imaging.AdjustGamma(img, c.Float64("gamma"))
	}
	if c.IsSet("brightness") {
		img = imaging.AdjustBrightness(img, c.Float64("brightness"))
	}
	if c.IsSet("sharpen") {
		img = imaging.Sharpen(img, c.Float64("sharpen"))
	}
	if c.IsSet("contrast") {
		img = imaging.AdjustContrast(img, c.Float64("contrast"))
	}
	if c.IsSet("sigmoid-midpoint") || c.IsSet("sigmoid-factor") {
		img = imaging.AdjustSigmoid(img, c.Float64("sigmoid-midpoint"), c.Float64("sigmoid-factor"))
	}
	if c.Bool("invert") {
		img = imaging.Invert(img)
	}
	return img
}

// adjustGIF runs the same corrections over every frame of a gif. Adjusted
// frames are quantized back onto their original palettes by nearest color
// alone.
func adjustGIF(c *cli.Context, g *gif.GIF) {
	for i, frame := range g.Image {
		img := adjust(c, frame)
		if img == frame {
			continue
		}
		paletted := image.NewPaletted(frame.Bounds(), frame.Palette)
		draw.Draw(paletted, paletted.Bounds(), img, img.Bounds().Min, draw.Src)
		g.Image[i] = paletted
	}
}

func fontFace(c *cli.Context) font.Face {
	path := c.String("font")
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		exit(err.Error(), 1)
	}
	f, err := freetype.ParseFont(data)
	if err != nil {
		exit(err.Error(), 1)
	}
	return truetype.NewFace(f, &truetype.Options{
		Size: c.Float64("font-size"),
		DPI:  72,
	})
}

func dimensions(c *cli.Context) (cols, lines int) {
	if c.IsSet("size") {
		parts := strings.Split(c.String("size"), ",")
		if len(parts) != 2 {
			exit("size option must be comma separated", 1)
		}
		cols, _ = strconv.Atoi(strings.Trim(parts[0], " "))
		lines, _ = strconv.Atoi(strings.Trim(parts[1], " "))
		return cols, lines
	}
	cols, lines, err := getTerminalSize()
	if err != nil {
		cols, lines = 80, 25 // Small, but a pretty standard default
	}
	return cols, lines - 1 // Leave a line for the prompt
}

func exit(msg string, code int) {
	fmt.Println(msg)
	os.Exit(code)
}

func getTerminalSize() (width, height int, err error) {
	var dims [4]uint16
	_, _, e := syscall.Syscall6(
		syscall.SYS_IOCTL,
		uintptr(syscall.Stderr), // TODO: Figure out why we get "inappropriate ioctl for device" errors if we use stdin or stdout
		uintptr(syscall.TIOCGWINSZ),
		uintptr(unsafe.Pointer(&dims)),
		0, 0, 0,
	)
	if e != 0 {
		return -1, -1, e
	}
	return int(dims[1]), int(dims[0]), nil
}
