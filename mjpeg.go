package brailleart

import (
	"bufio"
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// Animator plays a motion-JPEG stream as braille art in a terminal.
type Animator struct {
	x *Transformer
	w io.Writer
	t Terminal
}

// NewAnimator returns an Animator that renders frames through x and writes
// them to w. A nil terminal defaults to xterm escape codes on w.
func NewAnimator(w io.Writer, x *Transformer, t Terminal) *Animator {
	if t == nil {
		t = &Xterm{Writer: w}
	}
	return &Animator{x: x, w: w, t: t}
}

/*
Animate plays the MJPEG stream r at the given frame rate until the stream
ends. The cursor is hidden while playing and restored afterwards, or on
SIGINT/SIGTERM.
*/
func (a *Animator) Animate(r io.Reader, fps int) error {
	if fps < 1 {
		fps = 1
	}
	a.t.ShowCursor(false)
	defer a.t.ShowCursor(true)

	done := make(chan struct{})
	defer close(done)
	go a.handleInterrupt(done)

	reader := MJPEGReader{Reader: r}
	for frame := range reader.ReadAll() {
		if frame.Err != nil {
			return frame.Err
		}
		pause := time.After(time.Second / time.Duration(fps))
		if err := a.x.Encode(a.w, frame.Image); err != nil {
			return err
		}
		a.t.ResetCursor(a.x.height)
		<-pause
	}
	return nil
}

// handleInterrupt restores the cursor before the process dies on SIGINT or
// SIGTERM. It stands down once playback ends.
func (a *Animator) handleInterrupt(done <-chan struct{}) {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-done:
		signal.Stop(signals)
	case s := <-signals:
		a.t.ShowCursor(true)
		// Stop notifying this channel
		signal.Stop(signals)
		// All Signals returned by the signal package should be of type
		// syscall.Signal. Calling os.Exit here would be a bad idea if there
		// are other goroutines waiting to catch the same signal.
		if signum, ok := s.(syscall.Signal); ok {
			syscall.Kill(syscall.Getpid(), signum)
		} else {
			panic(fmt.Sprintf("unexpected signal: %v", s))
		}
	}
}

// Frame is one decoded frame of an MJPEG stream, or the error that ended it.
type Frame struct {
	Image image.Image
	Err   error
}

// MJPEGReader splits a motion-JPEG stream into frames on the JPEG
// end-of-image marker.
type MJPEGReader struct {
	Reader io.Reader
}

// ReadAll decodes frames off the stream until it ends, delivering them on
// the returned channel. Frames beyond the first are dropped while the
// receiver lags behind the stream. The channel is closed at EOF or after the
// first error, which is delivered as the final frame even if a still-unread
// one must be shed to make room.
func (m *MJPEGReader) ReadAll() <-chan Frame {
	frames := make(chan Frame, 1)
	go func() {
		defer close(frames)

		br := bufio.NewReader(m.Reader)
		var buf bytes.Buffer
		for {
			c, err := br.ReadByte()
			if err != nil {
				if err != io.EOF {
					sendError(frames, err)
				}
				return
			}
			buf.WriteByte(c)
			if c != 0xd9 || buf.Len() < 2 {
				continue
			}
			data := buf.Bytes()
			if data[len(data)-2] != 0xff {
				continue
			}
			img, err := jpeg.Decode(&buf)
			buf.Reset()
			if err != nil {
				sendError(frames, err)
				return
			}
			select {
			case frames <- Frame{Image: img}:
			default: // the receiver is still busy, drop the frame
			}
		}
	}()
	return frames
}

// sendError parks err on the channel without ever blocking: the stream is
// lossy, so a still-unread frame is shed to make room for the error that
// ends it.
func sendError(frames chan Frame, err error) {
	for {
		select {
		case frames <- Frame{Err: err}:
			return
		case <-frames:
			// Shed the unread frame and try again.
		}
	}
}
