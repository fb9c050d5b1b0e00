package brailleart

import (
	"fmt"
	"io"
)

// Terminal moves the cursor around between animation frames.
type Terminal interface {
	// ResetCursor moves the cursor to the beginning of the line and up rows.
	ResetCursor(rows int)
	// ShowCursor shows or hides the cursor.
	ShowCursor(show bool)
}

// Xterm drives any xterm-compatible terminal with ANSI escape codes.
type Xterm struct {
	Writer io.Writer
}

func (term *Xterm) ResetCursor(rows int) {
	fmt.Fprintf(term.Writer, "\033[999D\033[%dA", rows)
}

func (term *Xterm) ShowCursor(show bool) {
	if show {
		term.Writer.Write([]byte("\033[?12l\033[?25h"))
	} else {
		term.Writer.Write([]byte("\033[?25l"))
	}
}
