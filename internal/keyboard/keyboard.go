// Package keyboard turns ESC and Ctrl-C keypresses on a raw terminal into
// an exit request.
package keyboard

import (
	"bytes"
	"io"
	"os"

	"github.com/rs/zerolog/log"
	"golang.org/x/term"
)

const (
	keyCtrlC  = 0x03
	keyEscape = 0x1b
)

// IsExitKey reports whether one read from a raw terminal is a lone ESC or
// contains Ctrl-C. Escape sequences such as arrow keys arrive in a single
// read and are ignored.
func IsExitKey(p []byte) bool {
	if len(p) == 1 && p[0] == keyEscape {
		return true
	}
	return bytes.IndexByte(p, keyCtrlC) >= 0
}

// Watch switches in to raw mode and calls exit once an exit key is read.
// When in is not a terminal nothing is watched and raw is false.
// The returned restore must be called before the process exits.
func Watch(in *os.File, exit func()) (restore func(), raw bool, err error) {
	fd := int(in.Fd())
	if !term.IsTerminal(fd) {
		return func() {}, false, nil
	}
	state, err := term.MakeRaw(fd)
	if err != nil {
		return func() {}, false, err
	}

	go func() {
		buf := make([]byte, 16)
		for {
			n, err := in.Read(buf)
			if err != nil {
				log.Debug().Err(err).Msg("keyboard read stopped")
				return
			}
			if IsExitKey(buf[:n]) {
				exit()
				return
			}
		}
	}()

	return func() {
		if err := term.Restore(fd, state); err != nil {
			log.Warn().Err(err).Msg("restore terminal")
		}
	}, true, nil
}

// CRLF wraps w so that "\n" is written as "\r\n". Raw mode disables output
// post-processing, so plain newlines would not return the carriage.
func CRLF(w io.Writer) io.Writer {
	return crlfWriter{w: w}
}

type crlfWriter struct {
	w io.Writer
}

func (c crlfWriter) Write(p []byte) (int, error) {
	if _, err := c.w.Write(bytes.ReplaceAll(p, []byte("\n"), []byte("\r\n"))); err != nil {
		return 0, err
	}
	return len(p), nil
}
