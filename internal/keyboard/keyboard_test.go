package keyboard

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestIsExitKey(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want bool
	}{
		{"escape", []byte{0x1b}, true},
		{"ctrl-c", []byte{0x03}, true},
		{"ctrl-c after text", []byte("ab\x03"), true},
		{"arrow up", []byte("\x1b[A"), false},
		{"letter", []byte("q"), false},
		{"empty", nil, false},
	}
	for _, tt := range tests {
		if got := IsExitKey(tt.in); got != tt.want {
			t.Errorf("%s: IsExitKey = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestCRLF(t *testing.T) {
	var buf bytes.Buffer
	w := CRLF(&buf)
	n, err := w.Write([]byte("one\ntwo\n"))
	if err != nil {
		t.Fatal(err)
	}
	if n != 8 {
		t.Errorf("n = %d, want input length 8", n)
	}
	if buf.String() != "one\r\ntwo\r\n" {
		t.Errorf("got %q", buf.String())
	}
}

func TestWatch_NotATerminal(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "stdin"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	restore, raw, err := Watch(f, func() { t.Error("exit must not be called") })
	if err != nil || raw {
		t.Fatalf("raw = %v, err = %v", raw, err)
	}
	restore()
}
