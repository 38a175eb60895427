package stream

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/matzehuels/graphkit/pkg/errors"
)

func TestDecodeStripsBOM(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"utf8 bom", "\xef\xbb\xbfp sp 1 0", "p sp 1 0"},
		{"no bom", "p sp 1 0", "p sp 1 0"},
		{"utf16le bom", "\xff\xfea\x00b\x00", "ab"},
		{"invalid utf8 untouched", "a\xffb", "a\xffb"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := io.ReadAll(Decode(strings.NewReader(tt.input)))
			if err != nil {
				t.Fatal(err)
			}
			if string(got) != tt.want {
				t.Errorf("Decode(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestLines(t *testing.T) {
	l := NewLines(context.Background(), strings.NewReader("a\nb\r\n\nc"))
	var got []string
	for l.Next() {
		got = append(got, string(l.Bytes()))
	}
	if l.Err() != nil {
		t.Fatal(l.Err())
	}
	if strings.Join(got, "|") != "a|b||c" || l.Line() != 4 {
		t.Errorf("lines = %q, last line = %d", got, l.Line())
	}
}

func TestLinesStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	l := NewLines(ctx, strings.NewReader("a\nb"))
	if l.Next() {
		t.Error("Next() = true after cancel")
	}
	if l.Err() != context.Canceled {
		t.Errorf("Err() = %v, want context.Canceled", l.Err())
	}
}

func TestSyntaxError(t *testing.T) {
	err := Errorf("dimacs", 3, "bad token %q", "x")
	if got := err.Error(); got != `dimacs: line 3: bad token "x"` {
		t.Errorf("Error() = %q", got)
	}
	if err.Code() != errors.ErrCodeImport {
		t.Errorf("Code() = %s", err.Code())
	}
	if got := AtOffset("json", 12, io.ErrUnexpectedEOF).Error(); got != "json: offset 12: unexpected EOF" {
		t.Errorf("Error() = %q", got)
	}
}
