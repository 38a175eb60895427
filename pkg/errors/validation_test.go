package errors

import (
	"testing"
)

func TestValidateAttributeKey(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "label", false},
		{"valid with dash", "fill-color", false},
		{"valid unicode", "größe", false},
		{"valid with space", "display name", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 300)), true},
		{"invalid utf8", "a\xffb", true},
		{"null byte", "foo\x00bar", true},
		{"newline", "foo\nbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAttributeKey(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateAttributeKey(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateDelimiter(t *testing.T) {
	tests := []struct {
		name    string
		input   rune
		wantErr bool
	}{
		{"comma", ',', false},
		{"semicolon", ';', false},
		{"tab", '\t', false},

		{"zero", 0, true},
		{"quote", '"', true},
		{"newline", '\n', true},
		{"control", '\x01', true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDelimiter(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateDelimiter(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple file", "graph.gml", false},
		{"nested", "data/road/ny.dimacs", false},

		{"empty", "", true},
		{"absolute", "/etc/passwd", true},
		{"traversal", "data/../../secret", true},
		{"backslash", "data\\graph.gml", true},
		{"null byte", "graph\x00.gml", true},
		{"too long", string(make([]byte, 600)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
