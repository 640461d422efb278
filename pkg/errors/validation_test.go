package errors

import (
	"strings"
	"testing"
)

func TestValidateProp(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"key only", "root", false},
		{"key value", "state=end", false},
		{"empty value", "error=", false},
		{"hidden", ".traced=1", false},
		{"value with equals", "note=a=b", false},
		{"value with newline", "note=line1\nline2", false},

		{"empty", "", true},
		{"empty key", "=value", true},
		{"too long", strings.Repeat("k", 5000), true},
		{"null byte", "state=\x00", true},
		{"control in key", "st\x01ate=end", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateProp(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateProp(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidProp) {
				t.Errorf("ValidateProp(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidProp)
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
		{"simple", "commits/000001.skc", false},
		{"nested", "a/b/c", false},

		{"empty", "", true},
		{"absolute", "/etc/passwd", true},
		{"traversal", "a/../b", true},
		{"backslash", "a\\b", true},
		{"null byte", "a\x00b", true},
		{"too long", strings.Repeat("a", 501), true},
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

func TestValidateHistoryName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "mouse-17", false},
		{"dots", "brain.v2_final", false},

		{"empty", "", true},
		{"leading dot", ".hidden", true},
		{"slash", "a/b", true},
		{"space", "a b", true},
		{"too long", strings.Repeat("n", 129), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateHistoryName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateHistoryName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
