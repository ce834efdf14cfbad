package errors

import (
	"errors"
	"testing"
)

func TestValidateRange(t *testing.T) {
	tests := []struct {
		name    string
		value   float64
		wantErr bool
	}{
		{"lower bound", 1, false},
		{"upper bound", 20, false},
		{"inside", 8, false},
		{"below", 0, true},
		{"above", 21, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRange("grid.rows", tt.value, 1, 20)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateRange(%v) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
			if err == nil {
				return
			}
			if !Is(err, ErrCodeInvalidConfig) {
				t.Errorf("ValidateRange(%v) returned wrong error code: %v", tt.value, err)
			}
			var re *RangeError
			if !errors.As(err, &re) || re.Value != tt.value {
				t.Errorf("ValidateRange(%v) should wrap a *RangeError, got %v", tt.value, err)
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
		{"valid simple", "frame.png", false},
		{"valid absolute", "/tmp/out/frame.png", false},
		{"valid nested", "shots/2024/frame.jpg", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 600)), true},
		{"null byte", "foo\x00bar", true},
		{"control char", "foo\x01bar", true},
		{"newline", "foo\nbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidPath) {
				t.Errorf("ValidatePath(%q) returned wrong error code: %v", tt.input, err)
			}
		})
	}
}

func TestValidateImagePath(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantCode Code
	}{
		{"png", "out.png", ""},
		{"upper jpeg", "OUT.JPEG", ""},
		{"tiff", "a/b.tiff", ""},
		{"no extension", "out", ErrCodeInvalidFormat},
		{"svg", "out.svg", ErrCodeInvalidFormat},
		{"empty", "", ErrCodeInvalidPath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateImagePath(tt.input)
			if got := GetCode(err); got != tt.wantCode {
				t.Errorf("ValidateImagePath(%q) code = %q, want %q", tt.input, got, tt.wantCode)
			}
		})
	}
}

func TestErrorCodesAreUnique(t *testing.T) {
	codes := []Code{
		ErrCodeInvalidInput,
		ErrCodeInvalidConfig,
		ErrCodeInvalidPath,
		ErrCodeInvalidFormat,
		ErrCodeFileNotFound,
		ErrCodeToolNotFound,
		ErrCodeCaptureFailed,
		ErrCodeDisplayFailed,
		ErrCodeInternal,
		ErrCodeUnsupported,
	}

	seen := make(map[Code]bool)
	for _, c := range codes {
		if seen[c] {
			t.Errorf("duplicate error code: %s", c)
		}
		seen[c] = true
	}
}
