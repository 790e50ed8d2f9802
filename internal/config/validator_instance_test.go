package config

import (
	"testing"
)

func TestGetValidator(t *testing.T) {
	v1 := GetValidator()
	v2 := GetValidator()

	// Should return the same instance (singleton pattern)
	if v1 != v2 {
		t.Error("GetValidator should return the same instance (singleton pattern)")
	}
}

func TestElementNameValidation(t *testing.T) {
	v := GetValidator()

	tests := []struct {
		name     string
		tag      string
		expected bool
	}{
		{"two words", "super-cool", true},
		{"three words", "super-cool-component", true},
		{"digits", "x-1", true},
		{"no hyphen", "supercool", false},
		{"uppercase", "Super-cool", false},
		{"leading digit", "1-cool", false},
		{"reserved", "font-face", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Var(tt.tag, "element_name")
			if tt.expected && err != nil {
				t.Errorf("expected %q to be valid, got %v", tt.tag, err)
			}
			if !tt.expected && err == nil {
				t.Errorf("expected %q to be invalid", tt.tag)
			}
		})
	}
}

func TestEncapsulationValidation(t *testing.T) {
	v := GetValidator()

	for _, value := range []string{"", "shadow", "light", "true", "false"} {
		if err := v.Var(value, "encapsulation"); err != nil {
			t.Errorf("expected %q to be valid, got %v", value, err)
		}
	}
	if err := v.Var("closed", "encapsulation"); err == nil {
		t.Error("expected closed to be invalid")
	}
}
