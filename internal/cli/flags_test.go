package cli

import "testing"

func TestByteSizeFlag(t *testing.T) {
	tests := []struct {
		input string
		want  int64
	}{
		{"1024", 1024},
		{"2MiB", 2 << 20},
		{"500KB", 500000},
		{" 1 KiB ", 1024},
	}
	for _, tt := range tests {
		var f byteSizeFlag
		if err := f.Set(tt.input); err != nil {
			t.Errorf("Set(%q) failed: %v", tt.input, err)
			continue
		}
		if f.Value != tt.want {
			t.Errorf("Set(%q) got %d, want %d", tt.input, f.Value, tt.want)
		}
	}

	var f byteSizeFlag
	if err := f.Set("invalid"); err == nil {
		t.Error("expected error for invalid input")
	}
	if f.Type() != "size" || f.String() != "0" {
		t.Errorf("unexpected zero flag %q %q", f.Type(), f.String())
	}
	f.Value = 2 << 20
	if s := f.String(); s != "2.0 MiB" {
		t.Errorf("String() got %q", s)
	}
}
