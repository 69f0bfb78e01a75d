package wallet

import "testing"

func TestFormatAddress(t *testing.T) {
	tests := []struct {
		name    string
		address string
		n       int
		want    string
	}{
		{name: "default width", address: "ABCDEFGHIJKL", n: 4, want: "ABCD...IJKL"},
		{name: "status card width", address: "9xQeWvG816bUx9EPjHmaT23yvVM2ZWbrrpZb9PusVFin", n: 8, want: "9xQeWvG8...9PusVFin"},
		{name: "empty", address: "", n: 4, want: ""},
		{name: "non-positive width uses default", address: "ABCDEFGHIJKL", n: 0, want: "ABCD...IJKL"},
		{name: "too short to shorten", address: "ABCDEFGH", n: 4, want: "ABCDEFGH"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatAddress(tt.address, tt.n); got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestFormatAddressIsPure(t *testing.T) {
	first := FormatAddress("ABCDEFGHIJKL", 4)
	second := FormatAddress("ABCDEFGHIJKL", 4)
	if first != second {
		t.Fatalf("expected identical output, got %q and %q", first, second)
	}
}
