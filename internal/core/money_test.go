package core

import "testing"

func TestParseCents(t *testing.T) {
	cases := []struct {
		in  string
		out Money
		ok  bool
	}{
		{"1", 100, true},
		{"1.0", 100, true},
		{"1.23", 123, true},
		{"1,23", 123, true},
		{"0.01", 1, true},
		{"0", 0, true},
		{".50", 50, true},
		{"1.005", 101, true}, // half-up rounding
		{"1.004", 100, true},
		{" 2.50 ", 250, true},
		{"-4.50", -450, true},
		{"+3", 300, true},
		{"-0.01", -1, true},
		{"", 0, false},
		{".", 0, false},
		{"-", 0, false},
		{"abc", 0, false},
		{"1.2.3", 0, false},
		{"1e3", 0, false},
		{"12a", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseCents(tc.in)
		if tc.ok {
			if err != nil || got != tc.out {
				t.Fatalf("ParseCents(%q) = %d, %v; want %d", tc.in, got, err, tc.out)
			}
		} else if err == nil {
			t.Fatalf("ParseCents(%q) expected error, got %d", tc.in, got)
		}
	}
}

func TestPlainRoundTrip(t *testing.T) {
	for _, cents := range []Money{0, 1, -1, 99, 100, -450, 123456, -987654321} {
		got, err := ParseCents(cents.Plain())
		if err != nil {
			t.Fatalf("ParseCents(%q): %v", cents.Plain(), err)
		}
		if got != cents {
			t.Fatalf("round trip %d -> %q -> %d", cents, cents.Plain(), got)
		}
	}
}
