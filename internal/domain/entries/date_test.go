package entries

import "testing"

func TestNormalizeDate(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"2025-06-01", "2025-06-01", false},
		{"2025/06/01", "2025-06-01", false},
		{"  2025-06-01  ", "2025-06-01", false},
		{"2025-13-01", "", true},
		{"06/01/2025", "", true},
		{"", "", true},
	}
	for _, tc := range cases {
		got, err := NormalizeDate(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("%q: expected error, got %q", tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%q: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("%q: expected %q, got %q", tc.in, tc.want, got)
		}
	}
}

func TestParseDate_LegacyFormat(t *testing.T) {
	a, err := ParseDate("2025/06/01")
	if err != nil {
		t.Fatalf("parse legacy: %v", err)
	}
	b, err := ParseDate("2025-06-01")
	if err != nil {
		t.Fatalf("parse canonical: %v", err)
	}
	if !a.Equal(b) {
		t.Fatal("legacy and canonical forms should parse to the same instant")
	}
}
