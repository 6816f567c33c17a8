package phone

import "testing"

func TestNormalize(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "13800001111", "13800001111"},
		{"surrounding spaces", " 13800001111 ", "13800001111"},
		{"hyphenated", " 138-0000-1111", "13800001111"},
		{"country code", "+8613800001111", "13800001111"},
		{"country code with spaces", "+86 138 0000 1111", "13800001111"},
		{"tabs", "\t138-0000-1111\t", "13800001111"},
		{"empty", "", ""},
		{"only prefix", "+86", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Normalize(tc.input); got != tc.want {
				t.Errorf("Normalize(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestValid(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"13800001111", true},
		{"13693263577", true},
		{"23800001111", false},  // must start with 1
		{"1380000111", false},   // 10 digits
		{"138000011112", false}, // 12 digits
		{"1380000111a", false},
		{"", false},
	}

	for _, tc := range cases {
		if got := Valid(tc.input); got != tc.want {
			t.Errorf("Valid(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}
