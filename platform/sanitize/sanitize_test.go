package sanitize

import "testing"

func TestViewValue(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"06 12345678", "06 12345678"},
		{"<b>0612</b>", "0612"},
		{"&lt;script&gt;alert(1)&lt;/script&gt;06", "alert(1)06"},
		{"06\t12\x00", "0612"},
		{" +31 ", " +31 "},
	}
	for _, tt := range tests {
		if got := ViewValue(tt.in); got != tt.want {
			t.Fatalf("ViewValue(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
