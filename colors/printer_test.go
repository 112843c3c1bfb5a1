package colors

import (
	"bytes"
	"strings"
	"testing"
)

func TestFprintfWrapsWithColor(t *testing.T) {
	var buf bytes.Buffer
	RED.Fprintf(&buf, "fail: %d", 3)

	out := buf.String()
	if !strings.HasPrefix(out, string(RED)) {
		t.Error("output should start with the color code")
	}
	if !strings.HasSuffix(out, string(RESET)) {
		t.Error("output should end with the reset code")
	}
	if !strings.Contains(out, "fail: 3") {
		t.Errorf("output missing formatted text: %q", out)
	}
}

func TestSprintf(t *testing.T) {
	got := CYAN.Sprintf("x=%d", 1)
	want := string(CYAN) + "x=1" + string(RESET)
	if got != want {
		t.Errorf("Sprintf = %q, want %q", got, want)
	}
}

func TestStripANSI(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{string(RED) + "red" + string(RESET), "red"},
		{GREEN.Sprintf("ok %d", 2), "ok 2"},
		{"\033[1;31mbold red\033[0m", "bold red"},
	}

	for _, tt := range tests {
		if got := StripANSI(tt.in); got != tt.want {
			t.Errorf("StripANSI(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
