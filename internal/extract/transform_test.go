package extract

import "testing"

func TestStripSiteSuffix(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Example Channel | Invidious", "Example Channel"},
		{"  Example Channel   |   Invidious  ", "Example Channel"},
		{"Rock | Roll | Invidious", "Rock | Roll"},
		{"No Suffix Here", "No Suffix Here"},
		{"Trailing |", "Trailing"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := StripSiteSuffix(tt.input)
			if got != tt.expected {
				t.Errorf("StripSiteSuffix(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestDecodeNewlines(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"escaped newline", `line one\nline two`, "line one\nline two"},
		{"several", `a\nb\nc`, "a\nb\nc"},
		{"real newline untouched", "a\nb", "a\nb"},
		{"no escapes", "plain", "plain"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			once := DecodeNewlines(tt.input)
			if once != tt.expected {
				t.Errorf("DecodeNewlines(%q) = %q, want %q", tt.input, once, tt.expected)
			}
			if twice := DecodeNewlines(once); twice != once {
				t.Errorf("DecodeNewlines not idempotent: %q -> %q", once, twice)
			}
		})
	}
}

func TestChannelImageURL(t *testing.T) {
	got := ChannelImageURL("AbCdEf")
	want := "https://yt3.ggpht.com/AbCdEf=s512-c-k-c0x00ffffff-no-rj"
	if got != want {
		t.Errorf("ChannelImageURL = %q, want %q", got, want)
	}
}

func TestUnescapeHTML(t *testing.T) {
	got := UnescapeHTML("Tom &amp; Jerry&#39;s &quot;Show&quot;")
	want := `Tom & Jerry's "Show"`
	if got != want {
		t.Errorf("UnescapeHTML = %q, want %q", got, want)
	}
}
