package textutil

import (
	"testing"
	"time"
)

func TestCleanText(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"", ""},
		{"plain text", "plain text"},
		{"<p>Hello <b>world</b></p>", "Hello world"},
		{"  spaced \n\t out  ", "spaced out"},
		{"<div class=\"x\">a</div>   <span>b</span>", "a b"},
	}

	for _, test := range tests {
		if got := CleanText(test.input); got != test.expected {
			t.Errorf("CleanText(%q) = %q, want %q", test.input, got, test.expected)
		}
	}
}

func TestNormalizeTitle(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"OpenAI Releases New Model!", "openai releases new model"},
		{"AI: The Future?", "ai the future"},
		{"  Already normalized  ", "already normalized"},
		{"", ""},
	}

	for _, test := range tests {
		if got := NormalizeTitle(test.input); got != test.expected {
			t.Errorf("NormalizeTitle(%q) = %q, want %q", test.input, got, test.expected)
		}
	}
}

func TestParseDateKnownFormats(t *testing.T) {
	tests := []struct {
		input    string
		expected time.Time
	}{
		{"Mon, 02 Jan 2006 15:04:05 -0700", time.Date(2006, 1, 2, 15, 4, 5, 0, time.FixedZone("", -7*3600))},
		{"Mon, 2 Jan 2006 15:04:05 -0700", time.Date(2006, 1, 2, 15, 4, 5, 0, time.FixedZone("", -7*3600))},
		{"2024-03-15T10:30:00Z", time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)},
		{"2024-03-15T10:30:00+02:00", time.Date(2024, 3, 15, 10, 30, 0, 0, time.FixedZone("", 2*3600))},
		{"2024-03-15T10:30:00", time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)},
		{"2024-03-15 10:30:00", time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)},
		{"2024-03-15", time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)},
	}

	for _, test := range tests {
		got := ParseDate(test.input)
		if !got.Equal(test.expected) {
			t.Errorf("ParseDate(%q) = %v, want %v", test.input, got, test.expected)
		}
	}
}

func TestParseDateFallbackToNow(t *testing.T) {
	for _, input := range []string{"", "not a date", "32/13/2024"} {
		before := time.Now()
		got := ParseDate(input)
		after := time.Now()

		if got.Before(before) || got.After(after) {
			t.Errorf("ParseDate(%q) = %v, expected a current timestamp", input, got)
		}
	}
}

func TestPlaceholderImageDeterministic(t *testing.T) {
	first := PlaceholderImage("OpenAI announces GPT-5")
	second := PlaceholderImage("OpenAI announces GPT-5")
	if first != second {
		t.Errorf("same title produced different placeholders: %q vs %q", first, second)
	}
	if first == "" {
		t.Error("placeholder must never be empty")
	}

	// Different titles should spread across the pool at least sometimes.
	other := PlaceholderImage("DeepMind safety research update")
	if other == "" {
		t.Error("placeholder must never be empty")
	}
}

func TestImageFromHTML(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"img tag", `<p>text</p><img src="https://example.com/a.jpg" alt="">`, "https://example.com/a.jpg"},
		{"img tag single quotes", `<img class='thumb' src='https://example.com/b.png'>`, "https://example.com/b.png"},
		{"background image", `<div style="background-image: url('https://example.com/c.gif')"></div>`, "https://example.com/c.gif"},
		{"background image unquoted", `<div style="background-image: url(https://example.com/d.jpg)"></div>`, "https://example.com/d.jpg"},
		{"no image", "<p>just text</p>", ""},
		{"empty", "", ""},
	}

	for _, test := range tests {
		if got := ImageFromHTML(test.input); got != test.expected {
			t.Errorf("%s: ImageFromHTML = %q, want %q", test.name, got, test.expected)
		}
	}
}
