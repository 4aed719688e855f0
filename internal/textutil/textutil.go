package textutil

import (
	"hash/fnv"
	"regexp"
	"strings"
	"time"
)

var (
	htmlTagPattern    = regexp.MustCompile(`<[^>]+>`)
	nonWordPattern    = regexp.MustCompile(`[^\w\s]`)
	imgSrcPattern     = regexp.MustCompile(`(?i)<img[^>]+src=["']([^"']+)["']`)
	backgroundPattern = regexp.MustCompile(`(?i)background-image:\s*url\(["']?([^"')]+)["']?\)`)
)

// CleanText strips HTML markup from free text, collapses whitespace
// runs to single spaces and trims the result.
func CleanText(text string) string {
	if text == "" {
		return ""
	}
	text = htmlTagPattern.ReplaceAllString(text, "")
	return strings.Join(strings.Fields(text), " ")
}

// NormalizeTitle lower-cases a title and strips everything except word
// and space characters. Used for approximate identity comparisons in
// deduplication and cross-source counting.
func NormalizeTitle(title string) string {
	title = strings.ToLower(strings.TrimSpace(title))
	return strings.TrimSpace(nonWordPattern.ReplaceAllString(title, ""))
}

// dateFormats are tried in order. Upstream feeds mix RFC-822 style
// dates (with zone name or numeric offset, one- or two-digit days),
// ISO-8601 with and without offset, and plain dates.
var dateFormats = []string{
	time.RFC1123Z,
	time.RFC1123,
	"Mon, 2 Jan 2006 15:04:05 -0700",
	"Mon, 2 Jan 2006 15:04:05 MST",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseDate resolves a textual date into a timestamp. Each known
// format is attempted in order; anything unparseable falls back to the
// current time so callers always get a usable value.
func ParseDate(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Now()
	}
	for _, format := range dateFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Now()
}

// placeholderImages is the fixed pool of fallback article images.
var placeholderImages = []string{
	"https://images.unsplash.com/photo-1677442136019-21780ecad995?w=800&h=600&fit=crop",
	"https://images.unsplash.com/photo-1485827404703-89b55fcc595e?w=800&h=600&fit=crop",
	"https://images.unsplash.com/photo-1555255707-c07966088b7b?w=800&h=600&fit=crop",
	"https://images.unsplash.com/photo-1488590528505-98d2b5aba04b?w=800&h=600&fit=crop",
	"https://images.unsplash.com/photo-1518770660439-4636190af475?w=800&h=600&fit=crop",
	"https://images.unsplash.com/photo-1504639725590-34d0984388bd?w=800&h=600&fit=crop",
	"https://images.unsplash.com/photo-1451187580459-43490279c0fa?w=800&h=600&fit=crop",
	"https://images.unsplash.com/photo-1558494949-ef010cbdcc31?w=800&h=600&fit=crop",
	"https://images.unsplash.com/photo-1635070041078-e363dbe005cb?w=800&h=600&fit=crop",
	"https://images.unsplash.com/photo-1550751827-4bd374c3f58b?w=800&h=600&fit=crop",
	"https://images.unsplash.com/photo-1555949963-aa79dcee981c?w=800&h=600&fit=crop",
	"https://images.unsplash.com/photo-1551288049-bebda4e38f71?w=800&h=600&fit=crop",
	"https://images.unsplash.com/photo-1620712943543-bcc4688e7485?w=800&h=600&fit=crop",
	"https://images.unsplash.com/photo-1526374965328-7f61d4dc18c5?w=800&h=600&fit=crop",
	"https://images.unsplash.com/photo-1507146153580-69a1fe6d8aa1?w=800&h=600&fit=crop",
}

// PlaceholderImage deterministically selects a fallback image for the
// given title. The same title always maps to the same pool entry.
func PlaceholderImage(title string) string {
	h := fnv.New32a()
	h.Write([]byte(title))
	return placeholderImages[int(h.Sum32())%len(placeholderImages)]
}

// ImageFromHTML scans an HTML fragment (typically a feed description)
// for an inline image tag or a CSS background-image declaration and
// returns the first URL found, or the empty string.
func ImageFromHTML(fragment string) string {
	if fragment == "" {
		return ""
	}
	if m := imgSrcPattern.FindStringSubmatch(fragment); m != nil {
		return m[1]
	}
	if m := backgroundPattern.FindStringSubmatch(fragment); m != nil {
		return m[1]
	}
	return ""
}
