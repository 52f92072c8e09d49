package formatting

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"

	"github.com/slotwise/booking/internal/domain/providers"
)

// EnglishFormatter implements the DateFormatter interface for English
// locales. Any other locale falls back to English rather than failing,
// so a missing translation never blocks a booking.
type EnglishFormatter struct{}

// NewEnglishFormatter creates a new English date formatter
func NewEnglishFormatter() providers.DateFormatter {
	return &EnglishFormatter{}
}

// Format renders t according to the pattern. Supported tokens: MMMM, MMM,
// do, d, yyyy, h, mm, a, p. Literal text is single-quoted.
func (f *EnglishFormatter) Format(t time.Time, pattern string, _ language.Tag) (string, error) {
	var out strings.Builder
	runes := []rune(pattern)

	for i := 0; i < len(runes); {
		r := runes[i]

		if r == '\'' {
			end := -1
			for j := i + 1; j < len(runes); j++ {
				if runes[j] == '\'' {
					end = j
					break
				}
			}
			if end < 0 {
				return "", fmt.Errorf("unterminated quote in pattern %q", pattern)
			}
			out.WriteString(string(runes[i+1 : end]))
			i = end + 1
			continue
		}

		if !isPatternLetter(r) {
			out.WriteRune(r)
			i++
			continue
		}

		j := i
		for j < len(runes) && runes[j] == r {
			j++
		}
		token := string(runes[i:j])

		// "do" is the one two-letter token mixing letters
		if token == "d" && j < len(runes) && runes[j] == 'o' {
			token = "do"
			j++
		}

		rendered, err := renderToken(token, t)
		if err != nil {
			return "", err
		}
		out.WriteString(rendered)
		i = j
	}

	return out.String(), nil
}

func isPatternLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func renderToken(token string, t time.Time) (string, error) {
	switch token {
	case "MMMM":
		return t.Month().String(), nil
	case "MMM":
		return t.Format("Jan"), nil
	case "do":
		return ordinal(t.Day()), nil
	case "d":
		return fmt.Sprintf("%d", t.Day()), nil
	case "yyyy":
		return t.Format("2006"), nil
	case "h":
		return t.Format("3"), nil
	case "mm":
		return t.Format("04"), nil
	case "a":
		return t.Format("PM"), nil
	case "p":
		return t.Format("3:04 PM"), nil
	default:
		return "", fmt.Errorf("unsupported pattern token %q", token)
	}
}

// ordinal renders 1 -> "1st", 2 -> "2nd", 11 -> "11th", 22 -> "22nd"
func ordinal(day int) string {
	suffix := "th"
	if day%100 < 11 || day%100 > 13 {
		switch day % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return fmt.Sprintf("%d%s", day, suffix)
}
