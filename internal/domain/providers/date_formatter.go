package providers

import (
	"time"

	"golang.org/x/text/language"
)

// NoticeTimePattern renders an hour slot the way booking notices word it,
// e.g. "January 5th, at 3:00 PM".
const NoticeTimePattern = "MMMM do', at' p"

// DateFormatter renders an instant for user-facing text. Pattern tokens
// follow the subset the notice wording needs (MMMM, do, p); literal text
// is single-quoted. Implementations fall back to English for locales
// they do not carry.
type DateFormatter interface {
	Format(t time.Time, pattern string, locale language.Tag) (string, error)
}
