package formatting

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/slotwise/booking/internal/domain/providers"
)

func TestEnglishFormatter_NoticeTimePattern(t *testing.T) {
	formatter := NewEnglishFormatter()

	tests := []struct {
		name string
		t    time.Time
		want string
	}{
		{
			name: "afternoon slot",
			t:    time.Date(2030, time.January, 5, 15, 0, 0, 0, time.UTC),
			want: "January 5th, at 3:00 PM",
		},
		{
			name: "morning slot",
			t:    time.Date(2030, time.March, 1, 9, 0, 0, 0, time.UTC),
			want: "March 1st, at 9:00 AM",
		},
		{
			name: "second of the month",
			t:    time.Date(2030, time.April, 2, 10, 0, 0, 0, time.UTC),
			want: "April 2nd, at 10:00 AM",
		},
		{
			name: "third of the month",
			t:    time.Date(2030, time.April, 3, 10, 0, 0, 0, time.UTC),
			want: "April 3rd, at 10:00 AM",
		},
		{
			name: "teens take th",
			t:    time.Date(2030, time.July, 11, 13, 0, 0, 0, time.UTC),
			want: "July 11th, at 1:00 PM",
		},
		{
			name: "twelfth takes th",
			t:    time.Date(2030, time.July, 12, 13, 0, 0, 0, time.UTC),
			want: "July 12th, at 1:00 PM",
		},
		{
			name: "thirteenth takes th",
			t:    time.Date(2030, time.July, 13, 13, 0, 0, 0, time.UTC),
			want: "July 13th, at 1:00 PM",
		},
		{
			name: "twenty-first takes st",
			t:    time.Date(2030, time.December, 21, 23, 0, 0, 0, time.UTC),
			want: "December 21st, at 11:00 PM",
		},
		{
			name: "midnight",
			t:    time.Date(2030, time.June, 30, 0, 0, 0, 0, time.UTC),
			want: "June 30th, at 12:00 AM",
		},
		{
			name: "noon",
			t:    time.Date(2030, time.June, 30, 12, 0, 0, 0, time.UTC),
			want: "June 30th, at 12:00 PM",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := formatter.Format(tt.t, providers.NoticeTimePattern, language.AmericanEnglish)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEnglishFormatter_Patterns(t *testing.T) {
	formatter := NewEnglishFormatter()
	instant := time.Date(2030, time.January, 5, 15, 30, 0, 0, time.UTC)

	t.Run("assorted tokens", func(t *testing.T) {
		got, err := formatter.Format(instant, "MMM d yyyy, h:mm a", language.English)
		require.NoError(t, err)
		assert.Equal(t, "Jan 5 2030, 3:30 PM", got)
	})

	t.Run("unknown locale falls back to English", func(t *testing.T) {
		got, err := formatter.Format(instant, providers.NoticeTimePattern, language.BrazilianPortuguese)
		require.NoError(t, err)
		assert.Equal(t, "January 5th, at 3:00 PM", got)
	})

	t.Run("rejects unsupported tokens", func(t *testing.T) {
		_, err := formatter.Format(instant, "QQQ", language.English)
		assert.Error(t, err)
	})

	t.Run("rejects unterminated quotes", func(t *testing.T) {
		_, err := formatter.Format(instant, "MMMM 'at", language.English)
		assert.Error(t, err)
	})
}
