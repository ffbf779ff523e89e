package datex

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixClock(t *testing.T, at time.Time) {
	t.Helper()
	orig := nowFn
	nowFn = func() time.Time { return at }
	t.Cleanup(func() { nowFn = orig })
}

func TestFormat_Relative(t *testing.T) {
	ref := time.Date(2024, time.January, 10, 10, 0, 0, 0, time.UTC)
	fixClock(t, ref)

	tests := []struct {
		name  string
		value string
		want  time.Time
	}{
		{name: "minutes", value: "+15 minutes", want: ref.Add(15 * time.Minute)},
		{name: "abbreviated", value: "+15 min", want: ref.Add(15 * time.Minute)},
		{name: "negative hours", value: "-3 hours", want: ref.Add(-3 * time.Hour)},
		{name: "month", value: "+1 month", want: ref.AddDate(0, 1, 0)},
		{name: "compound", value: "+1 week 2 days", want: ref.AddDate(0, 0, 9)},
		{name: "detached sign", value: "+ 1 day", want: ref.AddDate(0, 0, 1)},
		{name: "now", value: "now", want: ref},
		{name: "tomorrow", value: "tomorrow", want: time.Date(2024, time.January, 11, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Format(ISO, tt.value, "")
			require.NoError(t, err)
			assert.Equal(t, tt.want.Format(ISO), got)
		})
	}
}

func TestFormat_NaturalLanguage(t *testing.T) {
	ref := time.Date(2024, time.January, 10, 10, 0, 0, 0, time.UTC)
	fixClock(t, ref)

	tests := []struct {
		name  string
		value string
		want  time.Time
	}{
		{name: "unsigned minutes", value: "15 minutes", want: ref.Add(15 * time.Minute)},
		{name: "unsigned day", value: "1 day", want: ref.AddDate(0, 0, 1)},
		{name: "ago", value: "3 days ago", want: ref.AddDate(0, 0, -3)},
		{name: "tomorrow with time", value: "tomorrow 12:00", want: time.Date(2024, time.January, 11, 12, 0, 0, 0, time.UTC)},
		{name: "tomorrow at time", value: "tomorrow at 9:30", want: time.Date(2024, time.January, 11, 9, 30, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToISO(tt.value, "")
			require.NoError(t, err)
			assert.Equal(t, tt.want.Format(ISO), got)
		})
	}

	t.Run("next month", func(t *testing.T) {
		got, err := Parse("next month")
		require.NoError(t, err)
		assert.True(t, got.After(ref))
		assert.Equal(t, time.February, got.Month())
	})
}

func TestFormat_Absolute(t *testing.T) {
	fixClock(t, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC))

	got, err := ToISO("20101005T154000+02", "")
	require.NoError(t, err)
	assert.Equal(t, "2010-10-05T15:40:00+02:00", got)

	got, err = ToISOBasic("2010-10-05T15:40:00+02:00", "")
	require.NoError(t, err)
	assert.Equal(t, "20101005T154000+0200", got)

	got, err = ToISO("2010-10-05 15:40", "")
	require.NoError(t, err)
	assert.Equal(t, "2010-10-05T15:40:00Z", got)
}

func TestFormat_FallbackAndPeriods(t *testing.T) {
	ref := time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC)
	fixClock(t, ref)

	got, err := ToISOBasic("", "+15 minutes")
	require.NoError(t, err)
	assert.Equal(t, "20240310T121500+0000", got)

	got, err = Format(ISO, "", "")
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = ToISOBasic("P1D", "")
	require.NoError(t, err)
	assert.Equal(t, "+1D", got)

	got, err = ToISOBasic("p2W", "+1 month")
	require.NoError(t, err)
	assert.Equal(t, "+2W", got)
}

func TestToHuman(t *testing.T) {
	fixClock(t, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC))

	got, err := ToHuman("", "")
	require.NoError(t, err)
	assert.Equal(t, Never, got)

	got, err = ToHuman("2010-10-05T15:40:00+02:00", "")
	require.NoError(t, err)
	assert.Equal(t, "October 5, 2010 at 15:40:00 +0200", got)
}

func TestParse_Unparsable(t *testing.T) {
	_, err := Parse("not a date at all")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnparsable))

	_, err = Parse("+3 parsecs")
	require.Error(t, err)
}

func TestFormatAll(t *testing.T) {
	fixClock(t, time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC))

	got, err := FormatAll("", "+15 minutes", ISOBasic, ISO)
	require.NoError(t, err)
	assert.Equal(t, []string{"20240310T121500+0000", "2024-03-10T12:15:00Z"}, got)

	got, err = FormatAll("P1M", "", ISOBasic, ISO)
	require.NoError(t, err)
	assert.Equal(t, []string{"+1M", "+1M"}, got)

	got, err = FormatAll("", "", ISO)
	require.NoError(t, err)
	assert.Equal(t, []string{""}, got)
}
