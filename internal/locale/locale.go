package locale

import (
	"fmt"
	"time"

	"golang.org/x/text/language"
)

// Regions whose calendars conventionally start the week on Sunday or
// Saturday. Not exhaustive; everything else defaults to Monday.
var sundayFirst = map[string]bool{
	"US": true, "CA": true, "MX": true, "BR": true, "CO": true, "PE": true,
	"JP": true, "KR": true, "TW": true, "PH": true, "IN": true, "IL": true,
	"ZA": true,
}

var saturdayFirst = map[string]bool{
	"AE": true, "BH": true, "DZ": true, "EG": true, "IQ": true, "JO": true,
	"KW": true, "LY": true, "OM": true, "QA": true, "SA": true, "SD": true,
	"SY": true, "YE": true,
}

// Locale supplies the first-day-of-week default and abbreviated weekday
// labels for a BCP 47 tag. It is resolved once at the boundary and passed
// into the grid builder; there is no process-wide locale state.
type Locale struct {
	Tag      language.Tag
	FirstDay time.Weekday

	names [7]string // indexed by time.Weekday
}

// New resolves a BCP 47 tag (e.g. "en-US", "de-DE") into a Locale.
// The first-day default is derived from the tag's region; weekday labels
// default to English three-letter abbreviations.
func New(tag string) (*Locale, error) {
	t, err := language.Parse(tag)
	if err != nil {
		return nil, fmt.Errorf("invalid locale tag %q: %w", tag, err)
	}

	loc := &Locale{
		Tag:      t,
		FirstDay: firstDayForRegion(t),
	}
	for d := time.Sunday; d <= time.Saturday; d++ {
		loc.names[d] = d.String()[:3]
	}

	return loc, nil
}

// SetDayNames overrides the weekday labels. names must hold exactly 7
// non-empty entries, Sunday first.
func (l *Locale) SetDayNames(names []string) error {
	if len(names) != 7 {
		return fmt.Errorf("day_names must have exactly 7 entries, got %d", len(names))
	}
	for i, name := range names {
		if name == "" {
			return fmt.Errorf("day_names[%d] is empty", i)
		}
		l.names[i] = name
	}
	return nil
}

// DayName returns the abbreviated label for the given weekday
func (l *Locale) DayName(d time.Weekday) string {
	return l.names[d]
}

func firstDayForRegion(tag language.Tag) time.Weekday {
	region, _ := tag.Region()
	switch {
	case sundayFirst[region.String()]:
		return time.Sunday
	case saturdayFirst[region.String()]:
		return time.Saturday
	default:
		return time.Monday
	}
}
