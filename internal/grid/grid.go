package grid

import (
	"fmt"
	"time"

	"github.com/username/calview/pkg/dateutil"
)

// Highlight identifies which highlight rule produced a cell's formatting
type Highlight int

const (
	HighlightNone Highlight = iota
	HighlightDate           // exact-date match, marker pair
	HighlightDay            // day-of-month match, bracket pair
)

// Cell is one formatted day in a week row
type Cell struct {
	Label string    // column label, e.g. "Mon"
	Text  string    // display string, e.g. "05", "*25*", "[10]"
	Mark  Highlight // which rule formatted this cell
}

// WeekRow is one calendar week as ordered (label, cell) pairs
type WeekRow []Cell

// MonthBlock is one month's header plus its week rows.
// Columns holds the day-name labels in first-seen order; every row's
// cells follow that order.
type MonthBlock struct {
	Header  string
	Columns []string
	Rows    []WeekRow
}

// DateSet is a membership set of calendar days. Keys are normalized to
// the start of day, so membership ignores the time-of-day component.
type DateSet map[time.Time]struct{}

// NewDateSet builds a DateSet from the given dates
func NewDateSet(dates ...time.Time) DateSet {
	s := make(DateSet, len(dates))
	for _, d := range dates {
		s.Add(d)
	}
	return s
}

// Add inserts a date into the set
func (s DateSet) Add(date time.Time) {
	s[dateKey(date)] = struct{}{}
}

// Contains reports whether the set holds the given calendar day
func (s DateSet) Contains(date time.Time) bool {
	_, ok := s[dateKey(date)]
	return ok
}

// dateKey collapses a date to year+month+day so membership is independent
// of time-of-day and location
func dateKey(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
}

// Labeler maps a weekday to its column label
type Labeler func(time.Weekday) string

// Build produces one MonthBlock per month in [start, end], both normalized
// to the first day of their months. If end precedes start after
// normalization the result is empty; that is not an error.
//
// highlightDays is consumed front-to-back across the whole walk: a day is
// bracket-marked when its day-of-month equals the current head, and the
// head is then advanced — once, globally, never reset per month. The slice
// itself is never mutated. Values must be ascending and deduplicated for
// full coverage; unsorted input degrades to prefix-only matching.
//
// highlightDates marks days by exact-date membership, independent of order.
func Build(start, end time.Time, weekStart time.Weekday, highlightDays []int, highlightDates DateSet, labels Labeler) []MonthBlock {
	if labels == nil {
		labels = func(d time.Weekday) string { return d.String()[:3] }
	}

	month := dateutil.StartOfMonth(start)
	last := dateutil.StartOfMonth(end)

	var blocks []MonthBlock
	next := 0 // index of the next unconsumed highlight day number
	for !month.After(last) {
		blocks = append(blocks, buildMonth(month, weekStart, highlightDays, &next, highlightDates, labels))
		month = dateutil.NextMonth(month)
	}
	return blocks
}

// buildMonth walks one month's grid: back-fill to the nearest preceding
// weekStart day, then step forward one day at a time, closing a row each
// time the weekday returns to weekStart. The walk only stops at a row
// boundary on or after the next month's first day, so leading days of the
// previous month and trailing days of the next month are included.
func buildMonth(first time.Time, weekStart time.Weekday, highlightDays []int, next *int, highlightDates DateSet, labels Labeler) MonthBlock {
	block := MonthBlock{
		Header: fmt.Sprintf("%s %d", first.Month(), first.Year()),
	}
	boundary := dateutil.NextMonth(first)
	seen := make(map[string]bool, 7)

	day := dateutil.StartOfWeek(first, weekStart)
	var row WeekRow
	for {
		label := labels(day.Weekday())
		if !seen[label] {
			seen[label] = true
			block.Columns = append(block.Columns, label)
		}

		cell := Cell{Label: label, Text: fmt.Sprintf("%02d", day.Day())}
		// Date-highlight is checked first; a day-number match below
		// overwrites it with its own bracketing.
		if highlightDates.Contains(day) {
			cell.Text = "*" + cell.Text + "*"
			cell.Mark = HighlightDate
		}
		if *next < len(highlightDays) && highlightDays[*next] == day.Day() {
			cell.Text = fmt.Sprintf("[%02d]", day.Day())
			cell.Mark = HighlightDay
			*next++
		}
		row = append(row, cell)

		day = day.AddDate(0, 0, 1)
		if day.Weekday() == weekStart {
			block.Rows = append(block.Rows, row)
			row = nil
			if !day.Before(boundary) {
				break
			}
		}
	}
	return block
}
