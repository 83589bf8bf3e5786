package grid

import (
	"fmt"
	"strconv"
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// collectCells flattens a block's rows into one visit-ordered slice
func collectCells(block MonthBlock) []Cell {
	var cells []Cell
	for _, row := range block.Rows {
		cells = append(cells, row...)
	}
	return cells
}

func TestBuild_SingleMonthHeader(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		want  string
	}{
		{"March 2024", date(2024, 3, 15), "March 2024"},
		{"December 2025", date(2025, 12, 1), "December 2025"},
		{"January rollover year", date(2026, 1, 31), "January 2026"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blocks := Build(tt.start, tt.start, time.Monday, nil, nil, nil)

			if len(blocks) != 1 {
				t.Fatalf("Build() produced %d blocks, want 1", len(blocks))
			}
			if blocks[0].Header != tt.want {
				t.Errorf("Header = %q, want %q", blocks[0].Header, tt.want)
			}
		})
	}
}

func TestBuild_EmptyRange(t *testing.T) {
	blocks := Build(date(2024, 6, 1), date(2024, 5, 1), time.Monday, nil, nil, nil)

	if len(blocks) != 0 {
		t.Errorf("Build() with end before start produced %d blocks, want 0", len(blocks))
	}
}

func TestBuild_UnnormalizedInputs(t *testing.T) {
	// Mid-month dates normalize to their months' first days
	blocks := Build(date(2024, 3, 20), date(2024, 5, 7), time.Monday, nil, nil, nil)

	if len(blocks) != 3 {
		t.Fatalf("Build() produced %d blocks, want 3", len(blocks))
	}

	want := []string{"March 2024", "April 2024", "May 2024"}
	for i, header := range want {
		if blocks[i].Header != header {
			t.Errorf("blocks[%d].Header = %q, want %q", i, blocks[i].Header, header)
		}
	}
}

func TestBuild_BackfillToSunday(t *testing.T) {
	// March 1 2024 is a Friday; the first row must start at Sunday Feb 25
	blocks := Build(date(2024, 3, 1), date(2024, 3, 1), time.Sunday, nil, nil, nil)

	if len(blocks) != 1 {
		t.Fatalf("Build() produced %d blocks, want 1", len(blocks))
	}

	first := blocks[0].Rows[0]
	wantTexts := []string{"25", "26", "27", "28", "29", "01", "02"}
	if len(first) != len(wantTexts) {
		t.Fatalf("first row has %d cells, want %d", len(first), len(wantTexts))
	}
	for i, want := range wantTexts {
		if first[i].Text != want {
			t.Errorf("first row cell %d = %q, want %q", i, first[i].Text, want)
		}
	}

	wantColumns := []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
	for i, want := range wantColumns {
		if blocks[0].Columns[i] != want {
			t.Errorf("column %d = %q, want %q", i, blocks[0].Columns[i], want)
		}
	}
}

func TestBuild_RowCompletenessAndCoverage(t *testing.T) {
	tests := []struct {
		name      string
		month     time.Time
		weekStart time.Weekday
		daysIn    int
	}{
		{"March 2024 from Sunday", date(2024, 3, 1), time.Sunday, 31},
		{"February 2024 leap from Monday", date(2024, 2, 1), time.Monday, 29},
		{"February 2025 from Saturday", date(2025, 2, 1), time.Saturday, 28},
		{"December 2025 from Wednesday", date(2025, 12, 1), time.Wednesday, 31},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blocks := Build(tt.month, tt.month, tt.weekStart, nil, nil, nil)
			if len(blocks) != 1 {
				t.Fatalf("Build() produced %d blocks, want 1", len(blocks))
			}
			block := blocks[0]

			// Every row is a complete calendar week
			for i, row := range block.Rows {
				if len(row) != 7 {
					t.Errorf("row %d has %d cells, want 7", i, len(row))
				}
				if row[0].Label != block.Columns[0] {
					t.Errorf("row %d starts at %q, want %q", i, row[0].Label, block.Columns[0])
				}
			}

			// Every day of the month appears exactly once
			counts := make(map[int]int)
			for _, cell := range collectCells(block) {
				n, err := strconv.Atoi(cell.Text)
				if err != nil {
					t.Fatalf("cell %q is not a plain day number", cell.Text)
				}
				counts[n]++
			}
			for d := 1; d <= tt.daysIn; d++ {
				if counts[d] == 0 {
					t.Errorf("day %d missing from grid", d)
				}
			}
			// Leading/trailing spill-over days may repeat a number, but
			// no number can appear more than twice in a single block.
			for n, c := range counts {
				if c > 2 {
					t.Errorf("day number %d appears %d times", n, c)
				}
			}
		})
	}
}

func TestBuild_HighlightDayMonotonic(t *testing.T) {
	// [5, 10, 15] across January–February 2025: each number is bracketed
	// exactly once, on its first occurrence in the walk (all in January).
	days := []int{5, 10, 15}
	blocks := Build(date(2025, 1, 1), date(2025, 2, 1), time.Monday, days, nil, nil)

	if len(blocks) != 2 {
		t.Fatalf("Build() produced %d blocks, want 2", len(blocks))
	}

	bracketed := make(map[string]int)
	for _, block := range blocks {
		for _, cell := range collectCells(block) {
			if cell.Mark == HighlightDay {
				bracketed[cell.Text]++
			}
		}
	}

	for _, d := range days {
		want := fmt.Sprintf("[%02d]", d)
		if bracketed[want] != 1 {
			t.Errorf("day %d bracketed %d times, want 1", d, bracketed[want])
		}
	}
	if len(bracketed) != len(days) {
		t.Errorf("bracketed %d distinct cells, want %d: %v", len(bracketed), len(days), bracketed)
	}

	// All three land in the January block
	for _, cell := range collectCells(blocks[1]) {
		if cell.Mark == HighlightDay {
			t.Errorf("February cell %q bracketed, want none", cell.Text)
		}
	}
}

func TestBuild_UnsortedHighlightDegrades(t *testing.T) {
	// [10, 5]: day 5 is walked before the head reaches it, so only 10
	// matches. January 2025 from Monday spills only into Feb 1–2, so the
	// leftover 5 never re-matches.
	blocks := Build(date(2025, 1, 1), date(2025, 1, 1), time.Monday, []int{10, 5}, nil, nil)

	var marked []string
	for _, cell := range collectCells(blocks[0]) {
		if cell.Mark == HighlightDay {
			marked = append(marked, cell.Text)
		}
	}

	if len(marked) != 1 || marked[0] != "[10]" {
		t.Errorf("bracketed cells = %v, want exactly [10]", marked)
	}
}

func TestBuild_CallerSliceNotMutated(t *testing.T) {
	days := []int{5, 10, 15}
	Build(date(2025, 1, 1), date(2025, 1, 1), time.Monday, days, nil, nil)

	want := []int{5, 10, 15}
	for i := range want {
		if days[i] != want[i] {
			t.Fatalf("highlight slice mutated: %v, want %v", days, want)
		}
	}
}

func TestBuild_DateHighlight(t *testing.T) {
	dates := NewDateSet(date(2024, 12, 25))
	blocks := Build(date(2024, 12, 1), date(2024, 12, 1), time.Monday, nil, dates, nil)

	var found *Cell
	for _, cell := range collectCells(blocks[0]) {
		if cell.Mark == HighlightDate {
			c := cell
			found = &c
		}
	}

	if found == nil {
		t.Fatal("no date-highlighted cell found")
	}
	if found.Text != "*25*" {
		t.Errorf("cell = %q, want %q", found.Text, "*25*")
	}
	if found.Label != "Wed" {
		t.Errorf("cell label = %q, want Wed (Dec 25 2024)", found.Label)
	}
}

func TestBuild_DayNumberOverridesDateHighlight(t *testing.T) {
	// Both rules match Dec 25: the day-number bracket wins
	dates := NewDateSet(date(2024, 12, 25))
	blocks := Build(date(2024, 12, 1), date(2024, 12, 1), time.Monday, []int{25}, dates, nil)

	var texts []string
	for _, cell := range collectCells(blocks[0]) {
		if cell.Mark != HighlightNone {
			texts = append(texts, cell.Text)
		}
	}

	if len(texts) != 1 || texts[0] != "[25]" {
		t.Errorf("highlighted cells = %v, want exactly [25]", texts)
	}
}

func TestBuild_ColumnOrderFollowsWeekStart(t *testing.T) {
	tests := []struct {
		weekStart time.Weekday
		want      []string
	}{
		{time.Monday, []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}},
		{time.Wednesday, []string{"Wed", "Thu", "Fri", "Sat", "Sun", "Mon", "Tue"}},
		{time.Saturday, []string{"Sat", "Sun", "Mon", "Tue", "Wed", "Thu", "Fri"}},
	}

	for _, tt := range tests {
		t.Run(tt.weekStart.String(), func(t *testing.T) {
			blocks := Build(date(2025, 6, 1), date(2025, 6, 1), tt.weekStart, nil, nil, nil)

			cols := blocks[0].Columns
			if len(cols) != 7 {
				t.Fatalf("got %d columns, want 7", len(cols))
			}
			for i, want := range tt.want {
				if cols[i] != want {
					t.Errorf("column %d = %q, want %q", i, cols[i], want)
				}
			}
		})
	}
}

func TestBuild_CustomLabeler(t *testing.T) {
	labels := func(d time.Weekday) string { return "D" + strconv.Itoa(int(d)) }
	blocks := Build(date(2025, 6, 1), date(2025, 6, 1), time.Sunday, nil, nil, labels)

	if blocks[0].Columns[0] != "D0" {
		t.Errorf("first column = %q, want D0", blocks[0].Columns[0])
	}
	if blocks[0].Rows[0][1].Label != "D1" {
		t.Errorf("second cell label = %q, want D1", blocks[0].Rows[0][1].Label)
	}
}

func TestDateSet_IgnoresTimeOfDay(t *testing.T) {
	s := NewDateSet(time.Date(2024, 12, 25, 15, 30, 0, 0, time.UTC))

	if !s.Contains(date(2024, 12, 25)) {
		t.Error("Contains(midnight) = false, want true")
	}
	if s.Contains(date(2024, 12, 26)) {
		t.Error("Contains(next day) = true, want false")
	}
}
