package counter

import "github.com/NivBraz/linefreq/internal/models"

// Table counts occurrences of distinct lines and remembers the order in
// which each line was first seen.
type Table struct {
	counts map[string]int
	order  []string
}

func New() *Table {
	return &Table{
		counts: make(map[string]int),
	}
}

func (t *Table) Add(line string) {
	if _, exists := t.counts[line]; !exists {
		t.order = append(t.order, line)
	}
	t.counts[line]++
}

// AddAll counts every line in lines.
func (t *Table) AddAll(lines []string) {
	for _, line := range lines {
		t.Add(line)
	}
}

func (t *Table) Count(line string) int {
	return t.counts[line]
}

// Len returns the number of distinct lines.
func (t *Table) Len() int {
	return len(t.order)
}

// Entries returns one LineCount per distinct line, in first-seen order.
func (t *Table) Entries() []models.LineCount {
	entries := make([]models.LineCount, 0, len(t.order))
	for _, line := range t.order {
		entries = append(entries, models.LineCount{
			Line:  line,
			Count: t.counts[line],
		})
	}
	return entries
}
