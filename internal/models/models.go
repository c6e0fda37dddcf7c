package models

// LineCount is one ranked entry of a report.
type LineCount struct {
	Line  string
	Count int
}

type Report struct {
	Entries []LineCount
	// TotalLines is the number of non-blank lines that were counted.
	TotalLines int
}
