package db

import "strings"

const (
	MaxNameLen      = 99
	MaxProgrammeLen = 99
)

// Student is one row of the StudentRecords table.
type Student struct {
	ID        int
	Name      string
	Programme string
	Mark      float32
}

// Clip truncates s to at most n characters and trims surrounding whitespace.
func Clip(s string, n int) string {
	r := []rune(s)
	if len(r) > n {
		r = r[:n]
	}
	return strings.TrimSpace(string(r))
}

// ValidText reports whether s can be stored as a name or programme in a
// tab-delimited data line.
func ValidText(s string) bool {
	return strings.TrimSpace(s) != "" && !strings.ContainsAny(s, "\t\r\n")
}
