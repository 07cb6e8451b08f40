package db

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const (
	TableName      = "StudentRecords"
	DefaultAuthors = "Your Team Name"

	columnHeader = "ID\tName\t\tProgramme\t\tMark"
)

// DecodeLine parses one data line of the form id<TAB>name<TAB>programme<TAB>mark.
// A run of tabs counts as one separator. ok is false for blank, header and
// malformed lines, which callers skip.
func DecodeLine(line string) (s Student, ok bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return s, false
	}
	fields := strings.FieldsFunc(line, func(r rune) bool { return r == '\t' })
	if len(fields) != 4 {
		return s, false
	}
	name := Clip(fields[1], MaxNameLen)
	programme := Clip(fields[2], MaxProgrammeLen)
	if name == "" || programme == "" {
		return s, false
	}
	id, err := strconv.Atoi(fields[0])
	if err != nil {
		return s, false
	}
	mark, err := strconv.ParseFloat(strings.TrimSpace(fields[3]), 32)
	if err != nil {
		return s, false
	}
	return Student{
		ID:        id,
		Name:      name,
		Programme: programme,
		Mark:      float32(mark),
	}, true
}

// EncodeLine formats s as a data line without the trailing newline.
func EncodeLine(s Student) string {
	return fmt.Sprintf("%d\t%s\t%s\t%s", s.ID, s.Name, s.Programme, FormatMark(s.Mark))
}

// FormatMark renders a mark with exactly one decimal place.
func FormatMark(mark float32) string {
	return strconv.FormatFloat(float64(mark), 'f', 1, 64)
}

func writeFile(w io.Writer, name, authors string, records []Student) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "Database Name: %s\n", name)
	fmt.Fprintf(bw, "Authors: %s\n\n", authors)
	fmt.Fprintf(bw, "Table Name: %s\n", TableName)
	fmt.Fprintln(bw, columnHeader)
	for _, s := range records {
		fmt.Fprintln(bw, EncodeLine(s))
	}
	return bw.Flush()
}
