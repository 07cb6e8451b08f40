package shell

import (
	"fmt"
	"io"
	"strings"

	"github.com/aita/cms/db"
	"github.com/mattn/go-runewidth"
)

const (
	idWidth        = 10
	nameWidth      = 20
	programmeWidth = 25
)

// Columns are padded by display width so wide characters stay aligned.
func writeLine(w io.Writer, id, name, programme, mark string) {
	fmt.Fprintf(w, "%s %s %s %s\n",
		runewidth.FillRight(id, idWidth),
		runewidth.FillRight(name, nameWidth),
		runewidth.FillRight(programme, programmeWidth),
		mark)
}

func writeHeader(w io.Writer) {
	writeLine(w, "ID", "Name", "Programme", "Mark")
	writeLine(w, strings.Repeat("-", idWidth), strings.Repeat("-", nameWidth),
		strings.Repeat("-", programmeWidth), strings.Repeat("-", 10))
}

func writeRow(w io.Writer, s db.Student) {
	writeLine(w, fmt.Sprint(s.ID), s.Name, s.Programme, db.FormatMark(s.Mark))
}

func writeTable(w io.Writer, records []db.Student) {
	writeHeader(w)
	for _, s := range records {
		writeRow(w, s)
	}
}
