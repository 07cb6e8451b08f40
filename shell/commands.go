package shell

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/aita/cms/db"
)

const maxPatternLen = 49

type command struct {
	name   string
	prefix bool
	run    func(sh *Shell, line string)
}

func (c command) matches(line string) bool {
	if c.prefix {
		return strings.HasPrefix(line, c.name)
	}
	return line == c.name
}

// Order matters: "show all" must be tried before the "show all sort by" prefix.
var commands = []command{
	{name: "exit", run: (*Shell).exit},
	{name: "quit", run: (*Shell).exit},
	{name: "open", run: func(sh *Shell, _ string) { sh.open() }},
	{name: "show all", run: (*Shell).showAll},
	{name: "show all sort by", prefix: true, run: (*Shell).showSorted},
	{name: "show summary", run: (*Shell).showSummary},
	{name: "insert", run: (*Shell).insert},
	{name: "query", prefix: true, run: (*Shell).query},
	{name: "update", prefix: true, run: (*Shell).update},
	{name: "delete", prefix: true, run: (*Shell).delete},
	{name: "save", run: (*Shell).save},
	{name: "search name", prefix: true, run: (*Shell).search},
	{name: "help", run: (*Shell).help},
}

var (
	idArg      = regexp.MustCompile(`^\s*id=\s*([+-]?\d+)`)
	patternArg = regexp.MustCompile(`^\s*name=\s*(\S+)`)
)

func parseID(line, verb string) (int, bool) {
	m := idArg.FindStringSubmatch(strings.TrimPrefix(line, verb))
	if m == nil {
		return 0, false
	}
	id, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return id, true
}

func parseMark(s string) (float32, bool) {
	mark, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return 0, false
	}
	return float32(mark), true
}

func (sh *Shell) exit(string) {
	if sh.db.Modified() && sh.state == Running {
		sh.say("exit.unsaved")
		sh.state = AwaitingExitConfirm
		return
	}
	sh.say("exit.goodbye")
	sh.state = Terminated
}

func (sh *Shell) open() bool {
	opened, err := sh.db.Open()
	if err != nil {
		sh.log.Warn("open database", "error", err)
		sh.say("open.error", sh.db.Filename())
		return false
	}
	if !opened {
		sh.say("open.missing", sh.db.Filename())
		return false
	}
	sh.say("open.ok", sh.db.Filename())
	return true
}

func (sh *Shell) save(string) {
	if err := sh.db.Save(); err != nil {
		sh.log.Warn("save database", "error", err)
		sh.say("save.error", sh.db.Filename())
		return
	}
	sh.say("save.ok", sh.db.Filename())
}

func (sh *Shell) showAll(string) {
	if sh.db.Len() == 0 {
		sh.say("table.empty")
		return
	}
	sh.say("table.all")
	writeTable(sh.out, sh.db.Select())
}

func (sh *Shell) showSorted(line string) {
	args := strings.Fields(strings.TrimPrefix(line, "show all sort by"))
	if len(args) == 0 {
		sh.say("sort.usage")
		return
	}
	field, order := args[0], "asc"
	if len(args) > 1 {
		order = args[1]
	}
	if sh.db.Len() == 0 {
		sh.say("table.empty")
		return
	}
	records, err := sh.db.Sorted(db.SortField(field), order)
	if err != nil {
		sh.say("sort.field")
		return
	}
	sh.say("table.sorted", field, order)
	writeTable(sh.out, records)
}

func (sh *Shell) showSummary(string) {
	sum, ok := sh.db.Summary()
	if !ok {
		sh.say("summary.empty")
		return
	}
	sh.say("summary.title")
	fmt.Fprintln(sh.out, strings.Repeat("=", 22))
	sh.print("summary.count", sum.Count)
	sh.print("summary.average", sum.Average)
	sh.print("summary.highest", db.FormatMark(sum.Highest.Mark), sum.Highest.Name)
	sh.print("summary.lowest", db.FormatMark(sum.Lowest.Mark), sum.Lowest.Name)
}

func (sh *Shell) insert(string) {
	if sh.db.Len() >= sh.db.Cap() {
		sh.say("insert.full")
		return
	}
	var s db.Student

	answer, ok := sh.ask("insert.id")
	if !ok {
		return
	}
	id, err := strconv.Atoi(answer)
	if err != nil {
		sh.say("insert.badid")
		return
	}
	if sh.db.Find(id) >= 0 {
		sh.say("record.exists", id)
		return
	}
	s.ID = id

	if s.Name, ok = sh.ask("insert.name"); !ok {
		return
	}
	if !db.ValidText(s.Name) {
		sh.say("insert.badname")
		return
	}
	if s.Programme, ok = sh.ask("insert.programme"); !ok {
		return
	}
	if !db.ValidText(s.Programme) {
		sh.say("insert.badprogramme")
		return
	}
	answer, ok = sh.ask("insert.mark")
	if !ok {
		return
	}
	if s.Mark, ok = parseMark(answer); !ok {
		sh.say("insert.badmark")
		return
	}

	switch err := sh.db.Insert(s); {
	case errors.Is(err, db.ErrTableFull):
		sh.say("insert.full")
	case errors.Is(err, db.ErrDuplicateID):
		sh.say("record.exists", id)
	case err != nil:
		sh.log.Warn("insert record", "id", id, "error", err)
	default:
		sh.say("insert.ok", id)
	}
}

func (sh *Shell) query(line string) {
	id, ok := parseID(line, "query")
	if !ok {
		sh.say("query.usage")
		return
	}
	s, found := sh.db.Get(id)
	if !found {
		sh.say("record.missing", id)
		return
	}
	sh.say("query.found", id)
	writeTable(sh.out, []db.Student{s})
}

func (sh *Shell) update(line string) {
	id, ok := parseID(line, "update")
	if !ok {
		sh.say("update.usage")
		return
	}
	cur, found := sh.db.Get(id)
	if !found {
		sh.say("record.missing", id)
		return
	}
	sh.say("update.start", id)

	var edit db.Edit
	name, ok := sh.ask("update.name", cur.Name)
	if !ok {
		return
	}
	if name != "" {
		if db.ValidText(name) {
			edit.Name = &name
		} else {
			sh.say("update.badname")
		}
	}
	programme, ok := sh.ask("update.programme", cur.Programme)
	if !ok {
		return
	}
	if programme != "" {
		if db.ValidText(programme) {
			edit.Programme = &programme
		} else {
			sh.say("update.badprogramme")
		}
	}
	answer, ok := sh.ask("update.mark", db.FormatMark(cur.Mark))
	if !ok {
		return
	}
	if answer != "" {
		if mark, valid := parseMark(answer); valid {
			edit.Mark = &mark
		} else {
			sh.say("update.badmark")
		}
	}

	if _, err := sh.db.Update(id, edit); err != nil {
		sh.say("record.missing", id)
		return
	}
	sh.say("update.ok", id)
}

func (sh *Shell) delete(line string) {
	id, ok := parseID(line, "delete")
	if !ok {
		sh.say("delete.usage")
		return
	}
	if sh.db.Find(id) < 0 {
		sh.say("record.missing", id)
		return
	}
	answer, _ := sh.ask("delete.confirm", id)
	if strings.ToLower(answer) != "y" {
		sh.say("delete.cancel")
		return
	}
	if err := sh.db.Delete(id); err != nil {
		sh.say("record.missing", id)
		return
	}
	sh.say("delete.ok", id)
}

func (sh *Shell) search(line string) {
	m := patternArg.FindStringSubmatch(strings.TrimPrefix(line, "search"))
	if m == nil {
		sh.say("search.usage")
		return
	}
	pattern := m[1]
	if r := []rune(pattern); len(r) > maxPatternLen {
		pattern = string(r[:maxPatternLen])
	}
	if sh.db.Len() == 0 {
		sh.say("search.none", pattern)
		return
	}
	matches := sh.db.Search(pattern)
	if len(matches) == 0 {
		sh.say("search.none", pattern)
		return
	}
	sh.say("search.start", pattern)
	writeTable(sh.out, matches)
	sh.say("search.found", len(matches))
}

var helpText = []struct{ usage, desc string }{
	{"OPEN", "Open database file"},
	{"SHOW ALL", "Display all records"},
	{"SHOW ALL SORT BY ID [ASC|DESC]", "Show sorted by ID"},
	{"SHOW ALL SORT BY MARK [ASC|DESC]", "Show sorted by mark"},
	{"SHOW SUMMARY", "Show statistics"},
	{"INSERT", "Add new student"},
	{"QUERY ID=number", "Search student by ID"},
	{"UPDATE ID=number", "Update student record"},
	{"DELETE ID=number", "Delete student record"},
	{"SEARCH NAME=pattern", "Search by name pattern"},
	{"SAVE", "Save to file"},
	{"EXIT/QUIT", "Exit program"},
}

func (sh *Shell) help(string) {
	fmt.Fprintln(sh.out, "\nAvailable Commands:")
	for _, h := range helpText {
		fmt.Fprintf(sh.out, "%-24s - %s\n", h.usage, h.desc)
	}
	fmt.Fprintln(sh.out)
}
