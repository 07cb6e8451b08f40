package shell

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aita/cms/db"
	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
	"gotest.tools/v3/fs"
)

const sampleFile = "Database Name: Sample-CMS.txt\n" +
	"Authors: Team\n" +
	"\n" +
	"Table Name: StudentRecords\n" +
	"ID\tName\t\tProgramme\t\tMark\n" +
	"2301234\tJoshua Chen\tSoftware Engineering\t70.5\n" +
	"2201234\tIsaac Teo\tComputer Science\t63.4\n" +
	"2304567\tAlice Tan\tDigital Supply Chain\t85.9\n"

func sampleDB(t *testing.T) *db.DB {
	t.Helper()
	dir := fs.NewDir(t, "cms", fs.WithFile("Sample-CMS.txt", sampleFile))
	t.Cleanup(dir.Remove)
	return db.New(filepath.Join(dir.Path(), "Sample-CMS.txt"), db.Options{})
}

func emptyDB(t *testing.T) *db.DB {
	t.Helper()
	dir := fs.NewDir(t, "cms")
	t.Cleanup(dir.Remove)
	return db.New(filepath.Join(dir.Path(), "Sample-CMS.txt"), db.Options{})
}

func run(t *testing.T, database *db.DB, script string) (string, *Shell) {
	t.Helper()
	var out bytes.Buffer
	sh := New(database, strings.NewReader(script), &out, nil)
	sh.Run()
	return out.String(), sh
}

func TestStartupMissingFile(t *testing.T) {
	out, sh := run(t, emptyDB(t), "")
	assert.Check(t, is.Contains(out, "Class Management System initialized."))
	assert.Check(t, is.Contains(out, "does not exist. A new database will be created."))
	assert.Check(t, !strings.Contains(out, "Successfully loaded"))
	assert.Equal(t, Terminated, sh.State())
}

func TestShowAll(t *testing.T) {
	out, _ := run(t, sampleDB(t), "show all\n")
	assert.Check(t, is.Contains(out, "CMS: Successfully loaded 3 student records."))
	assert.Check(t, is.Contains(out, `CMS: Here are all the records found in the table "StudentRecords".`))

	row := "2301234" + strings.Repeat(" ", 4) +
		"Joshua Chen" + strings.Repeat(" ", 10) +
		"Software Engineering" + strings.Repeat(" ", 6) + "70.5\n"
	assert.Check(t, is.Contains(out, row))
}

func TestShowAllEmpty(t *testing.T) {
	out, _ := run(t, emptyDB(t), "show all\nshow all sort by id\nshow summary\nsearch name=a\n")
	assert.Check(t, is.Contains(out, `No records found in the table "StudentRecords".`))
	assert.Check(t, is.Contains(out, "No records available for summary."))
	assert.Check(t, is.Contains(out, "No records found matching the pattern 'a'."))
}

func TestExitWithUnsavedChanges(t *testing.T) {
	database := sampleDB(t)
	script := "insert\n10\nZed\nCS\n55\n" +
		"exit\n" +
		"show all\n" +
		"quit\n" +
		"show all\n"
	out, sh := run(t, database, script)

	assert.Check(t, is.Contains(out, "A new record with ID=10 is successfully inserted."))
	assert.Check(t, is.Contains(out, "You have unsaved changes."))
	assert.Check(t, is.Contains(out, "Goodbye!"))
	assert.Equal(t, 1, strings.Count(out, "Here are all the records found"))
	assert.Equal(t, Terminated, sh.State())
	assert.Assert(t, database.Modified())
}

func TestExitAfterSave(t *testing.T) {
	database := sampleDB(t)
	out, sh := run(t, database, "insert\n10\nZed\nCS\n55\nsave\nexit\n")
	assert.Check(t, is.Contains(out, "is successfully saved."))
	assert.Check(t, !strings.Contains(out, "unsaved changes"))
	assert.Equal(t, Terminated, sh.State())

	reopened := db.New(database.Filename(), db.Options{})
	_, err := reopened.Open()
	assert.NilError(t, err)
	assert.Equal(t, 4, reopened.Len())
}

func TestExitStateMachine(t *testing.T) {
	var out bytes.Buffer
	database := sampleDB(t)
	sh := New(database, strings.NewReader(""), &out, nil)
	_, err := database.Open()
	assert.NilError(t, err)

	sh.Execute("EXIT")
	assert.Equal(t, Terminated, sh.State())

	sh = New(database, strings.NewReader("y\n"), &out, nil)
	sh.Execute("delete id=2201234")
	assert.Assert(t, database.Modified())
	sh.Execute("exit")
	assert.Equal(t, AwaitingExitConfirm, sh.State())
	sh.Execute("save")
	assert.Equal(t, AwaitingExitConfirm, sh.State())
	sh.Execute("exit")
	assert.Equal(t, Terminated, sh.State())
}

func TestInsert(t *testing.T) {
	database := sampleDB(t)
	out, _ := run(t, database, "INSERT\n42\n  Mary Lim \nData Science\n77.25\n")
	assert.Check(t, is.Contains(out, "CMS: Please enter student ID: "))
	assert.Check(t, is.Contains(out, "A new record with ID=42 is successfully inserted."))

	got, ok := database.Get(42)
	assert.Assert(t, ok)
	assert.Equal(t, db.Student{ID: 42, Name: "Mary Lim", Programme: "Data Science", Mark: 77.25}, got)
	assert.Equal(t, 42, database.Select()[3].ID)
}

func TestInsertRejected(t *testing.T) {
	cases := []struct {
		script string
		want   string
	}{
		{"insert\n2301234\n", "The record with ID=2301234 already exists."},
		{"insert\nabc\n", "Invalid ID format."},
		{"insert\n7\nBob\nCS\nhigh\n", "Invalid mark format."},
		{"insert\n7\n\n", "Invalid name format."},
		{"insert\n7\nBob\n\t\n", "Invalid programme format."},
	}
	for _, tc := range cases {
		database := sampleDB(t)
		out, _ := run(t, database, tc.script)
		assert.Check(t, is.Contains(out, tc.want), "script %q", tc.script)
		assert.Check(t, !database.Modified(), "script %q", tc.script)
		assert.Check(t, is.Equal(3, database.Len()), "script %q", tc.script)
	}

	out, _ := run(t, sampleDB(t), "insert\n2301234\n")
	assert.Check(t, !strings.Contains(out, "Please enter student name"))
}

func TestInsertFull(t *testing.T) {
	dir := fs.NewDir(t, "cms", fs.WithFile("Sample-CMS.txt", sampleFile))
	defer dir.Remove()
	database := db.New(filepath.Join(dir.Path(), "Sample-CMS.txt"), db.Options{Capacity: 3})

	out, _ := run(t, database, "insert\n")
	assert.Check(t, is.Contains(out, "Database is full. Cannot add more students."))
	assert.Check(t, !strings.Contains(out, "Please enter student ID"))
}

func TestQuery(t *testing.T) {
	out, _ := run(t, sampleDB(t), "query id=2201234\nquery id=1\nquery 5\n")
	assert.Check(t, is.Contains(out, "The record with ID=2201234 is found in the data table."))
	assert.Check(t, is.Contains(out, "Isaac Teo"))
	assert.Check(t, is.Contains(out, "The record with ID=1 does not exist."))
	assert.Check(t, is.Contains(out, "Invalid query format. Usage: QUERY ID=student_id"))
}

func TestUpdate(t *testing.T) {
	database := sampleDB(t)
	out, _ := run(t, database, "update id=2301234\n\n  Data Science \nabc\n")
	assert.Check(t, is.Contains(out, "Current name: Joshua Chen. New name: "))
	assert.Check(t, is.Contains(out, "Current mark: 70.5. New mark: "))
	assert.Check(t, is.Contains(out, "Invalid mark format. Keeping current value."))
	assert.Check(t, is.Contains(out, "The record with ID=2301234 is successfully updated."))

	got, _ := database.Get(2301234)
	assert.Equal(t, db.Student{ID: 2301234, Name: "Joshua Chen", Programme: "Data Science", Mark: 70.5}, got)
	assert.Assert(t, database.Modified())
}

func TestUpdateMissing(t *testing.T) {
	database := sampleDB(t)
	out, _ := run(t, database, "update id=99\nupdate\n")
	assert.Check(t, is.Contains(out, "The record with ID=99 does not exist."))
	assert.Check(t, is.Contains(out, "Invalid update format."))
	assert.Check(t, !strings.Contains(out, "New name"))
	assert.Assert(t, !database.Modified())
}

func TestDelete(t *testing.T) {
	database := sampleDB(t)
	out, _ := run(t, database, "delete id=2201234\nY\n")
	assert.Check(t, is.Contains(out, "The record with ID=2201234 is successfully deleted."))

	var ids []int
	for _, s := range database.Select() {
		ids = append(ids, s.ID)
	}
	assert.DeepEqual(t, []int{2301234, 2304567}, ids)
	assert.Assert(t, database.Modified())
}

func TestDeleteCancelled(t *testing.T) {
	database := sampleDB(t)
	out, _ := run(t, database, "delete id=2201234\nyes\ndelete id=5\ndelete id=abc\n")
	assert.Check(t, is.Contains(out, "The deletion is cancelled."))
	assert.Check(t, is.Contains(out, "The record with ID=5 does not exist."))
	assert.Check(t, is.Contains(out, "Invalid delete format."))
	assert.Equal(t, 1, strings.Count(out, "Are you sure"))
	assert.Equal(t, 3, database.Len())
	assert.Assert(t, !database.Modified())
}

func TestShowSorted(t *testing.T) {
	out, _ := run(t, sampleDB(t), "show all sort by mark desc\n")
	assert.Check(t, is.Contains(out, "Here are all the records sorted by mark (desc)."))
	alice := strings.Index(out, "Alice Tan")
	joshua := strings.Index(out, "Joshua Chen")
	isaac := strings.Index(out, "Isaac Teo")
	assert.Assert(t, alice < joshua && joshua < isaac)

	out, _ = run(t, sampleDB(t), "show all sort by id\nshow all\n")
	assert.Check(t, is.Contains(out, "sorted by id (asc)."))
	sorted := out[:strings.Index(out, "Here are all the records found")]
	assert.Assert(t, strings.Index(sorted, "2201234") < strings.Index(sorted, "2301234"))
	assert.Assert(t, strings.Index(sorted, "2301234") < strings.Index(sorted, "2304567"))
}

func TestShowSortedInvalid(t *testing.T) {
	out, _ := run(t, sampleDB(t), "show all sort by name\nshow all sort by\n")
	assert.Check(t, is.Contains(out, "Invalid sort field. Use 'ID' or 'MARK'."))
	assert.Check(t, is.Contains(out, "Invalid sort command."))
	assert.Check(t, !strings.Contains(out, "sorted by name"))
}

func TestSummary(t *testing.T) {
	out, _ := run(t, sampleDB(t), "show summary\n")
	assert.Check(t, is.Contains(out, "CMS: Summary Statistics\n======================\n"))
	assert.Check(t, is.Contains(out, "Total number of students: 3\n"))
	assert.Check(t, is.Contains(out, "Average mark: 73.27\n"))
	assert.Check(t, is.Contains(out, "Highest mark: 85.9 (Alice Tan)\n"))
	assert.Check(t, is.Contains(out, "Lowest mark: 63.4 (Isaac Teo)\n"))
}

func TestSearch(t *testing.T) {
	out, _ := run(t, sampleDB(t), "SEARCH NAME=ALI\nsearch name=xyz\nsearch name\n")
	assert.Check(t, is.Contains(out, "Searching for names containing 'ali'"))
	assert.Check(t, is.Contains(out, "Found 1 record(s) matching the pattern."))
	assert.Check(t, is.Contains(out, "No records found matching the pattern 'xyz'."))
	assert.Check(t, is.Contains(out, "Invalid search format."))
}

func TestUnknownAndHelp(t *testing.T) {
	out, sh := run(t, emptyDB(t), "   \nfrobnicate\nhelp\n")
	assert.Check(t, is.Contains(out, "Unknown command 'frobnicate'."))
	assert.Check(t, is.Contains(out, "Available Commands:"))
	assert.Check(t, is.Contains(out, "SEARCH NAME=pattern"))
	assert.Equal(t, 1, strings.Count(out, "Unknown command"))
	assert.Equal(t, Terminated, sh.State())
}

func TestOpenReloads(t *testing.T) {
	database := sampleDB(t)
	out, _ := run(t, database, "delete id=2201234\ny\nopen\n")
	assert.Check(t, is.Contains(out, "is successfully opened."))
	assert.Equal(t, 3, database.Len())
	assert.Assert(t, !database.Modified())
}

func TestLongInputLine(t *testing.T) {
	database := sampleDB(t)
	script := "insert\n10\nZed\nCS\n55\n" +
		"search name=" + strings.Repeat("a", 70000) + "\n" +
		"show all"
	out, sh := run(t, database, script)

	pattern := strings.Repeat("a", maxPatternLen)
	assert.Check(t, is.Contains(out, "No records found matching the pattern '"+pattern+"'."))
	assert.Check(t, is.Contains(out, "Here are all the records found"))
	assert.Check(t, is.Contains(out, "Zed"))
	assert.Equal(t, Terminated, sh.State())
	assert.Equal(t, 4, database.Len())
}

func TestWriteRowWideCharacters(t *testing.T) {
	var buf bytes.Buffer
	writeRow(&buf, db.Student{ID: 1, Name: "王小明", Programme: "CS", Mark: 90})
	want := "1" + strings.Repeat(" ", 10) +
		"王小明" + strings.Repeat(" ", 15) +
		"CS" + strings.Repeat(" ", 24) + "90.0\n"
	assert.Equal(t, want, buf.String())
}

func TestParseID(t *testing.T) {
	cases := []struct {
		line string
		id   int
		ok   bool
	}{
		{"query id=5", 5, true},
		{"queryid=5", 5, true},
		{"query id= -3abc", -3, true},
		{"query  id=+12", 12, true},
		{"query id=x", 0, false},
		{"query 5", 0, false},
		{"query id=99999999999999999999", 0, false},
	}
	for _, tc := range cases {
		id, ok := parseID(tc.line, "query")
		assert.Check(t, is.Equal(tc.ok, ok), "line %q", tc.line)
		assert.Check(t, is.Equal(tc.id, id), "line %q", tc.line)
	}
}
