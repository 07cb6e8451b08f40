package db

import (
	"cmp"
	"slices"
	"strings"
)

// Find returns the index of the first record with the given id, or -1.
func (db *DB) Find(id int) int {
	for i, s := range db.records {
		if s.ID == id {
			return i
		}
	}
	return -1
}

// Get returns the first record with the given id.
func (db *DB) Get(id int) (Student, bool) {
	i := db.Find(id)
	if i < 0 {
		return Student{}, false
	}
	return db.records[i], true
}

// Insert appends s to the end of the table.
func (db *DB) Insert(s Student) error {
	if len(db.records) >= db.capacity {
		return ErrTableFull
	}
	if db.Find(s.ID) >= 0 {
		return ErrDuplicateID
	}
	if !ValidText(s.Name) || !ValidText(s.Programme) {
		return ErrInvalidText
	}
	s.Name = Clip(s.Name, MaxNameLen)
	s.Programme = Clip(s.Programme, MaxProgrammeLen)
	db.records = append(db.records, s)
	db.modified = true
	db.log.Debug("record inserted", "id", s.ID)
	return nil
}

// Edit holds the replacement values for an update. Nil fields keep the
// current value.
type Edit struct {
	Name      *string
	Programme *string
	Mark      *float32
}

// Update applies e to the first record with the given id. The table is marked
// modified even when e changes nothing. Invalid text leaves the record as is.
func (db *DB) Update(id int, e Edit) (Student, error) {
	i := db.Find(id)
	if i < 0 {
		return Student{}, ErrNotFound
	}
	if (e.Name != nil && !ValidText(*e.Name)) || (e.Programme != nil && !ValidText(*e.Programme)) {
		return Student{}, ErrInvalidText
	}
	s := &db.records[i]
	if e.Name != nil {
		s.Name = Clip(*e.Name, MaxNameLen)
	}
	if e.Programme != nil {
		s.Programme = Clip(*e.Programme, MaxProgrammeLen)
	}
	if e.Mark != nil {
		s.Mark = *e.Mark
	}
	db.modified = true
	db.log.Debug("record updated", "id", id)
	return *s, nil
}

// Delete removes the first record with the given id, keeping the order of the
// remaining records.
func (db *DB) Delete(id int) error {
	i := db.Find(id)
	if i < 0 {
		return ErrNotFound
	}
	db.records = slices.Delete(db.records, i, i+1)
	db.modified = true
	db.log.Debug("record deleted", "id", id)
	return nil
}

type SortField string

const (
	SortByID   SortField = "id"
	SortByMark SortField = "mark"
)

// Sorted returns a sorted copy of the records. Any order other than "desc"
// sorts ascending. The table itself is not reordered.
func (db *DB) Sorted(field SortField, order string) ([]Student, error) {
	var compare func(a, b Student) int
	switch field {
	case SortByID:
		compare = func(a, b Student) int { return cmp.Compare(a.ID, b.ID) }
	case SortByMark:
		compare = func(a, b Student) int { return cmp.Compare(a.Mark, b.Mark) }
	default:
		return nil, ErrInvalidSortField
	}
	if order == "desc" {
		asc := compare
		compare = func(a, b Student) int { return asc(b, a) }
	}
	records := db.Select()
	slices.SortStableFunc(records, compare)
	return records, nil
}

// Search returns the records whose name contains pattern, ignoring case.
func (db *DB) Search(pattern string) []Student {
	pattern = strings.ToLower(pattern)
	var matches []Student
	for _, s := range db.records {
		if strings.Contains(strings.ToLower(s.Name), pattern) {
			matches = append(matches, s)
		}
	}
	return matches
}

type Summary struct {
	Count   int
	Average float64
	Highest Student
	Lowest  Student
}

// Summary computes statistics over the marks. ok is false for an empty table.
// On ties the earliest record wins.
func (db *DB) Summary() (sum Summary, ok bool) {
	if len(db.records) == 0 {
		return sum, false
	}
	sum.Highest = db.records[0]
	sum.Lowest = db.records[0]
	var total float64
	for _, s := range db.records {
		total += float64(s.Mark)
		if s.Mark > sum.Highest.Mark {
			sum.Highest = s
		}
		if s.Mark < sum.Lowest.Mark {
			sum.Lowest = s
		}
	}
	sum.Count = len(db.records)
	sum.Average = total / float64(sum.Count)
	return sum, true
}
