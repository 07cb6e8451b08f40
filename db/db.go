package db

import (
	"io/fs"
	"log/slog"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

const DefaultCapacity = 1000

type Options struct {
	Capacity int
	Authors  string
	Logger   *slog.Logger
}

// DB is the in-memory StudentRecords table bound to one backing file.
type DB struct {
	sink     Sink
	records  []Student
	capacity int
	authors  string
	modified bool
	log      *slog.Logger
}

// New returns an empty table bound to the file at path. Nothing is read
// until Open is called.
func New(path string, opts Options) *DB {
	return NewWithSink(FileSink(path), opts)
}

func NewWithSink(sink Sink, opts Options) *DB {
	if opts.Capacity <= 0 {
		opts.Capacity = DefaultCapacity
	}
	if opts.Authors == "" {
		opts.Authors = DefaultAuthors
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &DB{
		sink:     sink,
		capacity: opts.Capacity,
		authors:  opts.Authors,
		log:      opts.Logger.With("file", sink.Name()),
	}
}

func (db *DB) Filename() string { return db.sink.Name() }
func (db *DB) Len() int         { return len(db.records) }
func (db *DB) Cap() int         { return db.capacity }
func (db *DB) Modified() bool   { return db.modified }

// Open replaces the in-memory records with the data lines of the backing
// file. A missing file is not an error: the table is emptied and opened is
// false.
func (db *DB) Open() (opened bool, err error) {
	r, err := db.sink.Open()
	if errors.Is(err, fs.ErrNotExist) {
		db.records = db.records[:0]
		db.log.Info("database file does not exist")
		return false, nil
	}
	if err != nil {
		return false, errors.Wrapf(err, "db: open %s", db.sink.Name())
	}
	defer func() {
		err = multierr.Append(err, r.Close())
	}()

	records := make([]Student, 0)
	cur := newCursor(r)
	for len(records) < db.capacity {
		ok, err := cur.Next()
		if err != nil {
			return false, errors.Wrapf(err, "db: read %s", db.sink.Name())
		}
		if !ok {
			break
		}
		rec, err := cur.Scan()
		if err != nil {
			return false, err
		}
		records = append(records, rec)
	}
	db.records = records
	db.modified = false
	db.log.Info("database opened", "records", len(records))
	return true, nil
}

// Save overwrites the backing file with the header block and every record in
// table order. On failure the modified flag is left untouched.
func (db *DB) Save() (err error) {
	w, err := db.sink.Create()
	if err != nil {
		return errors.Wrapf(err, "db: create %s", db.sink.Name())
	}
	err = writeFile(w, db.sink.Name(), db.authors, db.records)
	err = multierr.Append(err, w.Close())
	if err != nil {
		db.log.Warn("database save failed", "error", err)
		return errors.Wrapf(err, "db: write %s", db.sink.Name())
	}
	db.modified = false
	db.log.Info("database saved", "records", len(db.records))
	return nil
}

// Select returns a copy of all records in table order.
func (db *DB) Select() []Student {
	records := make([]Student, len(db.records))
	copy(records, db.records)
	return records
}
