package db

import (
	"bufio"
	"io"
)

// Lines longer than maxLineSize are truncated; the rest of the line is
// discarded.
const maxLineSize = 1 << 20

// Cursor walks the data lines of a database file, skipping everything else.
type Cursor struct {
	r     *bufio.Reader
	rec   Student
	ready bool
}

func newCursor(r io.Reader) *Cursor {
	return &Cursor{r: bufio.NewReaderSize(r, 4096)}
}

func (c *Cursor) readLine() (string, error) {
	var line []byte
	for {
		chunk, err := c.r.ReadSlice('\n')
		if room := maxLineSize - len(line); room > 0 {
			if len(chunk) > room {
				chunk = chunk[:room]
			}
			line = append(line, chunk...)
		}
		if err == bufio.ErrBufferFull {
			continue
		}
		if err == io.EOF && len(line) > 0 {
			return string(line), nil
		}
		return string(line), err
	}
}

// Next reports whether another record is available.
func (c *Cursor) Next() (bool, error) {
	if c.ready {
		return true, nil
	}
	for {
		line, err := c.readLine()
		if err == io.EOF {
			return false, nil
		}
		if err != nil {
			return false, err
		}
		if rec, ok := DecodeLine(line); ok {
			c.rec = rec
			c.ready = true
			return true, nil
		}
	}
}

// Scan returns the current record and advances the cursor.
func (c *Cursor) Scan() (Student, error) {
	ok, err := c.Next()
	if err != nil {
		return Student{}, err
	}
	if !ok {
		return Student{}, io.EOF
	}
	c.ready = false
	return c.rec, nil
}
