package db

import (
	"io"
	"os"
)

// Sink is the backing store a DB reads from on open and writes to on save.
type Sink interface {
	Name() string
	Open() (io.ReadCloser, error)
	Create() (io.WriteCloser, error)
}

type fileSink struct {
	path string
}

// FileSink returns a Sink backed by the file at path.
func FileSink(path string) Sink {
	return fileSink{path}
}

func (sink fileSink) Name() string {
	return sink.path
}

func (sink fileSink) Open() (io.ReadCloser, error) {
	return os.Open(sink.path)
}

func (sink fileSink) Create() (io.WriteCloser, error) {
	return os.Create(sink.path)
}
