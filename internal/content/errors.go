package content

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// Error kinds surfaced by the content pipeline. Match with errors.Is.
var (
	ErrNotFound = errors.New("content not found")
	ErrParse    = errors.New("content parse failure")
	ErrIO       = errors.New("content i/o failure")
)

// Error ties an error kind to the file it happened on.
type Error struct {
	Kind error
	Path string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %v", e.Path, e.Kind)
	}
	return fmt.Sprintf("%s: %v: %v", e.Path, e.Kind, e.Err)
}

// Unwrap exposes both the kind and the cause.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// readError classifies a failed read as NotFound or IOFailure
func readError(path string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return &Error{Kind: ErrNotFound, Path: path, Err: err}
	}
	return &Error{Kind: ErrIO, Path: path, Err: err}
}

// ReadFile reads a content file, classifying failures by kind.
func ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, readError(path, err)
	}
	return data, nil
}
