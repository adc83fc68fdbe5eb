package frontend

import (
	"bufio"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// Selection turns a user-entered path into a file selection. An empty or
// blank path is a cancelled selection and yields nil.
func Selection(path string) *File {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil
	}
	return OSFile(path)
}

// ScanSelections reads one path per line from r and posts each selection to
// the loop, where load runs. It returns when r is exhausted.
func ScanSelections(r io.Reader, p Poster, load func(*File)) error {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		f := Selection(sc.Text())
		p.Post(func() { load(f) })
	}
	return errors.Wrap(sc.Err(), "reading selections")
}
