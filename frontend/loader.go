package frontend

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
)

// MaxProgramSize is the largest image that fits between 0x200 and the end of
// the 4 KiB address space.
const MaxProgramSize = 4096 - 0x200

// File is a selected program source.
type File struct {
	Name string
	Open func() (io.ReadCloser, error)
}

// OSFile returns a File reading path from the local filesystem.
func OSFile(path string) *File {
	return &File{
		Name: filepath.Base(path),
		Open: func() (io.ReadCloser, error) { return os.Open(path) },
	}
}

// Poster queues work onto the loop goroutine.
type Poster interface {
	Post(fn func())
}

// LoaderConfig wires a Loader to its collaborators. Surface is cleared when a
// selection is cancelled and may be nil. MaxSize defaults to MaxProgramSize.
type LoaderConfig struct {
	Engine     Engine
	Controller *Controller
	Poster     Poster
	Notifier   Notifier
	Surface    Surface
	MaxSize    int
	Log        *slog.Logger
}

// Loader reads program images and stages them into the engine.
type Loader struct {
	cfg LoaderConfig
	log *slog.Logger

	seq     uint64
	last    *File
	current string
	reads   sync.WaitGroup
}

// NewLoader returns a loader for cfg.
func NewLoader(cfg LoaderConfig) *Loader {
	if cfg.MaxSize <= 0 {
		cfg.MaxSize = MaxProgramSize
	}
	if cfg.Log == nil {
		cfg.Log = slog.Default()
	}
	if cfg.Notifier == nil {
		cfg.Notifier = NotifierFunc(func(error) {})
	}
	return &Loader{cfg: cfg, log: cfg.Log}
}

// Load handles a file selection. A nil file means the selection was
// cancelled. The running session is stopped immediately in both cases; for a
// non-nil file the contents are read on another goroutine and staged on the
// loop goroutine once the read completes. A later Load supersedes an earlier
// one whose read has not completed yet.
func (l *Loader) Load(f *File) {
	l.seq++
	seq := l.seq
	l.cfg.Controller.Stop()

	if f == nil {
		l.current = ""
		if l.cfg.Surface != nil {
			l.cfg.Surface.Clear()
		}
		l.log.Warn("file selection cancelled")
		l.cfg.Notifier.Notify(ErrNoFileSelected)
		return
	}

	l.last = f
	l.log.Info("loading program", "name", f.Name)

	l.reads.Add(1)
	go func() {
		defer l.reads.Done()
		data, err := readFile(f)
		l.cfg.Poster.Post(func() {
			l.finish(seq, f.Name, data, err)
		})
	}()
}

// Reload loads the last selected file again.
func (l *Loader) Reload() {
	if l.last == nil {
		l.cfg.Notifier.Notify(ErrNoFileSelected)
		return
	}
	l.Load(l.last)
}

// Current returns the name of the program that is staged, or "" if none.
func (l *Loader) Current() string {
	return l.current
}

// Wait blocks until every read started by Load has posted its completion.
func (l *Loader) Wait() {
	l.reads.Wait()
}

func (l *Loader) finish(seq uint64, name string, data []byte, err error) {
	if seq != l.seq {
		l.log.Debug("dropping superseded load", "name", name)
		return
	}

	if err == nil {
		switch {
		case len(data) == 0:
			err = errors.New("file is empty")
		case len(data) > l.cfg.MaxSize:
			err = errors.Errorf("program is %d bytes, limit is %d", len(data), l.cfg.MaxSize)
		}
	}
	if err != nil {
		l.fail(name, err)
		return
	}

	l.cfg.Engine.Reset()
	if err := l.cfg.Engine.LoadProgram(data); err != nil {
		l.fail(name, err)
		return
	}

	l.current = name
	l.log.Info("program loaded", "name", name, "bytes", len(data))
	l.cfg.Controller.Start()
}

func (l *Loader) fail(name string, err error) {
	l.current = ""
	lerr := &LoadError{Name: name, Err: err}
	l.log.Error("load failed", "name", name, "err", err)
	l.cfg.Notifier.Notify(lerr)
}

func readFile(f *File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, errors.Wrap(err, "open")
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, errors.Wrap(err, "read")
	}
	return data, nil
}
