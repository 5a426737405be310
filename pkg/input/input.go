// Package input reads the lines of files and standard input.
package input

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Stdin is the path that selects standard input.
const Stdin = "-"

// FileSource reads lines from the filesystem, with Stdin served from an
// injectable reader.
type FileSource struct {
	stdin io.Reader
	log   logrus.FieldLogger
}

// NewFileSource creates a FileSource. A nil logger discards debug output.
func NewFileSource(stdin io.Reader, log logrus.FieldLogger) *FileSource {
	if log == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		log = discard
	}
	return &FileSource{stdin: stdin, log: log}
}

// Lines returns the lines of path. Missing, unreadable or non-regular paths
// yield no lines.
func (s *FileSource) Lines(path string) []string {
	log := s.log.WithField("file", path)

	if path == Stdin {
		if s.stdin == nil {
			return []string{}
		}
		lines, err := ReadLines(s.stdin)
		if err != nil {
			log.WithError(err).Debug("failed to read standard input")
		}
		return lines
	}

	info, err := os.Stat(path)
	if err != nil {
		log.WithError(err).Debug("skipping input")
		return []string{}
	}
	if !info.Mode().IsRegular() {
		log.Debug("skipping non-regular input")
		return []string{}
	}

	f, err := os.Open(path)
	if err != nil {
		log.WithError(err).Debug("skipping input")
		return []string{}
	}
	defer func() { _ = f.Close() }()

	lines, err := ReadLines(f)
	if err != nil {
		log.WithError(err).Debug("read stopped early")
	}
	return lines
}

// Lines reads path using the process's standard input for Stdin.
func Lines(path string) []string {
	return NewFileSource(os.Stdin, nil).Lines(path)
}

// ReadLines splits r into lines without their trailing newline. Lines read
// before an error are returned along with it.
func ReadLines(r io.Reader) ([]string, error) {
	lines := []string{}
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			lines = append(lines, strings.TrimSuffix(line, "\n"))
		}
		if errors.Is(err, io.EOF) {
			return lines, nil
		}
		if err != nil {
			return lines, err
		}
	}
}
