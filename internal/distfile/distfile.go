// internal/distfile/distfile.go
package distfile

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"chopper/core/njtree"
)

// Load reads a whitespace-separated, row-major distance matrix. Line breaks
// carry no meaning; only the number of values (n²) does. '#' starts a
// comment that runs to the end of the line.
func Load(path string) (*njtree.Matrix, error) {
	rc, err := open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()
	return Parse(rc, path)
}

// Parse is Load over an open reader; name is used in error messages.
func Parse(r io.Reader, name string) (*njtree.Matrix, error) {
	var flat []float64
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 64*1024*1024)
	ln := 0
	for sc.Scan() {
		ln++
		line := sc.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		for _, f := range strings.Fields(line) {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, errors.Wrapf(err, "%s:%d", name, ln)
			}
			flat = append(flat, v)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, name)
	}
	m, err := njtree.NewMatrix(flat)
	if err != nil {
		return nil, errors.Wrap(err, name)
	}
	return m, nil
}

// LoadNames reads one leaf name per non-blank line.
func LoadNames(path string) ([]string, error) {
	rc, err := open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()

	var names []string
	sc := bufio.NewScanner(rc)
	for sc.Scan() {
		if s := strings.TrimSpace(sc.Text()); s != "" {
			names = append(names, s)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, path)
	}
	return names, nil
}

func open(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	fh, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open")
	}
	return fh, nil
}
