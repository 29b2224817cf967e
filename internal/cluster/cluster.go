// internal/cluster/cluster.go
package cluster

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// ErrEmptyCluster marks a cluster without member sources.
var ErrEmptyCluster = errors.New("cluster has no sources")

// Cluster is a named, ordered group of sequence sources hashed as a unit.
type Cluster struct {
	ID      string
	Sources []string
}

// Validate rejects clusters that cannot be counted.
func (c Cluster) Validate() error {
	if len(c.Sources) == 0 {
		return errors.Wrapf(ErrEmptyCluster, "cluster %q", c.ID)
	}
	return nil
}

// LoadTSV reads a data file of `path<TAB>cluster_id` lines.
func LoadTSV(path string) ([]Cluster, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open data file")
	}
	defer func() { _ = fh.Close() }()
	return ParseTSV(fh, path)
}

// ParseTSV groups sources by cluster id. Clusters keep the order of their
// first appearance and sources keep file order. Blank lines and lines
// starting with '#' are skipped; a line with only a path is its own cluster.
func ParseTSV(r io.Reader, name string) ([]Cluster, error) {
	var (
		list  []Cluster
		index = map[string]int{}
	)
	sc := bufio.NewScanner(r)
	ln := 0
	for sc.Scan() {
		ln++
		line := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(line) == "" || line[0] == '#' {
			continue
		}
		f := strings.Split(line, "\t")
		if len(f) > 2 {
			return nil, errors.Errorf("%s:%d bad field count %d", name, ln, len(f))
		}
		path := strings.TrimSpace(f[0])
		id := path
		if len(f) == 2 {
			id = strings.TrimSpace(f[1])
		}
		if path == "" || id == "" {
			return nil, errors.Errorf("%s:%d empty path or cluster id", name, ln)
		}
		i, ok := index[id]
		if !ok {
			i = len(list)
			index[id] = i
			list = append(list, Cluster{ID: id})
		}
		list[i].Sources = append(list[i].Sources, path)
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, name)
	}
	return list, nil
}
