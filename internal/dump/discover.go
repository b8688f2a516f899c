package dump

import (
	"os"
	"path/filepath"
	"strings"
)

// DefaultPrefix is the file name prefix of the dumps written by the argon
// input script.
const DefaultPrefix = "argon.lj."

// Discover lists the entries directly inside dir whose name starts with
// prefix. An empty prefix means DefaultPrefix. Contents are not inspected
// and no order is promised; sort by timestep after loading.
func Discover(dir, prefix string) ([]string, error) {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	paths := make([]string, 0, len(entries))
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), prefix) {
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}
	return paths, nil
}
