package account

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"account-db-compare/core/reconcile"

	"github.com/spf13/afero"
)

// ErrNodesFolderNotFound is returned when the nodes folder does not exist.
var ErrNodesFolderNotFound = errors.New("nodes folder not found")

// NodeDB is a node database file found under the nodes folder.
type NodeDB struct {
	// Name is the node instance name derived from the folder layout.
	Name string `json:"name"`
	// Path is the database file path.
	Path string `json:"path"`
}

// DiscoverNodes walks root recursively and returns every file named fileName,
// sorted by node name. Unreadable subfolders are skipped.
//
// Node names come from the instance folder, two levels above the database
// file (<instance>/db/shardeum.sqlite). When two instances share a folder
// name the path relative to root is used instead.
func DiscoverNodes(fs afero.Fs, root, fileName string) ([]NodeDB, error) {
	info, err := fs.Stat(root)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNodesFolderNotFound, root)
		}
		return nil, fmt.Errorf("failed to stat nodes folder %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("nodes folder %s is not a directory", root)
	}

	var found []NodeDB
	err = afero.Walk(fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if info != nil && info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if info.IsDir() || info.Name() != fileName {
			return nil
		}
		found = append(found, NodeDB{Name: NodeName(path), Path: path})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk nodes folder %s: %w", root, err)
	}

	counts := make(map[string]int, len(found))
	for _, n := range found {
		counts[n.Name]++
	}
	for i, n := range found {
		if counts[n.Name] < 2 {
			continue
		}
		if rel, err := filepath.Rel(root, filepath.Dir(filepath.Dir(n.Path))); err == nil {
			found[i].Name = filepath.ToSlash(rel)
		}
	}

	sort.Slice(found, func(i, j int) bool {
		if found[i].Name != found[j].Name {
			return found[i].Name < found[j].Name
		}
		return found[i].Path < found[j].Path
	})

	return found, nil
}

// NodeName derives the node name from a database path: the name of the
// directory two levels up, or "unknown" when there is none.
func NodeName(dbPath string) string {
	name := filepath.Base(filepath.Dir(filepath.Dir(dbPath)))
	if name == "." || name == string(filepath.Separator) || name == "" {
		return "unknown"
	}
	return name
}

// Nodes turns discovered databases into lazily opened reconcile nodes.
func Nodes(found []NodeDB, table string, timeoutSeconds int) []reconcile.Node {
	nodes := make([]reconcile.Node, 0, len(found))
	for _, db := range found {
		nodes = append(nodes, reconcile.Node{
			Name: db.Name,
			Path: db.Path,
			Open: func(ctx context.Context) (reconcile.Source, error) {
				src, err := OpenNode(db, table, timeoutSeconds)
				if err != nil {
					return nil, err
				}
				return src, nil
			},
		})
	}
	return nodes
}
