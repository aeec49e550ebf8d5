// Package tree maintains the status panel's directory tree: a lazily
// scanned view of the filesystem with expand/collapse state and a
// flattened row list for click resolution.
package tree

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Kind classifies a tree node for click resolution.
type Kind int

const (
	KindDir Kind = iota
	KindFile
	KindUnsupported
)

// supportedExtensions is the fixed allow-list of file types a click
// may open. Anything else is plain-text-hostile (binaries, images)
// and clicking it is a no-op.
var supportedExtensions = map[string]bool{
	".go": true, ".py": true, ".pyi": true,
	".sh": true, ".bash": true, ".zsh": true,
	".json": true, ".jsonl": true,
	".yaml": true, ".yml": true, ".toml": true,
	".ini": true, ".cfg": true, ".conf": true,
	".txt": true, ".md": true,
}

// Supported reports whether the file's extension is in the allow-list.
func Supported(path string) bool {
	return supportedExtensions[strings.ToLower(filepath.Ext(path))]
}

// Node is one entry in the rendered tree.
type Node struct {
	Path     string
	Name     string
	Kind     Kind
	Depth    int
	Expanded bool // directories only
	children []*Node
}

// IsDir reports whether the node is a directory.
func (n *Node) IsDir() bool { return n.Kind == KindDir }

// Tree is the directory tree rooted at the workspace root. The tree
// reflects the filesystem as of the last Refresh; external mutation
// leaves it stale until the next scan.
type Tree struct {
	root     *Node
	rows     []*Node
	expanded map[string]bool
}

// New creates a tree with the root directory expanded.
func New(rootDir string) *Tree {
	t := &Tree{
		root: &Node{
			Path: rootDir,
			Name: filepath.Base(rootDir),
			Kind: KindDir,
		},
		expanded: map[string]bool{rootDir: true},
	}
	t.Refresh()
	return t
}

// Root returns the root path.
func (t *Tree) Root() string { return t.root.Path }

// Refresh re-derives the tree from disk. Only expanded directories
// are scanned; collapsed subtrees stay unscanned until opened.
// Expansion state survives the rescan keyed by path.
func (t *Tree) Refresh() {
	t.scan(t.root)
	t.flatten()
}

func (t *Tree) scan(dir *Node) {
	dir.Expanded = t.expanded[dir.Path]
	if !dir.Expanded {
		dir.children = nil
		return
	}

	entries, err := os.ReadDir(dir.Path)
	if err != nil {
		// Permission or race; show the directory as empty.
		dir.children = nil
		return
	}

	var dirs, files []*Node
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		child := &Node{
			Path:  filepath.Join(dir.Path, name),
			Name:  name,
			Depth: dir.Depth + 1,
		}
		if entry.IsDir() {
			child.Kind = KindDir
			dirs = append(dirs, child)
		} else {
			child.Kind = KindFile
			if !Supported(child.Path) {
				child.Kind = KindUnsupported
			}
			files = append(files, child)
		}
	}

	sort.Slice(dirs, func(i, j int) bool { return dirs[i].Name < dirs[j].Name })
	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })
	dir.children = append(dirs, files...)

	for _, child := range dir.children {
		if child.Kind == KindDir {
			t.scan(child)
		}
	}
}

// flatten rebuilds the visible row list. Row index is the screen row
// the node renders at, which is what click resolution looks up.
func (t *Tree) flatten() {
	t.rows = t.rows[:0]
	var walk func(n *Node)
	walk = func(n *Node) {
		t.rows = append(t.rows, n)
		if n.Expanded {
			for _, child := range n.children {
				walk(child)
			}
		}
	}
	walk(t.root)
}

// Rows returns the visible nodes in render order.
func (t *Tree) Rows() []*Node { return t.rows }

// NodeAt maps a row index back to its node, or nil when the row is
// past the tree (blank area below the last entry).
func (t *Tree) NodeAt(row int) *Node {
	if row < 0 || row >= len(t.rows) {
		return nil
	}
	return t.rows[row]
}

// Toggle flips a directory's expansion and rescans. Files ignore it.
func (t *Tree) Toggle(n *Node) {
	if n == nil || n.Kind != KindDir {
		return
	}
	if t.expanded[n.Path] {
		delete(t.expanded, n.Path)
	} else {
		t.expanded[n.Path] = true
	}
	t.Refresh()
}

// ExpandedDirs lists every expanded directory, for filesystem
// watching.
func (t *Tree) ExpandedDirs() []string {
	dirs := make([]string, 0, len(t.expanded))
	for dir := range t.expanded {
		dirs = append(dirs, dir)
	}
	sort.Strings(dirs)
	return dirs
}
