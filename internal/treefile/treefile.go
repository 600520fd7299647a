package treefile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	brick "github.com/grindlemire/go-brick"
	"github.com/grindlemire/go-brick/internal/debug"
	"github.com/grindlemire/go-brick/internal/flow"
)

// Node is one entry of a tree document.
type Node struct {
	Identifier string `yaml:"identifier"`
	Section    bool   `yaml:"section,omitempty"`
	Height     *int   `yaml:"height,omitempty"`
	Repeat     *int   `yaml:"repeat,omitempty"`
	Sticky     bool   `yaml:"sticky,omitempty"`
	Bricks     []Node `yaml:"bricks,omitempty"`
}

// IsSection reports whether n describes a section brick.
func (n Node) IsSection() bool {
	return n.Section || len(n.Bricks) > 0
}

// ErrEmptyDocument is returned when the input holds no YAML document.
var ErrEmptyDocument = errors.New("treefile: empty document")

// Tree is a brick tree built from a document together with its leaf
// metadata.
type Tree struct {
	root    *brick.Brick
	heights map[*brick.Brick]int
	sticky  map[string]bool
	ids     []string
}

// Root returns the root section. It has no parent and no resolver.
func (t *Tree) Root() *brick.Brick {
	return t.root
}

// NewResolver creates a resolver owning the tree.
func (t *Tree) NewResolver() *brick.Resolver {
	return brick.NewResolver(t.root)
}

// Height returns the declared height of leaf b, or 1 when none was given.
// Every repeated item of a leaf has the same height.
func (t *Tree) Height(b *brick.Brick, _ int) int {
	if h, ok := t.heights[b]; ok {
		return h
	}
	return 1
}

// Heights returns Height as a flow.HeightFunc.
func (t *Tree) Heights() flow.HeightFunc {
	return t.Height
}

// Sticky returns a data source marking items of sticky leaves.
func (t *Tree) Sticky() brick.StickyDataSource {
	return brick.StickyFunc(func(a brick.Attributes) bool {
		return t.sticky[a.Identifier]
	})
}

// Identifiers returns every distinct identifier in the tree, in document
// order.
func (t *Tree) Identifiers() []string {
	return slices.Clone(t.ids)
}

// Load reads and builds the tree document at path.
func Load(path string) (*Tree, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading tree file: %w", err)
	}
	t, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	debug.Log("treefile: loaded %s (%d identifiers)", path, len(t.ids))
	return t, nil
}

// Parse builds a tree from YAML source. Unknown keys are rejected.
func Parse(data []byte) (*Tree, error) {
	return Decode(bytes.NewReader(data))
}

// Decode reads one YAML document from r and builds its tree.
func Decode(r io.Reader) (*Tree, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc Node
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyDocument
		}
		return nil, fmt.Errorf("decoding tree: %w", err)
	}
	return Build(doc)
}

// Build converts a decoded document into a brick tree. The root node must
// be a section.
func Build(doc Node) (*Tree, error) {
	if !doc.IsSection() {
		return nil, fmt.Errorf("root %q must be a section", doc.Identifier)
	}

	t := &Tree{
		heights: make(map[*brick.Brick]int),
		sticky:  make(map[string]bool),
	}
	seen := make(map[string]bool)

	root, err := t.build(doc, "root", seen)
	if err != nil {
		return nil, err
	}
	t.root = root
	return t, nil
}

func (t *Tree) build(n Node, path string, seen map[string]bool) (*brick.Brick, error) {
	if n.Identifier == "" {
		return nil, fmt.Errorf("%s: missing identifier", path)
	}
	if !seen[n.Identifier] {
		seen[n.Identifier] = true
		t.ids = append(t.ids, n.Identifier)
	}

	if !n.IsSection() {
		return t.buildLeaf(n, path)
	}

	if n.Height != nil || n.Repeat != nil || n.Sticky {
		return nil, fmt.Errorf("%s: section %q cannot declare height, repeat, or sticky", path, n.Identifier)
	}

	section := brick.NewSection(n.Identifier)
	repeats := make(repeatTable)
	for i, child := range n.Bricks {
		childPath := fmt.Sprintf("%s.bricks[%d]", path, i)
		b, err := t.build(child, childPath, seen)
		if err != nil {
			return nil, err
		}
		if child.Repeat != nil {
			if prev, ok := repeats[child.Identifier]; ok && prev != *child.Repeat {
				return nil, fmt.Errorf("%s: conflicting repeat for %q (%d and %d)", childPath, child.Identifier, prev, *child.Repeat)
			}
			repeats[child.Identifier] = *child.Repeat
		}
		section.AddChild(b)
	}
	if len(repeats) > 0 {
		section.SetRepeatCountSource(repeats)
	}
	return section, nil
}

func (t *Tree) buildLeaf(n Node, path string) (*brick.Brick, error) {
	b := brick.NewBrick(n.Identifier)
	if n.Height != nil {
		if *n.Height < 0 {
			return nil, fmt.Errorf("%s: negative height %d", path, *n.Height)
		}
		t.heights[b] = *n.Height
	}
	if n.Repeat != nil && *n.Repeat < 0 {
		return nil, fmt.Errorf("%s: negative repeat %d", path, *n.Repeat)
	}
	if n.Sticky {
		t.sticky[n.Identifier] = true
	}
	return b, nil
}

// repeatTable answers repeat counts from a section's declared values.
// Leaves without an entry appear once.
type repeatTable map[string]int

func (rt repeatTable) RepeatCount(identifier string, _ brick.CollectionInfo) int {
	if n, ok := rt[identifier]; ok {
		return n
	}
	return 1
}
