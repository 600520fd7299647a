package brick

import "fmt"

// CollectionInfo identifies one independent query scope over a tree, such as
// a size class or a reload generation. It is compared by value; every
// resolver cache is keyed by it.
type CollectionInfo struct {
	Index      int
	Identifier string
}

// String returns a compact form used in logs and errors.
func (c CollectionInfo) String() string {
	if c.Identifier == "" {
		return fmt.Sprintf("collection(%d)", c.Index)
	}
	return fmt.Sprintf("collection(%d:%s)", c.Index, c.Identifier)
}

// IndexPath addresses one item in the flattened tree.
// IndexPath{} (section 0, item 0) addresses the root itself.
type IndexPath struct {
	Section int
	Item    int
}

// String returns the path as "[section, item]".
func (p IndexPath) String() string {
	return fmt.Sprintf("[%d, %d]", p.Section, p.Item)
}
