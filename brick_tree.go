package brick

import (
	"fmt"
	"slices"
)

// AddChild appends children to this section.
// Notifies the owning resolver, which invalidates every collection.
func (b *Brick) AddChild(children ...*Brick) {
	for _, child := range children {
		b.adopt(child)
		b.children = append(b.children, child)
	}
	b.notifyMutation()
}

// InsertChild inserts child at index, shifting later children right.
// Panics if index is outside [0, len(Children())].
func (b *Brick) InsertChild(index int, child *Brick) {
	if index < 0 || index > len(b.children) {
		panic(fmt.Sprintf("brick: InsertChild index %d out of range [0, %d]", index, len(b.children)))
	}
	b.adopt(child)
	b.children = slices.Insert(b.children, index, child)
	b.notifyMutation()
}

// RemoveChild removes a child, preserving the order of the rest.
// Returns true if the child was found and removed.
func (b *Brick) RemoveChild(child *Brick) bool {
	i := slices.Index(b.children, child)
	if i < 0 {
		return false
	}
	b.children = slices.Delete(b.children, i, i+1)
	child.parent = nil
	b.notifyMutation()
	return true
}

// RemoveAllChildren detaches every child from this section.
func (b *Brick) RemoveAllChildren() {
	for _, child := range b.children {
		child.parent = nil
	}
	b.children = nil
	b.notifyMutation()
}

// SetRepeatCountSource replaces the section's repeat count source.
func (b *Brick) SetRepeatCountSource(src RepeatCountSource) {
	b.repeat = src
	b.notifyMutation()
}

// adopt validates that child may be attached under b and links it.
func (b *Brick) adopt(child *Brick) {
	if b.kind != KindSection {
		panic(fmt.Sprintf("brick: cannot add children to leaf brick %q", b.identifier))
	}
	if child == nil {
		panic("brick: nil child")
	}
	if child.parent != nil {
		panic(fmt.Sprintf("brick: %q already has a parent", child.identifier))
	}
	if child.onMutate != nil {
		panic(fmt.Sprintf("brick: %q is the root of a resolver", child.identifier))
	}
	for n := b; n != nil; n = n.parent {
		if n == child {
			panic(fmt.Sprintf("brick: adding %q would create a cycle", child.identifier))
		}
	}
	child.parent = b
}

// root walks up to the top of the tree.
func (b *Brick) root() *Brick {
	root := b
	for root.parent != nil {
		root = root.parent
	}
	return root
}

// notifyMutation walks up to root and calls the resolver's callback.
func (b *Brick) notifyMutation() {
	if root := b.root(); root.onMutate != nil {
		root.onMutate()
	}
}
