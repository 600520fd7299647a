package brick

// Kind distinguishes leaf bricks from section bricks.
type Kind uint8

const (
	KindBrick   Kind = iota // Leaf; contributes its repeat count (default 1)
	KindSection             // Composite; contributes the sum of its children
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindBrick:
		return "brick"
	case KindSection:
		return "section"
	default:
		return "unknown"
	}
}

// Brick is a node in the content tree.
// Leaf bricks never have children; section bricks own an ordered child list.
type Brick struct {
	identifier string
	kind       Kind

	// Tree structure (single source of truth)
	children []*Brick
	parent   *Brick

	// Supplies repeat counts for this section's leaf children.
	repeat RepeatCountSource

	// Installed on the root by the owning Resolver.
	onMutate func()
}

// NewBrick creates a leaf brick.
func NewBrick(identifier string, opts ...Option) *Brick {
	b := &Brick{identifier: identifier, kind: KindBrick}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// NewSection creates a section brick. Children may be passed with WithBricks
// or added later with AddChild.
func NewSection(identifier string, opts ...Option) *Brick {
	b := &Brick{identifier: identifier, kind: KindSection}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Identifier returns the brick's identifier. Identifiers need not be unique.
func (b *Brick) Identifier() string {
	return b.identifier
}

// Kind returns whether b is a leaf or a section.
func (b *Brick) Kind() Kind {
	return b.kind
}

// IsSection reports whether b is a section brick.
func (b *Brick) IsSection() bool {
	return b.kind == KindSection
}

// Children returns the child bricks. Leaves return nil.
func (b *Brick) Children() []*Brick {
	return b.children
}

// Parent returns the parent section, or nil for a root.
func (b *Brick) Parent() *Brick {
	return b.parent
}

// RepeatCountSource returns the source supplying leaf repeat counts, or nil.
func (b *Brick) RepeatCountSource() RepeatCountSource {
	return b.repeat
}
