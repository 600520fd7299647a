package brick

// Option configures a Brick at construction.
type Option func(*Brick)

// WithBricks appends children to a section brick.
// Panics when applied to a leaf brick.
func WithBricks(children ...*Brick) Option {
	return func(b *Brick) {
		for _, child := range children {
			b.adopt(child)
			b.children = append(b.children, child)
		}
	}
}

// WithRepeatCountSource sets the source of repeat counts for the section's
// leaf children.
func WithRepeatCountSource(src RepeatCountSource) Option {
	return func(b *Brick) {
		b.repeat = src
	}
}
