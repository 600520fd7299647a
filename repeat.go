package brick

// RepeatCountSource supplies how many items a leaf brick contributes in a
// collection. It is attached to a section and consulted for that section's
// direct leaf children by identifier.
type RepeatCountSource interface {
	RepeatCount(identifier string, c CollectionInfo) int
}

// RepeatCountFunc adapts a function to RepeatCountSource.
type RepeatCountFunc func(identifier string, c CollectionInfo) int

// RepeatCount calls f.
func (f RepeatCountFunc) RepeatCount(identifier string, c CollectionInfo) int {
	return f(identifier, c)
}

// count returns how many items b contributes in c, memoizing every visited
// brick into memo.
func (b *Brick) count(c CollectionInfo, memo map[*Brick]int) int {
	if n, ok := memo[b]; ok {
		return n
	}

	var n int
	switch b.kind {
	case KindSection:
		for _, child := range b.children {
			n += child.count(c, memo)
		}
	case KindBrick:
		n = 1
		if b.parent != nil && b.parent.repeat != nil {
			n = max(0, b.parent.repeat.RepeatCount(b.identifier, c))
		}
	}

	memo[b] = n
	return n
}
