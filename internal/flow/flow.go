package flow

import (
	"cmp"
	"fmt"
	"slices"

	brick "github.com/grindlemire/go-brick"
	"github.com/grindlemire/go-brick/internal/debug"
)

// HeightFunc returns the height of the item at local index within b.
// Only called for leaf bricks.
type HeightFunc func(b *brick.Brick, index int) int

// Result holds the frames computed by one layout pass.
type Result struct {
	attrs    []brick.Attributes
	byPath   map[brick.IndexPath]int
	mirrors  map[brick.IndexPath]bool
	sections map[int]brick.Rect
	size     brick.Size
}

// flowState is the per-call cursor. Not stored on the Result.
type flowState struct {
	r      *brick.Resolver
	c      brick.CollectionInfo
	width  int
	height HeightFunc
	// nested maps the first index path of every non-empty nested section
	// brick to the section it owns.
	nested map[brick.IndexPath]int
	res    *Result
}

// Calculate lays out the tree owned by r for collection c in a column of the
// given width. A nil height function gives every leaf item a height of 1.
//
// Items belonging to a nested section brick inside its parent section mirror
// the frames of the corresponding items of the nested section itself.
func Calculate(r *brick.Resolver, c brick.CollectionInfo, width int, height HeightFunc) *Result {
	if height == nil {
		height = func(*brick.Brick, int) int { return 1 }
	}

	st := &flowState{
		r:      r,
		c:      c,
		width:  width,
		height: height,
		nested: make(map[brick.IndexPath]int),
		res: &Result{
			byPath:   make(map[brick.IndexPath]int),
			mirrors:  make(map[brick.IndexPath]bool),
			sections: make(map[int]brick.Rect),
		},
	}

	for section := 2; section < r.NumberOfSections(c); section++ {
		if r.NumberOfItems(section, c) == 0 {
			continue
		}
		ip, _ := r.IndexPathForSection(section, c)
		st.nested[ip] = section
	}

	end := st.layoutSection(1, 0)

	// Section 0's single item is the root, spanning all content.
	whole := brick.NewRect(0, 0, width, end)
	st.place(brick.IndexPath{}, r.Root(), whole)
	st.res.sections[0] = whole
	st.res.size = brick.Size{Width: width, Height: end}

	slices.SortFunc(st.res.attrs, func(a, b brick.Attributes) int {
		return cmp.Or(
			cmp.Compare(a.IndexPath.Section, b.IndexPath.Section),
			cmp.Compare(a.IndexPath.Item, b.IndexPath.Item),
		)
	})
	for i, a := range st.res.attrs {
		st.res.byPath[a.IndexPath] = i
	}

	debug.Event().
		Stringer("collection", c).
		Int("items", len(st.res.attrs)).
		Int("contentHeight", end).
		Msg("flow: layout complete")
	return st.res
}

// layoutSection places every item of section starting at y and returns the
// y-coordinate just below the last item.
func (st *flowState) layoutSection(section, y int) int {
	start := y

	for item := range st.r.NumberOfItems(section, st.c) {
		ip := brick.IndexPath{Section: section, Item: item}
		b, index, err := st.r.BrickAndIndex(ip, st.c)
		if err != nil {
			panic(fmt.Sprintf("flow: unresolvable index path %v: %v", ip, err))
		}

		switch b.Kind() {
		case brick.KindSection:
			child, ok := st.nested[brick.IndexPath{Section: section, Item: item - index}]
			if !ok {
				panic(fmt.Sprintf("flow: no section bound for %q at %v", b.Identifier(), ip))
			}
			if index == 0 {
				y = st.layoutSection(child, y)
			}
			st.place(ip, b, st.frameAt(brick.IndexPath{Section: child, Item: index}))
			st.res.mirrors[ip] = true
		case brick.KindBrick:
			h := max(0, st.height(b, index))
			st.place(ip, b, brick.NewRect(0, y, st.width, h))
			y += h
		}
	}

	st.res.sections[section] = brick.NewRect(0, start, st.width, y-start)
	return y
}

func (st *flowState) place(ip brick.IndexPath, b *brick.Brick, frame brick.Rect) {
	st.res.attrs = append(st.res.attrs, brick.Attributes{
		IndexPath:     ip,
		Identifier:    b.Identifier(),
		OriginalFrame: frame,
		Frame:         frame,
	})
}

// frameAt returns the frame of an already placed item.
func (st *flowState) frameAt(ip brick.IndexPath) brick.Rect {
	for i := len(st.res.attrs) - 1; i >= 0; i-- {
		if st.res.attrs[i].IndexPath == ip {
			return st.res.attrs[i].Frame
		}
	}
	return brick.Rect{}
}

// Attributes returns a copy of every item's attributes in row-major order.
func (r *Result) Attributes() []brick.Attributes {
	return slices.Clone(r.attrs)
}

// At returns the attributes of one item.
func (r *Result) At(ip brick.IndexPath) (brick.Attributes, bool) {
	i, ok := r.byPath[ip]
	if !ok {
		return brick.Attributes{}, false
	}
	return r.attrs[i], true
}

// Section returns the container frame of a laid out section.
// Empty nested sections are never laid out.
func (r *Result) Section(section int) (brick.Rect, bool) {
	frame, ok := r.sections[section]
	return frame, ok
}

// ContentSize returns the total size of the laid out content.
func (r *Result) ContentSize() brick.Size {
	return r.size
}

// Visible returns the leaf items intersecting bounds, in row-major order.
// Items that stand in for nested sections are skipped so each visible
// region is reported once.
func (r *Result) Visible(bounds brick.Rect) []brick.Attributes {
	var out []brick.Attributes
	for _, a := range r.attrs {
		if a.IndexPath.Section == 0 || r.mirrors[a.IndexPath] {
			continue
		}
		if a.OriginalFrame.Intersects(bounds) {
			out = append(out, a)
		}
	}
	return out
}

// Leaves returns every leaf item in row-major order.
func (r *Result) Leaves() []brick.Attributes {
	var out []brick.Attributes
	for _, a := range r.attrs {
		if a.IndexPath.Section != 0 && !r.mirrors[a.IndexPath] {
			out = append(out, a)
		}
	}
	return out
}
