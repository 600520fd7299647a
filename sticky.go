package brick

import (
	"cmp"
	"slices"

	"github.com/grindlemire/go-brick/internal/debug"
)

// Attributes is the layout state of one item for a single layout pass.
// OriginalFrame is where the generic layout placed the item; Frame is where
// it is displayed after adjustments.
type Attributes struct {
	IndexPath     IndexPath
	Identifier    string
	OriginalFrame Rect
	Frame         Rect
}

// Viewport describes the visible part of the content for one pass.
// ContentBounds is the visible rectangle in content coordinates.
type Viewport struct {
	ContentBounds        Rect
	ContentInset         Edges
	ScrollIndicatorInset Edges
}

// SectionLookup returns the index path a section is bound to, as produced by
// Resolver.SectionLookup. A nil lookup treats every item as belonging to the
// first section.
type SectionLookup func(section int) (IndexPath, bool)

// StickyPass is the input to one positioning pass.
type StickyPass struct {
	Attributes []Attributes
	Viewport   Viewport
	Sections   SectionLookup
}

// StickyUpdate reports one item whose frame moved during a pass.
type StickyUpdate struct {
	Attributes Attributes
	OldFrame   Rect
	// Stacking is false for items on the first section, which pin
	// unconditionally and drive the scroll-indicator inset.
	Stacking bool
}

// StickyResult is the output of one positioning pass.
type StickyResult struct {
	// Attributes holds every candidate in processing order (lowest first)
	// with its adjusted Frame.
	Attributes []Attributes
	// ScrollIndicatorInset is the inset the host should apply. Only Bottom
	// is ever changed, and only by items on the first section.
	ScrollIndicatorInset Edges
	IndicatorChanged     bool
}

// StickyDataSource decides which items are sticky.
type StickyDataSource interface {
	ShouldStick(a Attributes) bool
}

// StickyFunc adapts a function to StickyDataSource.
type StickyFunc func(a Attributes) bool

// ShouldStick calls f.
func (f StickyFunc) ShouldStick(a Attributes) bool {
	return f(a)
}

// StickyFooter keeps sticky items visible at the bottom edge of the
// viewport. An item's bottom edge never falls below the top edge of the
// item pinned before it, so a group of footers stacks upward.
type StickyFooter struct {
	DataSource StickyDataSource
}

// NewStickyFooter creates a footer behavior backed by ds.
func NewStickyFooter(ds StickyDataSource) *StickyFooter {
	return &StickyFooter{DataSource: ds}
}

// Select returns the subset of attrs the data source marks sticky, in input
// order. Without a data source nothing is sticky.
func (s *StickyFooter) Select(attrs []Attributes) []Attributes {
	if s.DataSource == nil {
		return nil
	}
	var sticky []Attributes
	for _, a := range attrs {
		if s.DataSource.ShouldStick(a) {
			sticky = append(sticky, a)
		}
	}
	return sticky
}

// Update positions every candidate in pass and calls didUpdate once for each
// item whose frame differs from its input Frame. The input slice is not
// modified.
func (s *StickyFooter) Update(pass StickyPass, didUpdate func(StickyUpdate)) StickyResult {
	attrs := slices.Clone(pass.Attributes)
	slices.SortStableFunc(attrs, func(a, b Attributes) int {
		return cmp.Compare(b.OriginalFrame.Bottom(), a.OriginalFrame.Bottom())
	})

	result := StickyResult{
		Attributes:           attrs,
		ScrollIndicatorInset: pass.Viewport.ScrollIndicatorInset,
	}

	var lastStickyFrame Rect
	for i := range attrs {
		oldFrame := attrs[i].Frame
		p := s.place(attrs[i], pass.Sections, lastStickyFrame, pass.Viewport)

		attrs[i].Frame = p.frame
		lastStickyFrame = p.frame
		if !p.stacking {
			result.ScrollIndicatorInset.Bottom = p.indicatorBottom
		}

		if p.frame != oldFrame && didUpdate != nil {
			didUpdate(StickyUpdate{
				Attributes: attrs[i],
				OldFrame:   oldFrame,
				Stacking:   p.stacking,
			})
		}
	}

	result.IndicatorChanged = result.ScrollIndicatorInset != pass.Viewport.ScrollIndicatorInset
	return result
}

// placement is the outcome of positioning a single item.
type placement struct {
	frame           Rect
	stacking        bool
	indicatorBottom int
}

// place computes the frame for a single item given the frame of the item
// positioned before it.
func (s *StickyFooter) place(a Attributes, sections SectionLookup, lastStickyFrame Rect, v Viewport) placement {
	firstSection := onFirstSection(a.IndexPath.Section, sections)
	height := a.Frame.Height
	bottomInset := v.ContentInset.Bottom

	pin := v.ContentBounds.Bottom() - height - bottomInset
	p := placement{stacking: !firstSection}

	y := pin
	if firstSection {
		p.indicatorBottom = height + bottomInset
	} else {
		y = min(pin, a.OriginalFrame.Y)
	}

	if lastStickyFrame.Size() != (Size{}) {
		y = min(lastStickyFrame.Y-height, y)
	}

	p.frame = a.Frame.WithY(y)

	debug.Event().
		Str("identifier", a.Identifier).
		Stringer("indexPath", a.IndexPath).
		Int("pin", pin).
		Int("y", y).
		Bool("firstSection", firstSection).
		Msg("sticky footer placed")
	return p
}

// onFirstSection reports whether section is the collection's first section:
// unbound, or bound to the root's own index path.
func onFirstSection(section int, sections SectionLookup) bool {
	if sections == nil {
		return true
	}
	ip, ok := sections(section)
	return !ok || ip == IndexPath{}
}
