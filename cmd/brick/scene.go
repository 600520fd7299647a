package main

import (
	"fmt"
	"strings"

	brick "github.com/grindlemire/go-brick"
	"github.com/grindlemire/go-brick/internal/config"
	"github.com/grindlemire/go-brick/internal/debug"
	"github.com/grindlemire/go-brick/internal/flow"
	"github.com/grindlemire/go-brick/internal/treefile"
)

// scene is a laid out tree viewed through a scrolling viewport.
type scene struct {
	tree       *treefile.Tree
	resolver   *brick.Resolver
	collection brick.CollectionInfo
	layout     *flow.Result
	footer     *brick.StickyFooter

	width  int
	height int
	inset  brick.Edges
}

// frame is one sticky pass at a scroll offset.
type frame struct {
	offset  int
	bounds  brick.Rect
	result  brick.StickyResult
	updates []brick.StickyUpdate
	// region bounds every sticky item after positioning.
	region brick.Rect
}

func newScene(tree *treefile.Tree, r *brick.Resolver, c brick.CollectionInfo, vp config.ViewportConfig) *scene {
	sc := &scene{
		tree:       tree,
		resolver:   r,
		collection: c,
		footer:     brick.NewStickyFooter(tree.Sticky()),
		height:     vp.Height,
		inset:      brick.Edges{Top: vp.InsetTop, Bottom: vp.InsetBottom},
	}
	sc.resize(vp.Width, vp.Height)
	return sc
}

// resize lays the tree out again for a new viewport size.
func (sc *scene) resize(width, height int) {
	sc.width = max(1, width)
	sc.height = max(1, height)
	sc.layout = flow.Calculate(sc.resolver, sc.collection, sc.width, sc.tree.Heights())
}

// maxOffset is the largest scroll offset that still fills the viewport.
func (sc *scene) maxOffset() int {
	return max(0, sc.layout.ContentSize().Height+sc.inset.Vertical()-sc.height)
}

// clamp limits offset to the scrollable range, allowing the top inset to
// show above the content.
func (sc *scene) clamp(offset int) int {
	return min(max(offset, -sc.inset.Top), sc.maxOffset()-sc.inset.Top)
}

// frameAt runs one sticky pass with the viewport scrolled to offset.
func (sc *scene) frameAt(offset int) frame {
	f := frame{
		offset: offset,
		bounds: brick.NewRect(0, offset, sc.width, sc.height),
	}

	pass := brick.StickyPass{
		Attributes: sc.footer.Select(sc.layout.Leaves()),
		Viewport: brick.Viewport{
			ContentBounds: f.bounds,
			ContentInset:  sc.inset,
		},
		Sections: sc.resolver.SectionLookup(sc.collection),
	}
	f.result = sc.footer.Update(pass, func(u brick.StickyUpdate) {
		f.updates = append(f.updates, u)
	})
	for _, a := range f.result.Attributes {
		f.region = f.region.Union(a.Frame)
	}

	debug.Event().
		Int("offset", offset).
		Int("candidates", len(pass.Attributes)).
		Int("moved", len(f.updates)).
		Int("indicatorBottom", f.result.ScrollIndicatorInset.Bottom).
		Msg("scene: sticky pass")
	return f
}

// render draws the viewport as text, one line per row, with sticky items
// drawn over the content they cover.
func (sc *scene) render(f frame) string {
	rows := make([]string, sc.height)
	for i := range rows {
		rows[i] = dimStyle.Render(pad("·", sc.width))
	}

	draw := func(a brick.Attributes, style func(string) string) {
		local := a.Frame.Translate(0, -f.offset)
		for dy := range local.Height {
			row := local.Y + dy
			if row < 0 || row >= sc.height {
				continue
			}
			text := "│"
			if dy == 0 {
				text = fmt.Sprintf("%s %v", a.Identifier, a.IndexPath)
			}
			rows[row] = style(pad(text, sc.width))
		}
	}

	sticky := make(map[brick.IndexPath]bool, len(f.result.Attributes))
	for _, a := range f.result.Attributes {
		sticky[a.IndexPath] = true
	}
	for _, a := range sc.layout.Visible(f.bounds) {
		if !sticky[a.IndexPath] {
			draw(a, func(s string) string { return s })
		}
	}
	// Attributes are ordered bottom-most first. Draw in reverse so the
	// bottom-most item wins any overlap.
	for i := len(f.result.Attributes) - 1; i >= 0; i-- {
		draw(f.result.Attributes[i], func(s string) string { return stickyStyle.Render(s) })
	}

	return strings.Join(rows, "\n")
}

// pad truncates or pads s to exactly width runes.
func pad(s string, width int) string {
	r := []rune(s)
	if len(r) >= width {
		return string(r[:width])
	}
	return s + strings.Repeat(" ", width-len(r))
}
