package brick

import (
	"github.com/grindlemire/go-brick/internal/debug"
)

// Resolver maps (section, item) index paths onto a brick tree.
//
// Answers are cached per CollectionInfo. Any structural mutation of the tree
// drops every cache; Invalidate drops one. A missing cache is rebuilt
// synchronously by the next query, so a stale answer is never returned.
//
// A Resolver is not safe for concurrent use. The tree must not be mutated
// while a query is running.
type Resolver struct {
	root   *Brick
	caches map[CollectionInfo]*sectionCache
}

// sectionBinding ties a section number to the section brick that owns it and
// to the index path at which that brick sits inside its parent section.
type sectionBinding struct {
	section   *Brick
	indexPath IndexPath
}

// sectionCache is the resolved form of the tree for one collection.
type sectionCache struct {
	// bindings[s] for s >= 1; bindings[0] is the degenerate root section.
	bindings []sectionBinding
	// items[s] is the number of items in section s.
	items []int
	// counts holds every brick's item count in this collection.
	counts map[*Brick]int
}

// NewResolver creates a resolver owning the tree rooted at root.
// Panics if root is not a parentless section or is already owned.
func NewResolver(root *Brick) *Resolver {
	if root == nil || root.kind != KindSection {
		panic("brick: resolver root must be a section")
	}
	if root.parent != nil {
		panic("brick: resolver root must not have a parent")
	}
	if root.onMutate != nil {
		panic("brick: root is already owned by a resolver")
	}

	r := &Resolver{
		root:   root,
		caches: make(map[CollectionInfo]*sectionCache),
	}
	root.onMutate = r.InvalidateAll
	return r
}

// Root returns the root section.
func (r *Resolver) Root() *Brick {
	return r.root
}

// Release detaches the resolver from its root so the tree can be adopted
// elsewhere. The resolver must not be used afterwards.
func (r *Resolver) Release() {
	r.root.onMutate = nil
	clear(r.caches)
}

// Invalidate drops the cache for one collection.
func (r *Resolver) Invalidate(c CollectionInfo) {
	if _, ok := r.caches[c]; ok {
		delete(r.caches, c)
		debug.Log("resolver: invalidated %v", c)
	}
}

// InvalidateAll drops the cache for every collection.
func (r *Resolver) InvalidateAll() {
	if len(r.caches) > 0 {
		debug.Log("resolver: invalidated %d collections", len(r.caches))
	}
	clear(r.caches)
}

// cache returns the cache for c, rebuilding it if it was invalidated.
func (r *Resolver) cache(c CollectionInfo) *sectionCache {
	if sc, ok := r.caches[c]; ok {
		return sc
	}
	sc := buildSectionCache(r.root, c)
	r.caches[c] = sc
	return sc
}

func buildSectionCache(root *Brick, c CollectionInfo) *sectionCache {
	sc := &sectionCache{
		bindings: []sectionBinding{{section: root}},
		items:    []int{1},
		counts:   make(map[*Brick]int),
	}
	root.count(c, sc.counts)
	sc.addSection(root, IndexPath{})

	debug.Event().
		Stringer("collection", c).
		Int("sections", len(sc.bindings)).
		Int("bricks", len(sc.counts)).
		Msg("resolver: rebuilt section cache")
	return sc
}

// addSection numbers section depth-first, binding it to at.
func (sc *sectionCache) addSection(section *Brick, at IndexPath) {
	number := len(sc.bindings)
	sc.bindings = append(sc.bindings, sectionBinding{section: section, indexPath: at})
	sc.items = append(sc.items, sc.counts[section])

	offset := 0
	for _, child := range section.children {
		if child.kind == KindSection {
			sc.addSection(child, IndexPath{Section: number, Item: offset})
		}
		offset += sc.counts[child]
	}
}
