package brick

import (
	"fmt"
	"slices"

	"github.com/grindlemire/go-brick/internal/debug"
)

// NumberOfSections returns the number of sections in c, including the
// degenerate root section 0.
func (r *Resolver) NumberOfSections(c CollectionInfo) int {
	return len(r.cache(c).bindings)
}

// NumberOfItems returns the number of items in section. Section 0 always
// has exactly one item, the root. Unbound sections have none.
func (r *Resolver) NumberOfItems(section int, c CollectionInfo) int {
	sc := r.cache(c)
	if section < 0 || section >= len(sc.items) {
		return 0
	}
	return sc.items[section]
}

// SectionCounts returns the item count of every section, indexed by section.
func (r *Resolver) SectionCounts(c CollectionInfo) []int {
	return slices.Clone(r.cache(c).items)
}

// BrickAndIndex returns the brick that owns ip and the item's offset within
// that brick's own items. A leaf repeated three times owns offsets 0-2; a
// nested section owns as many offsets as it has items.
//
// Returns an error matching ErrNotFound when the section is unbound or the
// item is out of range, and ErrInvalidIndexPath for malformed paths.
func (r *Resolver) BrickAndIndex(ip IndexPath, c CollectionInfo) (*Brick, int, error) {
	sc := r.cache(c)

	if ip.Section < 0 || ip.Item < 0 || (ip.Section == 0 && ip.Item != 0) {
		debug.Log("resolver: invalid index path %v in %v", ip, c)
		return nil, 0, fmt.Errorf("index path %v in %v: %w", ip, c, ErrInvalidIndexPath)
	}
	if ip.Section == 0 {
		return r.root, 0, nil
	}
	if ip.Section >= len(sc.bindings) {
		return nil, 0, fmt.Errorf("section %d of %d in %v: %w", ip.Section, len(sc.bindings), c, ErrNotFound)
	}

	index := 0
	for _, child := range sc.bindings[ip.Section].section.children {
		n := sc.counts[child]
		if ip.Item < index+n {
			return child, ip.Item - index, nil
		}
		index += n
	}

	return nil, 0, fmt.Errorf("item %d of %d in section %d, %v: %w", ip.Item, index, ip.Section, c, ErrNotFound)
}

// Brick returns the brick that owns ip.
func (r *Resolver) Brick(ip IndexPath, c CollectionInfo) (*Brick, bool) {
	b, _, err := r.BrickAndIndex(ip, c)
	return b, err == nil
}

// Index returns the offset of ip within its owning brick.
func (r *Resolver) Index(ip IndexPath, c CollectionInfo) (int, bool) {
	_, i, err := r.BrickAndIndex(ip, c)
	return i, err == nil
}

// IndexPathForSection returns the index path at which the brick owning
// section sits inside its parent section. Section 1, the root's content,
// is bound to IndexPath{}.
func (r *Resolver) IndexPathForSection(section int, c CollectionInfo) (IndexPath, bool) {
	sc := r.cache(c)
	if section < 1 || section >= len(sc.bindings) {
		return IndexPath{}, false
	}
	return sc.bindings[section].indexPath, true
}

// SectionBrick returns the section brick that owns section. Section 0 and
// section 1 are both owned by the root.
func (r *Resolver) SectionBrick(section int, c CollectionInfo) (*Brick, bool) {
	sc := r.cache(c)
	if section < 0 || section >= len(sc.bindings) {
		return nil, false
	}
	return sc.bindings[section].section, true
}

// SectionForIndexPath returns the first section, in ascending order, bound
// to ip. An empty section brick shares its bound path with the sibling
// section that follows it; the earlier section wins.
func (r *Resolver) SectionForIndexPath(ip IndexPath, c CollectionInfo) (int, bool) {
	sc := r.cache(c)
	for section := 1; section < len(sc.bindings); section++ {
		if sc.bindings[section].indexPath == ip {
			return section, true
		}
	}
	return 0, false
}

// SectionLookup binds IndexPathForSection to c for the sticky positioner.
func (r *Resolver) SectionLookup(c CollectionInfo) SectionLookup {
	return func(section int) (IndexPath, bool) {
		return r.IndexPathForSection(section, c)
	}
}

// IndexPathsForIdentifier returns every index path whose owning brick has
// the given identifier, in row-major order.
func (r *Resolver) IndexPathsForIdentifier(identifier string, c CollectionInfo) []IndexPath {
	return r.indexPathsFor(identifier, c, func(int) bool { return true })
}

// IndexPathsForIdentifierAt is IndexPathsForIdentifier restricted to items
// whose offset within the owning brick equals index.
func (r *Resolver) IndexPathsForIdentifierAt(identifier string, index int, c CollectionInfo) []IndexPath {
	return r.indexPathsFor(identifier, c, func(i int) bool { return i == index })
}

func (r *Resolver) indexPathsFor(identifier string, c CollectionInfo, matchIndex func(int) bool) []IndexPath {
	var paths []IndexPath
	for section := range r.NumberOfSections(c) {
		for item := range r.NumberOfItems(section, c) {
			ip := IndexPath{Section: section, Item: item}
			b, index, err := r.BrickAndIndex(ip, c)
			if err != nil {
				// Every (section, item) below the counts is bound.
				panic(fmt.Sprintf("brick: unresolvable index path %v: %v", ip, err))
			}
			if b.identifier == identifier && matchIndex(index) {
				paths = append(paths, ip)
			}
		}
	}
	return paths
}
