package brick

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// newFixture builds:
//
//	root
//	├── header
//	├── row ×3
//	├── nested
//	│   ├── label
//	│   └── inner
//	│       └── deep
//	├── empty
//	└── footer
func newFixture() (*Resolver, map[string]*Brick) {
	bricks := map[string]*Brick{
		"header": NewBrick("header"),
		"row":    NewBrick("row"),
		"label":  NewBrick("label"),
		"deep":   NewBrick("deep"),
		"footer": NewBrick("footer"),
	}
	bricks["inner"] = NewSection("inner", WithBricks(bricks["deep"]))
	bricks["nested"] = NewSection("nested", WithBricks(bricks["label"], bricks["inner"]))
	bricks["empty"] = NewSection("empty")
	bricks["root"] = NewSection("root",
		WithRepeatCountSource(RepeatCountFunc(func(identifier string, _ CollectionInfo) int {
			if identifier == "row" {
				return 3
			}
			return 1
		})),
		WithBricks(bricks["header"], bricks["row"], bricks["nested"], bricks["empty"], bricks["footer"]),
	)
	return NewResolver(bricks["root"]), bricks
}

func TestResolver_Counts(t *testing.T) {
	r, _ := newFixture()
	c := CollectionInfo{}

	if got := r.NumberOfSections(c); got != 5 {
		t.Errorf("NumberOfSections() = %d, want 5", got)
	}
	if diff := cmp.Diff([]int{1, 7, 2, 1, 0}, r.SectionCounts(c)); diff != "" {
		t.Errorf("SectionCounts() mismatch (-want +got):\n%s", diff)
	}

	type tc struct {
		section int
		want    int
	}

	tests := map[string]tc{
		"root section":     {section: 0, want: 1},
		"root content":     {section: 1, want: 7},
		"nested section":   {section: 2, want: 2},
		"deep section":     {section: 3, want: 1},
		"empty section":    {section: 4, want: 0},
		"unbound section":  {section: 5, want: 0},
		"negative section": {section: -1, want: 0},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := r.NumberOfItems(tt.section, c); got != tt.want {
				t.Errorf("NumberOfItems(%d) = %d, want %d", tt.section, got, tt.want)
			}
		})
	}
}

func TestResolver_BrickAndIndex(t *testing.T) {
	r, bricks := newFixture()
	c := CollectionInfo{}

	type tc struct {
		ip      IndexPath
		brick   string
		index   int
		wantErr error
	}

	tests := map[string]tc{
		"root":               {ip: IndexPath{0, 0}, brick: "root", index: 0},
		"first item":         {ip: IndexPath{1, 0}, brick: "header", index: 0},
		"first repeat":       {ip: IndexPath{1, 1}, brick: "row", index: 0},
		"last repeat":        {ip: IndexPath{1, 3}, brick: "row", index: 2},
		"nested first":       {ip: IndexPath{1, 4}, brick: "nested", index: 0},
		"nested second":      {ip: IndexPath{1, 5}, brick: "nested", index: 1},
		"after empty":        {ip: IndexPath{1, 6}, brick: "footer", index: 0},
		"inside nested":      {ip: IndexPath{2, 0}, brick: "label", index: 0},
		"inner section item": {ip: IndexPath{2, 1}, brick: "inner", index: 0},
		"deepest":            {ip: IndexPath{3, 0}, brick: "deep", index: 0},
		"past end":           {ip: IndexPath{1, 7}, wantErr: ErrNotFound},
		"empty section":      {ip: IndexPath{4, 0}, wantErr: ErrNotFound},
		"unbound section":    {ip: IndexPath{9, 0}, wantErr: ErrNotFound},
		"root item one":      {ip: IndexPath{0, 1}, wantErr: ErrInvalidIndexPath},
		"negative item":      {ip: IndexPath{1, -1}, wantErr: ErrInvalidIndexPath},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			b, index, err := r.BrickAndIndex(tt.ip, c)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("BrickAndIndex(%v) err = %v, want %v", tt.ip, err, tt.wantErr)
				}
				if !errors.Is(err, ErrNotFound) {
					t.Errorf("BrickAndIndex(%v) err = %v, want it to match ErrNotFound", tt.ip, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("BrickAndIndex(%v) unexpected error: %v", tt.ip, err)
			}
			if b != bricks[tt.brick] {
				t.Errorf("BrickAndIndex(%v) brick = %q, want %q", tt.ip, b.Identifier(), tt.brick)
			}
			if index != tt.index {
				t.Errorf("BrickAndIndex(%v) index = %d, want %d", tt.ip, index, tt.index)
			}
		})
	}
}

func TestResolver_BrickAndIndexProjections(t *testing.T) {
	r, bricks := newFixture()
	c := CollectionInfo{}

	if b, ok := r.Brick(IndexPath{1, 2}, c); !ok || b != bricks["row"] {
		t.Errorf("Brick([1, 2]) = %v, %v, want row, true", b, ok)
	}
	if i, ok := r.Index(IndexPath{1, 2}, c); !ok || i != 1 {
		t.Errorf("Index([1, 2]) = %d, %v, want 1, true", i, ok)
	}
	if _, ok := r.Brick(IndexPath{1, 99}, c); ok {
		t.Error("Brick([1, 99]) ok = true, want false")
	}
}

func TestResolver_SectionBindings(t *testing.T) {
	r, _ := newFixture()
	c := CollectionInfo{}

	type tc struct {
		section int
		ip      IndexPath
		ok      bool
	}

	tests := map[string]tc{
		"root section has no binding": {section: 0, ok: false},
		"root content":                {section: 1, ip: IndexPath{0, 0}, ok: true},
		"nested":                      {section: 2, ip: IndexPath{1, 4}, ok: true},
		"inner":                       {section: 3, ip: IndexPath{2, 1}, ok: true},
		"empty":                       {section: 4, ip: IndexPath{1, 6}, ok: true},
		"unbound":                     {section: 5, ok: false},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			ip, ok := r.IndexPathForSection(tt.section, c)
			if ok != tt.ok || ip != tt.ip {
				t.Fatalf("IndexPathForSection(%d) = %v, %v, want %v, %v", tt.section, ip, ok, tt.ip, tt.ok)
			}
			if !ok {
				return
			}
			section, ok := r.SectionForIndexPath(ip, c)
			if !ok || section != tt.section {
				t.Errorf("SectionForIndexPath(%v) = %d, %v, want %d, true", ip, section, ok, tt.section)
			}
		})
	}

	if _, ok := r.SectionForIndexPath(IndexPath{1, 0}, c); ok {
		t.Error("SectionForIndexPath of a leaf item should not be found")
	}
}

func TestResolver_SectionForIndexPath_TieFirstMatch(t *testing.T) {
	empty := NewSection("empty")
	full := NewSection("full", WithBricks(NewBrick("x")))
	r := NewResolver(NewSection("root", WithBricks(empty, full)))
	c := CollectionInfo{}

	for _, section := range []int{2, 3} {
		if ip, _ := r.IndexPathForSection(section, c); ip != (IndexPath{1, 0}) {
			t.Fatalf("IndexPathForSection(%d) = %v, want [1, 0]", section, ip)
		}
	}
	if section, _ := r.SectionForIndexPath(IndexPath{1, 0}, c); section != 2 {
		t.Errorf("SectionForIndexPath([1, 0]) = %d, want 2 (first match)", section)
	}
}

func TestResolver_SectionBrick(t *testing.T) {
	r, bricks := newFixture()
	c := CollectionInfo{}

	type tc struct {
		section int
		want    string
	}

	tests := map[string]tc{
		"root section": {section: 0, want: "root"},
		"root content": {section: 1, want: "root"},
		"nested":       {section: 2, want: "nested"},
		"inner":        {section: 3, want: "inner"},
		"empty":        {section: 4, want: "empty"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			b, ok := r.SectionBrick(tt.section, c)
			if !ok || b != bricks[tt.want] {
				t.Errorf("SectionBrick(%d) = %v, %v, want %q", tt.section, b, ok, tt.want)
			}
		})
	}

	if _, ok := r.SectionBrick(5, c); ok {
		t.Error("SectionBrick(5) should not be found")
	}
}

func TestResolver_IndexPathsForIdentifier(t *testing.T) {
	r, _ := newFixture()
	c := CollectionInfo{}

	type tc struct {
		identifier string
		index      *int
		want       []IndexPath
	}
	two := 2
	zero := 0

	tests := map[string]tc{
		"repeated leaf": {
			identifier: "row",
			want:       []IndexPath{{1, 1}, {1, 2}, {1, 3}},
		},
		"repeated leaf at index": {
			identifier: "row",
			index:      &two,
			want:       []IndexPath{{1, 3}},
		},
		"section spans items": {
			identifier: "nested",
			want:       []IndexPath{{1, 4}, {1, 5}},
		},
		"root": {
			identifier: "root",
			want:       []IndexPath{{0, 0}},
		},
		"section item and its own section": {
			identifier: "inner",
			index:      &zero,
			want:       []IndexPath{{2, 1}},
		},
		"unknown": {
			identifier: "missing",
			want:       nil,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			var got []IndexPath
			if tt.index != nil {
				got = r.IndexPathsForIdentifierAt(tt.identifier, *tt.index, c)
			} else {
				got = r.IndexPathsForIdentifier(tt.identifier, c)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("IndexPathsForIdentifier(%q) mismatch (-want +got):\n%s", tt.identifier, diff)
			}
		})
	}
}

func TestResolver_DuplicateIdentifiersRowMajor(t *testing.T) {
	r := NewResolver(NewSection("root", WithBricks(
		NewBrick("cell"),
		NewSection("group", WithBricks(NewBrick("cell"), NewBrick("other"), NewBrick("cell"))),
		NewBrick("cell"),
	)))

	got := r.IndexPathsForIdentifier("cell", CollectionInfo{})
	want := []IndexPath{{1, 0}, {1, 4}, {2, 0}, {2, 2}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("IndexPathsForIdentifier(cell) mismatch (-want +got):\n%s", diff)
	}
}

// Every section's items resolve to its children in order, each child
// covering local offsets 0..count-1 exactly once.
func TestResolver_ResolveCoversChildren(t *testing.T) {
	r, _ := newFixture()
	c := CollectionInfo{}

	for section := 1; section < r.NumberOfSections(c); section++ {
		owner := r.cache(c).bindings[section].section

		var got []string
		for item := range r.NumberOfItems(section, c) {
			b, index, err := r.BrickAndIndex(IndexPath{section, item}, c)
			if err != nil {
				t.Fatalf("BrickAndIndex([%d, %d]) unexpected error: %v", section, item, err)
			}
			if b.Parent() != owner {
				t.Errorf("[%d, %d] resolved to %q whose parent is not the section owner", section, item, b.Identifier())
			}
			got = append(got, fmt.Sprintf("%s:%d", b.Identifier(), index))
		}

		var want []string
		sc := r.cache(c)
		for _, child := range owner.Children() {
			for i := range sc.counts[child] {
				want = append(want, fmt.Sprintf("%s:%d", child.Identifier(), i))
			}
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("section %d resolution mismatch (-want +got):\n%s", section, diff)
		}
	}
}

type snapshot struct {
	Counts   []int
	Bindings []IndexPath
	Resolved []string
}

func takeSnapshot(r *Resolver, c CollectionInfo) snapshot {
	s := snapshot{Counts: r.SectionCounts(c)}
	for section := range r.NumberOfSections(c) {
		ip, _ := r.IndexPathForSection(section, c)
		s.Bindings = append(s.Bindings, ip)
		for item := range r.NumberOfItems(section, c) {
			b, index, _ := r.BrickAndIndex(IndexPath{section, item}, c)
			s.Resolved = append(s.Resolved, fmt.Sprintf("%s#%d", b.Identifier(), index))
		}
	}
	return s
}

func TestResolver_RebuildIsIdempotent(t *testing.T) {
	r, _ := newFixture()
	c := CollectionInfo{Index: 1, Identifier: "compact"}

	before := takeSnapshot(r, c)
	r.Invalidate(c)
	after := takeSnapshot(r, c)
	r.InvalidateAll()
	again := takeSnapshot(r, c)

	if diff := cmp.Diff(before, after); diff != "" {
		t.Errorf("after Invalidate mismatch (-before +after):\n%s", diff)
	}
	if diff := cmp.Diff(before, again); diff != "" {
		t.Errorf("after InvalidateAll mismatch (-before +after):\n%s", diff)
	}
}

func TestResolver_CachesPerCollection(t *testing.T) {
	calls := 0
	rows := map[int]int{0: 3, 1: 1}
	root := NewSection("root",
		WithRepeatCountSource(RepeatCountFunc(func(identifier string, c CollectionInfo) int {
			calls++
			return rows[c.Index]
		})),
		WithBricks(NewBrick("row")),
	)
	r := NewResolver(root)
	regular := CollectionInfo{Index: 0}
	compact := CollectionInfo{Index: 1}

	if got := r.NumberOfItems(1, regular); got != 3 {
		t.Errorf("NumberOfItems(1, regular) = %d, want 3", got)
	}
	if got := r.NumberOfItems(1, compact); got != 1 {
		t.Errorf("NumberOfItems(1, compact) = %d, want 1", got)
	}
	if calls != 2 {
		t.Fatalf("repeat source calls = %d, want 2 (one build per collection)", calls)
	}

	r.NumberOfSections(regular)
	r.IndexPathsForIdentifier("row", compact)
	if calls != 2 {
		t.Errorf("repeat source calls = %d after cached reads, want 2", calls)
	}

	rows[0] = 5
	r.Invalidate(compact)
	if got := r.NumberOfItems(1, regular); got != 3 {
		t.Errorf("regular cache should survive invalidating compact: got %d, want 3", got)
	}
	r.Invalidate(regular)
	if got := r.NumberOfItems(1, regular); got != 5 {
		t.Errorf("NumberOfItems(1, regular) after Invalidate = %d, want 5", got)
	}
}

func TestResolver_MutationInvalidates(t *testing.T) {
	r, bricks := newFixture()
	c := CollectionInfo{}

	if got := r.NumberOfItems(2, c); got != 2 {
		t.Fatalf("NumberOfItems(2) = %d, want 2", got)
	}

	extra := NewBrick("extra")
	bricks["inner"].AddChild(extra)

	if got := r.NumberOfItems(2, c); got != 3 {
		t.Errorf("NumberOfItems(2) after AddChild = %d, want 3", got)
	}
	if got := r.NumberOfItems(1, c); got != 8 {
		t.Errorf("NumberOfItems(1) after AddChild = %d, want 8", got)
	}
	if b, _ := r.Brick(IndexPath{3, 1}, c); b != extra {
		t.Errorf("Brick([3, 1]) = %v, want extra", b)
	}

	bricks["root"].RemoveChild(bricks["nested"])
	if got := r.NumberOfSections(c); got != 3 {
		t.Errorf("NumberOfSections() after RemoveChild = %d, want 3", got)
	}
	if ip, _ := r.IndexPathForSection(2, c); ip != (IndexPath{1, 4}) {
		t.Errorf("IndexPathForSection(2) after RemoveChild = %v, want [1, 4] (empty)", ip)
	}

	bricks["root"].SetRepeatCountSource(nil)
	if got := r.NumberOfItems(1, c); got != 3 {
		t.Errorf("NumberOfItems(1) without repeat source = %d, want 3", got)
	}
}

func TestResolver_NegativeRepeatCountsAsZero(t *testing.T) {
	r := NewResolver(NewSection("root",
		WithRepeatCountSource(RepeatCountFunc(func(string, CollectionInfo) int { return -4 })),
		WithBricks(NewBrick("gone"), NewSection("kept", WithBricks(NewBrick("x")))),
	))

	if got := r.NumberOfItems(1, CollectionInfo{}); got != 1 {
		t.Errorf("NumberOfItems(1) = %d, want 1", got)
	}
	if b, _ := r.Brick(IndexPath{1, 0}, CollectionInfo{}); b == nil || b.Identifier() != "kept" {
		t.Errorf("Brick([1, 0]) = %v, want kept", b)
	}
}

func TestResolver_Release(t *testing.T) {
	root := NewSection("root", WithBricks(NewBrick("a")))
	r := NewResolver(root)
	r.NumberOfSections(CollectionInfo{})
	r.Release()

	NewSection("host").AddChild(root)
	if root.Parent() == nil {
		t.Error("released root should be adoptable")
	}
}

func TestNewResolver_Panics(t *testing.T) {
	assertPanics(t, "must be a section", func() { NewResolver(NewBrick("leaf")) })

	child := NewSection("child")
	NewSection("parent", WithBricks(child))
	assertPanics(t, "must not have a parent", func() { NewResolver(child) })

	root := NewSection("root")
	NewResolver(root)
	assertPanics(t, "already owned", func() { NewResolver(root) })
}
