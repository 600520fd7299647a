// Package brick resolves flat (section, item) index paths against a nested
// tree of bricks and pins sticky footer bricks to the bottom of a scrolling
// viewport.
//
// A tree is built from leaf bricks ([NewBrick]) and section bricks
// ([NewSection]). A [Resolver] owns the root section and answers, per
// [CollectionInfo], how many sections and items the tree flattens to and
// which brick owns a given [IndexPath]. Answers are cached per collection and
// rebuilt synchronously after any structural mutation.
//
// After a generic layout pass has produced an original frame for every item,
// a [StickyFooter] adjusts the frames of sticky items so they stay visible at
// the bottom edge of the viewport, stacked upward without overlapping.
package brick
