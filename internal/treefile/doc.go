// Package treefile loads brick trees from YAML documents.
//
// A document is a single node. A node with a bricks list, or with
// section set to true, becomes a section; every other node becomes a leaf:
//
//	identifier: root
//	bricks:
//	  - {identifier: header, height: 4}
//	  - {identifier: row, height: 3, repeat: 5}
//	  - {identifier: footer, height: 3, sticky: true}
//
// Leaf metadata (height, repeat count, sticky flag) is kept on the [Tree]
// and exposed in the shapes the resolver, the flow layout, and the sticky
// positioner consume.
package treefile
