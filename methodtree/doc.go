// Package methodtree arranges method names into a namespace tree.
//
// Method names are slash-delimited paths ("eth/getBalance"). Build splits
// them into a tree of Nodes whose children keep first-seen order, which is
// the order a sidebar renders them in. The tree is fixed once built.
//
// Which folders are open is tracked separately in an Expanded set.
// ToggleFolder returns a new set and Materialize overlays a set onto a copy
// of the tree, so UI state changes never touch the structural tree:
//
//	tree := methodtree.Build(doc.ConcreteMethods())
//	open := methodtree.ToggleFolder("eth", methodtree.Expanded{})
//	view := methodtree.Materialize(tree, open)
package methodtree
