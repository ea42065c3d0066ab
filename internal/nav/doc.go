// Package nav models a documentation navigation tree and expands directory
// references inside it into generated page and sub-directory entries.
//
// A tree is built from Nodes of four kinds: a leaf reference (a page path or
// a directory prefix), a titled section mapping titles to child nodes, an
// ordered group, and opaque scalars that are carried through untouched.
//
// A reference is a directory reference when it is not a member of the
// supplied PageSet. Expansion never touches the filesystem: the page set,
// the tree and the Options fully determine the result.
//
//	pages := nav.NewPageSet("guide/intro.md", "guide/adv/deep.md")
//	tree := nav.Group(nav.Ref("guide"))
//	out, err := nav.Expand(tree, pages, nav.DefaultOptions())
//	// out: [{adv: [guide/adv/deep.md]}, guide/intro.md]
package nav
