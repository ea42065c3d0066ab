// Package titles resolves display titles for pages that appear untitled in
// an expanded navigation: the front matter title, else the first level-1
// heading, else a humanised file name.
package titles
