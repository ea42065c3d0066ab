// Package pages builds the set of known page paths from manifests supplied
// by the host: plain text listings, YAML or JSON lists, standard input and
// individual paths given on the command line.
package pages
