// Package pipeline runs one expansion end to end: load the host
// configuration and page set, expand the navigation, render it and write
// the result to stdout, a file, or back into the configuration file.
package pipeline
