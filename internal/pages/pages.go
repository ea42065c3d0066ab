package pages

import (
	"bufio"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/navexpand/internal/foundation/errors"
	"git.home.luguber.info/inful/navexpand/internal/nav"
)

// Stdin is the manifest name that reads from standard input.
const Stdin = "-"

// Format is the syntax of a manifest.
type Format int

const (
	// FormatText lists one path per line; blank lines and lines starting
	// with # are ignored.
	FormatText Format = iota
	// FormatList is a YAML or JSON sequence of paths, optionally under a
	// top-level "pages" key.
	FormatList
)

// FormatFor picks the manifest syntax from the file extension.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json":
		return FormatList
	default:
		return FormatText
	}
}

// Source describes where the page set comes from.
type Source struct {
	// Manifests are read in order; Stdin reads from Input.
	Manifests []string
	// Paths are added after the manifests.
	Paths []string
	// Input backs the Stdin manifest.
	Input io.Reader
	// NormalizeUnicode applies NFC to every path.
	NormalizeUnicode bool
}

// Load reads every manifest in src and returns the combined page set.
func Load(src Source) (*nav.PageSet, error) {
	var all []string
	for _, m := range src.Manifests {
		paths, err := readManifest(m, src.Input)
		if err != nil {
			return nil, err
		}
		all = append(all, paths...)
	}
	all = append(all, src.Paths...)

	out := make([]string, 0, len(all))
	for _, p := range all {
		if p = Clean(p, src.NormalizeUnicode); p != "" {
			out = append(out, p)
		}
	}
	return nav.NewPageSet(out...), nil
}

func readManifest(name string, stdin io.Reader) ([]string, error) {
	if name == Stdin {
		if stdin == nil {
			stdin = os.Stdin
		}
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to read page manifest from stdin").Build()
		}
		return Parse(data, sniff(data))
	}

	data, err := os.ReadFile(name)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFoundError("page manifest not found").
				WithContext("path", name).
				Build()
		}
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to read page manifest").
			WithContext("path", name).
			Build()
	}
	paths, err := Parse(data, FormatFor(name))
	if err != nil {
		if ce, ok := errors.AsClassified(err); ok {
			return nil, ce.WithContext("path", name)
		}
		return nil, err
	}
	return paths, nil
}

// sniff treats input starting with [ or "pages:" as a list manifest.
func sniff(data []byte) Format {
	trimmed := bytes.TrimSpace(data)
	if bytes.HasPrefix(trimmed, []byte("[")) || bytes.HasPrefix(trimmed, []byte("pages:")) {
		return FormatList
	}
	return FormatText
}

// Parse decodes manifest bytes. Paths are returned as written.
func Parse(data []byte, format Format) ([]string, error) {
	if format == FormatList {
		return parseList(data)
	}

	var out []string
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.WrapError(err, errors.CategoryValidation, "failed to scan page manifest").Build()
	}
	return out, nil
}

func parseList(data []byte) ([]string, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.WrapError(err, errors.CategoryValidation, "invalid page manifest").Build()
	}
	if len(doc.Content) == 0 {
		return nil, nil
	}
	root := doc.Content[0]
	if root.Kind == yaml.MappingNode {
		var wrapped struct {
			Pages []string `yaml:"pages"`
		}
		if err := root.Decode(&wrapped); err != nil {
			return nil, errors.WrapError(err, errors.CategoryValidation, "invalid page manifest").Build()
		}
		return wrapped.Pages, nil
	}
	var list []string
	if err := root.Decode(&list); err != nil {
		return nil, errors.WrapError(err, errors.CategoryValidation, "page manifest must be a list of paths").Build()
	}
	return list, nil
}

// Clean trims p, converts backslashes to slashes and drops a leading "./".
// With nfc set the result is NFC-normalized.
func Clean(p string, nfc bool) string {
	p = strings.TrimSpace(p)
	p = strings.ReplaceAll(p, `\`, "/")
	for strings.HasPrefix(p, "./") {
		p = p[2:]
	}
	if nfc {
		p = norm.NFC.String(p)
	}
	return p
}

// NormalizeRefs returns a copy of tree with every reference NFC-normalized,
// so references match page paths loaded with NormalizeUnicode.
func NormalizeRefs(tree *nav.Node) *nav.Node {
	out := tree.Clone()
	out.Walk(func(n *nav.Node, _ string, _ int) {
		if n.Kind == nav.KindRef {
			n.Ref = norm.NFC.String(n.Ref)
		}
	})
	return out
}
