package titles

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolverTitle(t *testing.T) {
	fsys := fstest.MapFS{
		"fm.md":           {Data: []byte("---\ntitle: From Front Matter\n---\n# Heading\n")},
		"heading.md":      {Data: []byte("Intro text\n\n## Second\n\n# The *First* `One`\n")},
		"crlf.md":         {Data: []byte("---\r\ntags: [a]\r\n---\r\n# Windows\r\n")},
		"empty-fm.md":     {Data: []byte("---\n---\n# After Empty\n")},
		"no_title.md":     {Data: []byte("just text\n")},
		"broken-fm.md":    {Data: []byte("---\ntitle: [unclosed\n---\n# Fallback\n")},
		"unterminated.md": {Data: []byte("---\ntitle: x\n# Body\n")},
		"title-int.md":    {Data: []byte("---\ntitle: 42\n---\n")},
	}
	r := NewResolver(fsys, nil)

	tests := []struct {
		path string
		want string
	}{
		{"fm.md", "From Front Matter"},
		{"heading.md", "The First One"},
		{"crlf.md", "Windows"},
		{"empty-fm.md", "After Empty"},
		{"no_title.md", "No title"},
		{"broken-fm.md", "Fallback"},
		{"unterminated.md", "Body"},
		{"title-int.md", "Title int"},
		{"missing/page-name.md", "Page name"},
		{"../escape.md", "Escape"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Title(tt.path))
		})
	}
}

func TestResolverCaches(t *testing.T) {
	fsys := fstest.MapFS{"a.md": {Data: []byte("# One\n")}}
	r := NewResolver(fsys, nil)
	require.Equal(t, "One", r.Title("a.md"))

	fsys["a.md"] = &fstest.MapFile{Data: []byte("# Two\n")}
	assert.Equal(t, "One", r.Title("a.md"))
}

func TestResolverWithoutFS(t *testing.T) {
	assert.Equal(t, "Getting started", NewResolver(nil, nil).Title("guide/getting_started.md"))
}

func TestHumanize(t *testing.T) {
	assert.Equal(t, "Install guide", Humanize("docs/install-guide.md"))
	assert.Equal(t, "Émigré", Humanize("émigré.md"))
	assert.Equal(t, "Readme", Humanize("readme.md"))
	assert.Equal(t, "--.md", Humanize("--.md"))
}

func TestSplitFrontmatter(t *testing.T) {
	fm, body, had, err := splitFrontmatter([]byte("---\nkey: value\n---\n# Title\n"))
	require.NoError(t, err)
	assert.True(t, had)
	assert.Equal(t, "key: value\n", string(fm))
	assert.Equal(t, "# Title\n", string(body))

	fm, body, had, err = splitFrontmatter([]byte("---\ntitle: End\n---"))
	require.NoError(t, err)
	assert.True(t, had)
	assert.Equal(t, "title: End\n", string(fm))
	assert.Empty(t, body)

	_, body, had, err = splitFrontmatter([]byte("# No front matter\n"))
	require.NoError(t, err)
	assert.False(t, had)
	assert.Equal(t, "# No front matter\n", string(body))

	_, _, _, err = splitFrontmatter([]byte("---\nkey: value\n"))
	require.ErrorIs(t, err, ErrMissingClosingDelimiter)
}
