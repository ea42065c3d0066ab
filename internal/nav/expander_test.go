package nav

import (
	"bytes"
	"log/slog"
	"slices"
	"testing"
	"time"

	"git.home.luguber.info/inful/navexpand/internal/foundation/errors"
	"git.home.luguber.info/inful/navexpand/internal/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func expandWith(t *testing.T, root *Node, pages *PageSet, opts Options) *Node {
	t.Helper()
	out, err := Expand(root, pages, opts)
	require.NoError(t, err)
	return out
}

func TestExpand_DirectChildren(t *testing.T) {
	pages := NewPageSet("guide/intro.md", "guide/setup.md")

	out := expandWith(t, Group(Ref("guide")), pages, DefaultOptions())

	require.Equal(t, Group(Ref("guide/intro.md"), Ref("guide/setup.md")), out)
}

func TestExpand_SubdirectoryRecursion(t *testing.T) {
	pages := NewPageSet("guide/intro.md", "guide/adv/deep.md")

	out := expandWith(t, Group(Ref("guide")), pages, DefaultOptions())

	// "guide/adv/deep.md" sorts before "guide/intro.md", so the directory
	// entry comes first.
	want := Group(
		Titled("adv", Group(Ref("guide/adv/deep.md"))),
		Ref("guide/intro.md"),
	)
	require.Equal(t, want, out)
}

func TestExpand_Flat(t *testing.T) {
	pages := NewPageSet("guide/intro.md", "guide/adv/deep.md")
	opts := DefaultOptions()
	opts.Flat = true

	out := expandWith(t, Group(Ref("guide")), pages, opts)

	require.Equal(t, Group(Ref("guide/adv/deep.md"), Ref("guide/intro.md")), out)
}

func TestExpand_NoMatchingPagesKeepsReference(t *testing.T) {
	pages := NewPageSet("a/x.md")
	opts := DefaultOptions()
	opts.FilePattern = "^nomatch$"

	e, err := NewExpander(pages, opts)
	require.NoError(t, err)
	out, stats, err := e.Expand(Group(Ref("a")))
	require.NoError(t, err)

	require.Equal(t, Group(Ref("a")), out)
	require.Equal(t, Stats{DirectoriesUnmatched: 1}, stats)
}

func TestExpand_RecurseDisabledDropsDeeperPages(t *testing.T) {
	pages := NewPageSet("guide/intro.md", "guide/adv/deep.md")
	opts := DefaultOptions()
	opts.Recurse = false

	out := expandWith(t, Group(Ref("guide")), pages, opts)

	require.Equal(t, Group(Ref("guide/intro.md")), out)
}

func TestExpand_TitledByParentDirectory(t *testing.T) {
	pages := NewPageSet("guide/intro.md", "guide/adv/deep.md")
	opts := DefaultOptions()
	opts.FileNameAsTitle = false
	opts.Flat = true

	out := expandWith(t, Group(Ref("guide")), pages, opts)

	want := Group(
		Titled("guide/adv", Ref("guide/adv/deep.md")),
		Titled("guide", Ref("guide/intro.md")),
	)
	require.Equal(t, want, out)
}

func TestExpand_ReverseSort(t *testing.T) {
	pages := NewPageSet("guide/a.md", "guide/b.md", "guide/sub/c.md", "guide/sub/d.md")
	opts := DefaultOptions()
	opts.ReverseSortDirectory = true

	out := expandWith(t, Group(Ref("guide")), pages, opts)

	want := Group(
		Titled("sub", Group(Ref("guide/sub/d.md"), Ref("guide/sub/c.md"))),
		Ref("guide/b.md"),
		Ref("guide/a.md"),
	)
	require.Equal(t, want, out)
}

func TestExpand_TitledReference(t *testing.T) {
	pages := NewPageSet("guide/a.md", "guide/sub/b.md", "guide/sub/deeper/c.md")

	out := expandWith(t, Group(Titled("Guide", Ref("guide"))), pages, DefaultOptions())

	want := Group(Titled("Guide", Group(
		Ref("guide/a.md"),
		Titled("sub", Group(
			Ref("guide/sub/b.md"),
			Titled("deeper", Group(Ref("guide/sub/deeper/c.md"))),
		)),
	)))
	require.Equal(t, want, out)
}

func TestExpand_SiblingsKeepPositions(t *testing.T) {
	pages := NewPageSet("index.md", "about.md", "guide/x.md", "guide/y.md")
	root := Group(
		Ref("index.md"),
		Ref("guide"),
		Titled("About", Ref("about.md")),
		Ref("missing"),
	)

	e, err := NewExpander(pages, DefaultOptions())
	require.NoError(t, err)
	out, stats, err := e.Expand(root)
	require.NoError(t, err)

	want := Group(
		Ref("index.md"),
		Ref("guide/x.md"),
		Ref("guide/y.md"),
		Titled("About", Ref("about.md")),
		Ref("missing"),
	)
	require.Equal(t, want, out)
	require.Equal(t, Stats{DirectoriesExpanded: 1, DirectoriesUnmatched: 1, PageEntries: 2}, stats)
}

func TestExpand_NestedGroupsUnderTitles(t *testing.T) {
	pages := NewPageSet("ref/api.md", "ref/cli.md", "index.md")
	root := Group(
		Ref("index.md"),
		Titled("Reference", Group(
			Titled("Overview", Ref("index.md")),
			Ref("ref"),
		)),
	)

	out := expandWith(t, root, pages, DefaultOptions())

	want := Group(
		Ref("index.md"),
		Titled("Reference", Group(
			Titled("Overview", Ref("index.md")),
			Ref("ref/api.md"),
			Ref("ref/cli.md"),
		)),
	)
	require.Equal(t, want, out)
}

func TestExpand_UntitledNestedListIsLeftAlone(t *testing.T) {
	pages := NewPageSet("guide/x.md")
	root := Group(Group(Ref("guide")), Opaque(42))

	out := expandWith(t, root, pages, DefaultOptions())

	require.Equal(t, root, out)
}

func TestExpand_MultiKeySectionProcessesEveryKey(t *testing.T) {
	pages := NewPageSet("a/1.md", "b/2.md")
	root := Group(Section(
		Item{Title: "A", Node: Ref("a")},
		Item{Title: "B", Node: Ref("b")},
	))

	out := expandWith(t, root, pages, DefaultOptions())

	want := Group(Section(
		Item{Title: "A", Node: Group(Ref("a/1.md"))},
		Item{Title: "B", Node: Group(Ref("b/2.md"))},
	))
	require.Equal(t, want, out)
}

func TestExpand_RootSection(t *testing.T) {
	pages := NewPageSet("guide/x.md")

	out := expandWith(t, Titled("Guide", Ref("guide")), pages, DefaultOptions())

	require.Equal(t, Titled("Guide", Group(Ref("guide/x.md"))), out)
}

func TestExpand_RootReferenceIsUntouched(t *testing.T) {
	pages := NewPageSet("guide/x.md")

	out := expandWith(t, Ref("guide"), pages, DefaultOptions())

	require.Equal(t, Ref("guide"), out)
}

func TestExpand_NilTreeIsNoop(t *testing.T) {
	out, err := Expand(nil, NewPageSet("a.md"), DefaultOptions())
	require.NoError(t, err)
	require.Nil(t, out)
}

func TestExpand_DoesNotMutateInput(t *testing.T) {
	pages := NewPageSet("guide/intro.md", "guide/adv/deep.md")
	root := Group(Ref("guide"), Titled("G", Ref("guide")))
	before := root.Clone()

	_ = expandWith(t, root, pages, DefaultOptions())

	require.Equal(t, before, root)
}

func TestExpand_LoosePrefixMatchesSiblingDirectories(t *testing.T) {
	pages := NewPageSet("docs/a.md", "docs-extra/b.md")

	loose := expandWith(t, Group(Ref("docs")), pages, DefaultOptions())
	require.Equal(t, Group(Ref("docs-extra/b.md"), Ref("docs/a.md")), loose)

	opts := DefaultOptions()
	opts.StrictPrefix = true
	strict := expandWith(t, Group(Ref("docs")), pages, opts)
	require.Equal(t, Group(Ref("docs/a.md")), strict)
}

func TestExpand_TrailingSlashPrefix(t *testing.T) {
	pages := NewPageSet("guide/a.md", "guide/sub/b.md")

	out := expandWith(t, Group(Ref("guide/")), pages, DefaultOptions())

	require.Equal(t, Group(Ref("guide/a.md"), Titled("sub", Group(Ref("guide/sub/b.md")))), out)
}

func TestExpand_FilePatternIsAnchoredAtStartOnly(t *testing.T) {
	pages := NewPageSet("d/index.md", "d/intro.txt", "d/main.md")
	opts := DefaultOptions()
	opts.FilePattern = `in`

	out := expandWith(t, Group(Ref("d")), pages, opts)

	// "in" inside main.md does not count; only a match at the start does.
	require.Equal(t, Group(Ref("d/index.md"), Ref("d/intro.txt")), out)
}

func TestExpand_DirectoryWithoutMatchingPagesStaysReference(t *testing.T) {
	pages := NewPageSet("guide/a.md", "guide/img/logo.png")

	out := expandWith(t, Group(Ref("guide")), pages, DefaultOptions())

	require.Equal(t, Group(Ref("guide/a.md"), Titled("img", Ref("guide/img"))), out)
}

func TestExpand_InvalidPatternIsConfigError(t *testing.T) {
	opts := DefaultOptions()
	opts.FilePattern = "(unclosed"

	_, err := NewExpander(NewPageSet("a.md"), opts)

	require.Error(t, err)
	require.True(t, errors.HasCategory(err, errors.CategoryConfig))
	classified, ok := errors.AsClassified(err)
	require.True(t, ok)
	require.True(t, classified.IsFatal())
	pattern, _ := classified.Context().GetString("pattern")
	require.Equal(t, "(unclosed", pattern)
}

func TestExpand_NonTerminatingExpansionFails(t *testing.T) {
	// An empty segment makes the generated sub-directory "a/" expand to itself.
	pages := NewPageSet("a//b/c.md")

	_, err := Expand(Group(Ref("a")), pages, DefaultOptions())

	require.Error(t, err)
	require.True(t, errors.HasCategory(err, errors.CategoryNavigation))
}

func TestExpand_IsIdempotent(t *testing.T) {
	pages := NewPageSet(
		"index.md",
		"guide/a.md", "guide/b.md",
		"guide/sub/c.md", "guide/sub/deep/d.md", "guide/sub/deep/e.txt",
		"guide/assets/logo.png",
	)
	root := Group(Ref("index.md"), Titled("Guide", Ref("guide")), Ref("nothing-here"))

	for _, opts := range optionGrid() {
		once := expandWith(t, root, pages, opts)
		twice := expandWith(t, once, pages, opts)
		require.Equal(t, once, twice, "options %+v", opts)
	}
}

func TestExpand_PagesOnlyTreeIsUnchanged(t *testing.T) {
	pages := NewPageSet("index.md", "guide/a.md")
	root := Group(Ref("index.md"), Titled("A", Ref("guide/a.md")), Titled("G", Group(Ref("guide/a.md"))))

	for _, opts := range optionGrid() {
		require.Equal(t, root, expandWith(t, root, pages, opts), "options %+v", opts)
	}
}

func TestExpand_CompletenessAndOrdering(t *testing.T) {
	all := []string{
		"docs/a.md", "docs/b.md", "docs/z.txt",
		"docs/one/c.md", "docs/one/d.md",
		"docs/one/two/e.md", "docs/three/f.md",
	}
	pages := NewPageSet(all...)
	markdown := []string{
		"docs/a.md", "docs/b.md", "docs/one/c.md", "docs/one/d.md",
		"docs/one/two/e.md", "docs/three/f.md",
	}

	for _, reverse := range []bool{false, true} {
		for _, flat := range []bool{false, true} {
			opts := DefaultOptions()
			opts.ReverseSortDirectory = reverse
			opts.Flat = flat

			out := expandWith(t, Group(Ref("docs")), pages, opts)
			refs := out.Refs()

			got := slices.Clone(refs)
			slices.Sort(got)
			assert.Equal(t, markdown, got, "every markdown page exactly once (reverse=%v flat=%v)", reverse, flat)

			if flat {
				want := slices.Clone(markdown)
				if reverse {
					slices.Reverse(want)
				}
				assert.Equal(t, want, refs)
			}
		}
	}
}

func TestExpand_LogsTreeAtDebug(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	pages := NewPageSet("guide/a.md")

	e, err := NewExpander(pages, DefaultOptions(), WithLogger(logger))
	require.NoError(t, err)
	_, _, err = e.Expand(Group(Ref("guide"), Ref("missing")))
	require.NoError(t, err)

	logs := buf.String()
	require.Contains(t, logs, "Navigation before expansion")
	require.Contains(t, logs, "Navigation after expansion")
	require.Contains(t, logs, "Expanded directory reference")
	require.Contains(t, logs, "prefix=guide")
	require.Contains(t, logs, "Reference matched no pages")
}

func TestExpand_NilLoggerAndRecorderAreIgnored(t *testing.T) {
	e, err := NewExpander(NewPageSet("g/a.md"), DefaultOptions(), WithLogger(nil), WithRecorder(nil))
	require.NoError(t, err)
	require.NotPanics(t, func() {
		_, _, err = e.Expand(Group(Ref("g")))
	})
	require.NoError(t, err)
}

type countingRecorder struct {
	durations   int
	directories map[metrics.DirectoryResult]int
	entries     map[metrics.EntryKind]int
}

func (c *countingRecorder) ObserveExpansionDuration(time.Duration) { c.durations++ }
func (c *countingRecorder) IncDirectory(r metrics.DirectoryResult) { c.directories[r]++ }
func (c *countingRecorder) AddEntries(k metrics.EntryKind, n int)  { c.entries[k] += n }
func (c *countingRecorder) IncRunOutcome(metrics.RunOutcome)       {}

func TestExpand_ReportsMetrics(t *testing.T) {
	rec := &countingRecorder{directories: map[metrics.DirectoryResult]int{}, entries: map[metrics.EntryKind]int{}}
	pages := NewPageSet("guide/intro.md", "guide/adv/deep.md")

	e, err := NewExpander(pages, DefaultOptions(), WithRecorder(rec))
	require.NoError(t, err)
	_, stats, err := e.Expand(Group(Ref("guide"), Ref("nope")))
	require.NoError(t, err)

	require.Equal(t, 1, rec.durations)
	require.Equal(t, 2, rec.directories[metrics.DirectoryExpanded])
	require.Equal(t, 1, rec.directories[metrics.DirectoryUnmatched])
	require.Equal(t, 2, rec.entries[metrics.EntryPage])
	require.Equal(t, 1, rec.entries[metrics.EntryDirectory])
	require.Equal(t, Stats{DirectoriesExpanded: 2, DirectoriesUnmatched: 1, PageEntries: 2, DirectoryEntries: 1}, stats)
}

func optionGrid() []Options {
	var grid []Options
	for _, flat := range []bool{false, true} {
		for _, recurse := range []bool{false, true} {
			for _, titled := range []bool{false, true} {
				for _, reverse := range []bool{false, true} {
					grid = append(grid, Options{
						Flat:                 flat,
						FilePattern:          DefaultFilePattern,
						FileNameAsTitle:      titled,
						Recurse:              recurse,
						ReverseSortDirectory: reverse,
					})
				}
			}
		}
	}
	return grid
}
