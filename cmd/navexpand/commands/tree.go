package commands

import (
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/navexpand/internal/pipeline"
	"git.home.luguber.info/inful/navexpand/internal/titles"
)

// TreeCmd implements the 'tree' command.
type TreeCmd struct {
	PageFlags   `embed:""`
	OptionFlags `embed:""`
}

func (t *TreeCmd) Run(g *Global, root *CLI) error {
	res, err := pipeline.New(pipeline.WithLogger(g.Logger)).Expand(pipeline.Request{
		ConfigPath: root.Config,
		Manifests:  t.Pages,
		Pages:      t.Page,
		Stdin:      g.Stdin,
		Overrides:  t.Option,
	})
	if err != nil {
		return err
	}

	docsDir := res.Config.DocsDir
	if !filepath.IsAbs(docsDir) {
		docsDir = filepath.Join(filepath.Dir(root.Config), docsDir)
	}
	resolver := titles.NewResolver(os.DirFS(docsDir), g.Logger)
	return titles.WriteOutline(g.stdout(), res.Tree, resolver.Title)
}
