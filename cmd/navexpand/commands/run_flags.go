package commands

import (
	"git.home.luguber.info/inful/navexpand/internal/pipeline"
)

// PageFlags select the known page set.
type PageFlags struct {
	Pages []string `short:"p" name:"pages" help:"Page manifest: one path per line, or a YAML/JSON list. Use - for stdin. Repeatable." sep:"none" placeholder:"FILE"`
	Page  []string `name:"page" help:"A known page path. Repeatable." sep:"none" placeholder:"PATH"`
}

// OptionFlags override plugin options.
type OptionFlags struct {
	Option map[string]string `short:"O" name:"option" help:"Override a plugin option, e.g. -O flat=true. Repeatable." placeholder:"KEY=VALUE"`
}

// OutputFlags control where the expanded navigation goes.
type OutputFlags struct {
	Output      string `short:"o" help:"Write the expanded navigation to this file instead of stdout"`
	Format      string `short:"f" help:"Output format of the nav document (yaml|json)" default:"yaml"`
	InPlace     bool   `short:"i" name:"in-place" help:"Rewrite the nav of the configuration file"`
	MetricsFile string `name:"metrics-file" help:"Write Prometheus metrics in text format to this file after the run"`
}

func (o OutputFlags) validate() error {
	if o.InPlace && o.Output != "" {
		return usageError("--in-place and --output are mutually exclusive")
	}
	return nil
}

func buildRequest(root *CLI, g *Global, p PageFlags, opt OptionFlags, out OutputFlags) (pipeline.Request, error) {
	if err := out.validate(); err != nil {
		return pipeline.Request{}, err
	}
	format, err := pipeline.ParseFormat(out.Format)
	if err != nil {
		return pipeline.Request{}, err
	}
	return pipeline.Request{
		ConfigPath: root.Config,
		Manifests:  p.Pages,
		Pages:      p.Page,
		Stdin:      g.Stdin,
		Overrides:  opt.Option,
		Format:     format,
		Output:     out.Output,
		InPlace:    out.InPlace,
		Stdout:     g.stdout(),
	}, nil
}
