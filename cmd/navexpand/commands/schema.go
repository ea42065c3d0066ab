package commands

import (
	"fmt"

	"git.home.luguber.info/inful/navexpand/internal/config"
)

// SchemaCmd implements the 'schema' command.
type SchemaCmd struct{}

func (s *SchemaCmd) Run(g *Global) error {
	out, err := config.GenerateSchema()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(g.stdout(), string(out))
	return err
}
