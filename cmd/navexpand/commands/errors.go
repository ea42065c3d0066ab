package commands

import "git.home.luguber.info/inful/navexpand/internal/foundation/errors"

func usageError(msg string) error {
	return errors.ValidationError(msg).Build()
}
