package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"git.home.luguber.info/inful/navexpand/internal/foundation/errors"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "NAVEXPAND"

// envFiles are loaded in order; the first file to set a variable wins and
// the process environment is never overwritten.
var envFiles = []string{".env", ".env.local"}

// LoadEnvFiles loads .env and .env.local from dir when present.
func LoadEnvFiles(dir string) error {
	for _, name := range envFiles {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return errors.WrapError(err, errors.CategoryConfig, "failed to load environment file").
				WithContext("path", path).
				Build()
		}
	}
	return nil
}

// EnvOverrides holds NAVEXPAND_* variables. Nil fields were not set.
type EnvOverrides struct {
	Flat                 *bool   `envconfig:"FLAT"`
	FilePattern          *string `envconfig:"FILE_PATTERN"`
	FileNameAsTitle      *bool   `envconfig:"FILE_NAME_AS_TITLE"`
	Recurse              *bool   `envconfig:"RECURSE"`
	ReverseSortDirectory *bool   `envconfig:"REVERSE_SORT_DIRECTORY"`
	StrictPrefix         *bool   `envconfig:"STRICT_PREFIX"`
	NormalizeUnicode     *bool   `envconfig:"NORMALIZE_UNICODE"`
	LogLevel             string  `envconfig:"LOG_LEVEL"`
}

// LoadEnvOverrides reads NAVEXPAND_* variables from the environment.
func LoadEnvOverrides() (EnvOverrides, error) {
	var env EnvOverrides
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return env, errors.WrapError(err, errors.CategoryConfig, "invalid environment override").Build()
	}
	return env, nil
}

// ApplyTo overlays the variables that were set onto opts.
func (e EnvOverrides) ApplyTo(opts *PluginOptions) {
	setIf(&opts.Flat, e.Flat)
	setIf(&opts.FilePattern, e.FilePattern)
	setIf(&opts.FileNameAsTitle, e.FileNameAsTitle)
	setIf(&opts.Recurse, e.Recurse)
	setIf(&opts.ReverseSortDirectory, e.ReverseSortDirectory)
	setIf(&opts.StrictPrefix, e.StrictPrefix)
	setIf(&opts.NormalizeUnicode, e.NormalizeUnicode)
}

func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
