package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// Load reads and decodes a project file. Defaults are applied by Resolve.
func Load(filename string) (*BuildConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	var c BuildConfig
	err = yaml.Unmarshal(data, &c)
	if err != nil {
		return nil, errors.Wrapf(err, "error parsing %s", filename)
	}

	return &c, nil
}
