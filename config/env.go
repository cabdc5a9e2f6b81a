package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

// LoadEnv reads the .env files for mode from envDir. Files are consulted
// from most to least specific and the first file that defines a key wins.
// Only keys starting with prefix are kept; an empty prefix keeps all of them.
func LoadEnv(mode, envDir, prefix string) (map[string]string, error) {
	if mode == "local" {
		return nil, errors.New(`"local" cannot be used as a mode name because it conflicts with the .local postfix for .env files`)
	}

	var files []string
	if mode != "" {
		files = append(files, ".env."+mode+".local", ".env."+mode)
	}
	files = append(files, ".env.local", ".env")

	env := make(map[string]string)
	for _, name := range files {
		file := filepath.Join(envDir, name)
		info, err := os.Stat(file)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, errors.WithStack(err)
		}
		if info.IsDir() {
			continue
		}

		parsed, err := godotenv.Read(file)
		if err != nil {
			return nil, errors.Wrapf(err, "error parsing %s", file)
		}

		for key, value := range parsed {
			if !strings.HasPrefix(key, prefix) {
				continue
			}
			if _, ok := env[key]; !ok {
				env[key] = value
			}
		}
	}

	return env, nil
}
