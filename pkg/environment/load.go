package environment

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

// Load loads a "dotenv" environment variable file from disk. Interpolation of
// variable references within the file is performed by godotenv.
func Load(path string) (map[string]string, error) {
	environment, err := godotenv.Read(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, err
		}
		return nil, errors.Wrapf(err, "unable to load environment file (%s)", path)
	}
	return environment, nil
}

// Build computes an environment for a subprocess. It starts from the current
// process environment and then applies the contents of each environment file
// in order, followed by the specified overrides, with later sources taking
// precedence. An empty path is skipped.
func Build(paths []string, overrides map[string]string) ([]string, error) {
	result := ToMap(os.Environ())

	for _, path := range paths {
		if path == "" {
			continue
		}
		variables, err := Load(path)
		if err != nil {
			return nil, err
		}
		for key, value := range variables {
			result[key] = value
		}
	}

	for key, value := range overrides {
		result[key] = value
	}

	return FromMap(result), nil
}
