package cmd

import (
	"fmt"
	"path"
	"regexp"
)

// Regex's used to validate inputs
var (
	validConfigPathFormat = regexp.MustCompile(`^[\/]*[\w\.\-]+(\/[\w\.\-]+)*$`)
)

//nolint:lll
func validateConfigPathName(configPath string) error {
	if !validConfigPathFormat.MatchString(configPath) {
		return fmt.Errorf(`failed to validate parameter path name '%s'
Only alphanumeric, dashes, forwardslashes, fullstops and underscores are allowed for parameter path names`, configPath)
	}

	return nil
}

// normalizePrefixPaths makes every prefix absolute and validates it.
func normalizePrefixPaths(prefixes []string) ([]string, error) {
	prefixPaths := make([]string, 0, len(prefixes))

	for _, p := range prefixes {
		prefixPath := path.Join(pathSeparator, p)

		if err := validateConfigPathName(prefixPath); err != nil {
			return nil, fmt.Errorf("validation failed: %w", err)
		}

		prefixPaths = append(prefixPaths, prefixPath)
	}

	return prefixPaths, nil
}
