package cmd

import (
	"path"
	"sort"
	"strings"

	"github.com/manju-lilly/regintel-processbatch/store"
)

const doubleQuoteSpecialChars = "\\\n\r\"!$`"

// stripPrefix returns name relative to prefix, without a leading separator.
func stripPrefix(name, prefix string) string {
	return strings.TrimPrefix(strings.TrimPrefix(name, prefix), pathSeparator)
}

// splitParameterPath splits an absolute parameter path into the prefix
// (ending in the separator) and the local key.
func splitParameterPath(configPath string) (string, string) {
	return path.Split(path.Join(pathSeparator, configPath))
}

// collectValues flattens parameters into a map keyed by name relative to
// prefix.
func collectValues(params []store.Parameter, prefix string) map[string]string {
	values := make(map[string]string, len(params))

	for _, p := range params {
		values[stripPrefix(p.Name, prefix)] = p.Value
	}

	return values
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))

	for k := range m {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}

func doubleQuoteEscape(line string) string {
	for _, c := range doubleQuoteSpecialChars {
		toReplace := "\\" + string(c)

		if c == '\n' {
			toReplace = `\n`
		}

		if c == '\r' {
			toReplace = `\r`
		}

		line = strings.ReplaceAll(line, string(c), toReplace)
	}

	return line
}
