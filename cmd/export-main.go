package cmd

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Jeffail/gabs/v2"
	"github.com/ghodss/yaml"
	"github.com/spf13/cobra"
)

// exportCmd represents the 'export' command
var exportCmd = &cobra.Command{
	Use:   "export <prefix...>",
	Short: "Bulk load prefixes and export their parameters in the specified format",
	Args:  cobra.MinimumNArgs(1), //nolint:gomnd
	RunE:  runExport,
}

var exportParameters struct {
	Format string
	Output string
}

type exporter func(params map[string]string, w io.Writer) error

var exporters = map[string]exporter{
	"json":      exportAsJSON,
	"yaml":      exportAsYaml,
	"csv":       exportAsCsv,
	"tsv":       exportAsTsv,
	"dotenv":    exportAsEnvFile,
	"tfvars":    exportAsTfvars,
	"tfenvvars": exportAsTfEnvVars,
}

//nolint:lll
func init() {
	exportCmd.Flags().StringVarP(&exportParameters.Format, "format", "f", "json", "Output format (json, yaml, csv, tsv, dotenv, tfvars, tfenvvars)")
	exportCmd.Flags().StringVarP(&exportParameters.Output, "output-file", "o", "", "Output file (default is standard output)")
	// add 'export' command to root command
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	export, ok := exporters[strings.ToLower(exportParameters.Format)]
	if !ok {
		return fmt.Errorf("unsupported export format: %s", exportParameters.Format)
	}

	prefixPaths, err := normalizePrefixPaths(args)
	if err != nil {
		return err
	}

	parameterCache, err := getParameterCache()
	if err != nil {
		return fmt.Errorf("failed to get parameter cache: %w", err)
	}

	params := make(map[string]string)

	for _, prefixPath := range prefixPaths {
		list, err := parameterCache.List(cmd.Context(), prefixPath)
		if err != nil {
			return fmt.Errorf("failed to list store contents (%s): %w", prefixPath, err)
		}

		for k, v := range collectValues(list, prefixPath) {
			if _, ok := params[k]; ok {
				fmt.Fprintf(os.Stderr, "warning: parameter %s specified more than once (overridden by prefix %s)\n", k, prefixPath)
			}

			params[k] = v
		}
	}

	out := cmd.OutOrStdout()

	if exportParameters.Output != "" {
		file, err := os.OpenFile(exportParameters.Output, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
		if err != nil {
			return fmt.Errorf("failed to open output file for writing (%s): %w", exportParameters.Output, err)
		}
		defer file.Close()

		out = file
	}

	w := bufio.NewWriter(out)

	if err := export(params, w); err != nil {
		return fmt.Errorf("unable to export parameters: %w", err)
	}

	return w.Flush()
}

// toHierarchy nests parameters by path segment:
// {"db/user": "admin"} becomes {"db": {"user": "admin"}}.
func toHierarchy(params map[string]string) (*gabs.Container, error) {
	obj := gabs.New()

	for _, k := range sortedKeys(params) {
		if _, err := obj.Set(params[k], strings.Split(k, pathSeparator)...); err != nil {
			return nil, fmt.Errorf("failed to set key %s: %w", k, err)
		}
	}

	return obj, nil
}

func exportAsJSON(params map[string]string, w io.Writer) error {
	obj, err := toHierarchy(params)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, obj.String())

	return err
}

func exportAsYaml(params map[string]string, w io.Writer) error {
	obj, err := toHierarchy(params)
	if err != nil {
		return err
	}

	d, err := yaml.Marshal(obj.Data())
	if err != nil {
		return fmt.Errorf("failed to marshal parameters to YAML: %w", err)
	}

	_, err = w.Write(d)

	return err
}

func exportAsCsv(params map[string]string, w io.Writer) error {
	csvWriter := csv.NewWriter(w)

	for _, k := range sortedKeys(params) {
		if err := csvWriter.Write([]string{k, params[k]}); err != nil {
			return fmt.Errorf("failed to write param %s to CSV: %w", k, err)
		}
	}

	csvWriter.Flush()

	return csvWriter.Error()
}

func exportAsTsv(params map[string]string, w io.Writer) error {
	return writeLines(params, w, func(k, v string) string {
		return k + "\t" + v
	})
}

// exportAsEnvFile writes KEY="value" lines.
func exportAsEnvFile(params map[string]string, w io.Writer) error {
	return writeLines(params, w, func(k, v string) string {
		return fmt.Sprintf(`%s="%s"`, envName("", k), doubleQuoteEscape(v))
	})
}

// exportAsTfvars is like dotenv, but keeps case.
func exportAsTfvars(params map[string]string, w io.Writer) error {
	return writeLines(params, w, func(k, v string) string {
		return fmt.Sprintf(`%s = "%s"`, strings.ReplaceAll(k, pathSeparator, "_"), doubleQuoteEscape(v))
	})
}

// exportAsTfEnvVars writes TF_VAR_key="value" lines, keeping the key case.
func exportAsTfEnvVars(params map[string]string, w io.Writer) error {
	return writeLines(params, w, func(k, v string) string {
		return fmt.Sprintf(`%s="%s"`, envName("TF_VAR_", k), doubleQuoteEscape(v))
	})
}

func writeLines(params map[string]string, w io.Writer, line func(k, v string) string) error {
	for _, k := range sortedKeys(params) {
		if _, err := fmt.Fprintln(w, line(k, params[k])); err != nil {
			return fmt.Errorf("failed to write param %s: %w", k, err)
		}
	}

	return nil
}

// envName builds an environment variable name from a parameter key. Keys
// are upper cased unless a prefix is given.
func envName(prefix, k string) string {
	if prefix == "" {
		k = strings.ToUpper(k)
	}

	return strings.NewReplacer("/", "_", "-", "_", ".", "_").Replace(prefix + k)
}
