package cmd

import (
	"fmt"
	"io"
	"path"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/manju-lilly/regintel-processbatch/store"
)

// listCmd represents the 'list' command
var listCmd = &cobra.Command{
	Use:   "list <prefix>",
	Short: "Bulk load a prefix and list its parameters",
	Args:  cobra.ExactArgs(1), //nolint:gomnd
	RunE:  runList,
}

var listParameters struct {
	WithValues    bool
	SortByTime    bool
	SortByVersion bool
}

func init() {
	listCmd.Flags().BoolVarP(&listParameters.WithValues, "expand", "e", false, "Expand parameter list with values")
	listCmd.Flags().BoolVarP(&listParameters.SortByTime, "time", "t", false, "Sort by modified time")
	listCmd.Flags().BoolVarP(&listParameters.SortByVersion, "version", "v", false, "Sort by version")
	// add 'list' command to root command
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	prefixPath := path.Join(pathSeparator, args[0])

	if err := validateConfigPathName(prefixPath); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	parameterCache, err := getParameterCache()
	if err != nil {
		return fmt.Errorf("failed to get parameter cache: %w", err)
	}

	params, err := parameterCache.List(cmd.Context(), prefixPath)
	if err != nil {
		return fmt.Errorf("failed to list store contents (%s): %w", prefixPath, err)
	}

	sortParameters(params, listParameters.SortByTime, listParameters.SortByVersion)

	return printParameters(cmd.OutOrStdout(), params, prefixPath, listParameters.WithValues)
}

// sortParameters orders by name, then stably by the requested keys.
func sortParameters(params []store.Parameter, byTime, byVersion bool) {
	sort.Sort(ByName(params))

	if byTime {
		sort.Stable(ByTime(params))
	}

	if byVersion {
		sort.Stable(ByVersion(params))
	}
}

func printParameters(out io.Writer, params []store.Parameter, prefixPath string, withValues bool) error {
	w := tabwriter.NewWriter(out, 0, 8, 2, '\t', 0)

	fmt.Fprint(w, "Key\tVersion\tType\tLastModified")

	if withValues {
		fmt.Fprint(w, "\tValue")
	}

	fmt.Fprintln(w, "")

	for _, param := range params {
		fmt.Fprintf(w, "%s\t%d\t%s\t%s",
			stripPrefix(param.Name, prefixPath),
			param.Version,
			param.Type,
			param.LastModifiedDate.Local().Format(shortTimeFormat),
		)

		if withValues {
			fmt.Fprintf(w, "\t%s", param.Value)
		}

		fmt.Fprintln(w, "")
	}

	return w.Flush()
}

type ByName []store.Parameter

func (a ByName) Len() int           { return len(a) }
func (a ByName) Swap(i, j int)      { a[i], a[j] = a[j], a[i] }
func (a ByName) Less(i, j int) bool { return a[i].Name < a[j].Name }

type ByTime []store.Parameter

func (a ByTime) Len() int      { return len(a) }
func (a ByTime) Swap(i, j int) { a[i], a[j] = a[j], a[i] }
func (a ByTime) Less(i, j int) bool {
	return a[i].LastModifiedDate.Before(a[j].LastModifiedDate)
}

type ByVersion []store.Parameter

func (a ByVersion) Len() int           { return len(a) }
func (a ByVersion) Swap(i, j int)      { a[i], a[j] = a[j], a[i] }
func (a ByVersion) Less(i, j int) bool { return a[i].Version < a[j].Version }
