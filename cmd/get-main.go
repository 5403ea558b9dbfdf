package cmd

import (
	"fmt"
	"io"
	"path"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/manju-lilly/regintel-processbatch/store"
)

// getCmd represents the 'get' command
var getCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a parameter, reading through the cache",
	Args:  cobra.ExactArgs(1), //nolint:gomnd
	RunE:  runGet,
}

var getParameters struct {
	Prefix  string
	Quiet   bool
	Refresh bool
	Load    bool
}

//nolint:lll
func init() {
	getCmd.Flags().StringVarP(&getParameters.Prefix, "prefix", "p", "", "Prefix the key is relative to. Without it the key is an absolute path, or relative to --default-prefix when it has no separator.")
	getCmd.Flags().BoolVarP(&getParameters.Quiet, "quiet", "q", false, "Only print the value")
	getCmd.Flags().BoolVar(&getParameters.Refresh, "refresh", false, "Ignore any cached copy and fetch the parameter again")
	getCmd.Flags().BoolVar(&getParameters.Load, "load", false, "Bulk load the prefix before the lookup")
	// add 'get' command to root command
	rootCmd.AddCommand(getCmd)
}

func runGet(cmd *cobra.Command, args []string) error {
	prefix, key := resolveKey(args[0], getParameters.Prefix)

	if err := validateConfigPathName(path.Join(prefix, key)); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	parameterCache, err := getParameterCache()
	if err != nil {
		return fmt.Errorf("failed to get parameter cache: %w", err)
	}

	ctx := cmd.Context()

	if getParameters.Load {
		if _, err := parameterCache.Load(ctx, prefix); err != nil {
			return fmt.Errorf("failed to load parameters (%s): %w", prefix, err)
		}
	}

	var param *store.Parameter

	if getParameters.Refresh {
		param, err = parameterCache.Refresh(ctx, key, prefix)
	} else {
		param, err = parameterCache.Get(ctx, key, prefix)
	}

	if err != nil {
		return fmt.Errorf("failed to fetch parameter: %w", err)
	}

	if param == nil {
		if prefix == "" {
			prefix = parameterCache.Prefix()
		}

		return fmt.Errorf("parameter `%s`: %w", path.Join(prefix, key), store.ErrParameterNotFound)
	}

	return printParameter(cmd.OutOrStdout(), *param, getParameters.Quiet)
}

// resolveKey works out the prefix and local key for a get argument.
func resolveKey(arg, prefix string) (string, string) {
	if prefix != "" {
		return path.Join(pathSeparator, prefix), arg
	}

	if path.Base(arg) == arg && !path.IsAbs(arg) {
		return "", arg
	}

	return splitParameterPath(arg)
}

func printParameter(out io.Writer, param store.Parameter, quiet bool) error {
	if quiet {
		_, err := fmt.Fprintf(out, "%s\n", param.Value)
		return err
	}

	w := tabwriter.NewWriter(out, 0, 8, 2, '\t', 0)

	fmt.Fprintln(w, "Key\tValue\tVersion\tType\tLastModified\tARN")
	fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\t%s\n",
		param.Name,
		param.Value,
		param.Version,
		param.Type,
		param.LastModifiedDate.Local().Format(shortTimeFormat),
		param.ARN,
	)

	return w.Flush()
}
