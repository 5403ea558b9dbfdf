package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/manju-lilly/regintel-processbatch/pkg/environ"
	"github.com/manju-lilly/regintel-processbatch/pkg/exec"
)

const (
	// Default value to expect in strict mode
	strictValueDefault = "changeme"
)

// execCmd represents the 'exec' command
var execCmd = &cobra.Command{
	Use:     "exec <prefix...> -- <command> [<arg...>]",
	Short:   "Executes a command with parameters loaded into the environment",
	Args:    cobra.MinimumNArgs(1), //nolint:gomnd
	PreRunE: checkExecSyntax,
	RunE:    runExec,
	//nolint:lll
	Example: `
Given a parameters file like this:

	$ cat params.yaml
	prod:
	  db:
	    username: admin
	    password: pass

--strict will fail with unfilled env vars

	$ HOME=/tmp DB_USERNAME=changeme DB_PASSWORD=changeme EXTRA=changeme paramcache -b file --file params.yaml exec --strict /prod -- env
	Error: parameter store is missing key EXTRA, present in environment with value changeme

--pristine takes effect after checking for --strict values

	$ HOME=/tmp DB_USERNAME=changeme DB_PASSWORD=changeme paramcache -b file --file params.yaml exec --strict --pristine /prod -- env
	DB_USERNAME=admin
	DB_PASSWORD=pass
`,
}

var execParameters struct {
	// When true, only use variables retrieved from the backend, do not inherit
	// existing environment variables
	Pristine bool

	// When true, enable strict mode, which checks that all parameters replace
	// env vars with a special sentinel value
	Strict bool

	// Value to expect in strict mode
	StrictValue string
}

//nolint:lll
func init() {
	execCmd.Flags().BoolVar(&execParameters.Pristine, "pristine", false,
		"Only use variables retrieved from the backend; do not inherit existing environment variables")
	execCmd.Flags().BoolVar(&execParameters.Strict, "strict", false,
		`Enable strict mode: only inject parameters for which there is a corresponding
env var with value <strict-value>, and fail if there are any env vars with
that value missing from the parameters`)
	execCmd.Flags().StringVar(&execParameters.StrictValue, "strict-value", strictValueDefault,
		"Value to expect in --strict mode")
	// add 'exec' command to root command
	rootCmd.AddCommand(execCmd)
}

// checkExecSyntax - validate the passed arguments
func checkExecSyntax(cmd *cobra.Command, args []string) error {
	dashIx := cmd.ArgsLenAtDash()

	if dashIx == -1 {
		return errors.New("please separate prefix and command with '--'. See usage")
	}

	//nolint:gomnd
	if err := cobra.MinimumNArgs(1)(cmd, args[:dashIx]); err != nil {
		return fmt.Errorf("at least one prefix must be specified: %w. See usage", err)
	}

	//nolint:gomnd
	if err := cobra.MinimumNArgs(1)(cmd, args[dashIx:]); err != nil {
		return fmt.Errorf("must specify command to run: %w. See usage", err)
	}

	return nil
}

func runExec(cmd *cobra.Command, args []string) error {
	dashIx := cmd.ArgsLenAtDash()
	command, commandArgs := args[dashIx], args[dashIx+1:]

	prefixPaths, err := normalizePrefixPaths(args[:dashIx])
	if err != nil {
		return err
	}

	parameterCache, err := getParameterCache()
	if err != nil {
		return fmt.Errorf("failed to get parameter cache: %w", err)
	}

	if execParameters.Pristine && globalVerbose {
		fmt.Fprintf(os.Stderr, "%s: pristine mode engaged\n", AppName)
	}

	ctx := cmd.Context()

	var env environ.Environ

	if execParameters.Strict {
		if globalVerbose {
			fmt.Fprintf(os.Stderr, "%s: strict mode engaged\n", AppName)
		}

		env = environ.Environ(os.Environ())

		err := env.LoadStrict(ctx, parameterCache, execParameters.StrictValue, execParameters.Pristine, prefixPaths...)
		if err != nil {
			return err
		}
	} else {
		if !execParameters.Pristine {
			env = environ.Environ(os.Environ())
		}

		for _, prefixPath := range prefixPaths {
			collisions := make([]string, 0)

			if err := env.Load(ctx, parameterCache, prefixPath, &collisions); err != nil {
				return fmt.Errorf("failed to list store contents: %w", err)
			}

			for _, c := range collisions {
				fmt.Fprintf(os.Stderr, "warning: parameters under %s overwriting environment variable %s\n", prefixPath, c)
			}
		}
	}

	if globalVerbose {
		// run the post hook now, exec does not return on success
		if err := reportAfter(cmd, args); err != nil {
			return err
		}

		fmt.Fprintf(os.Stderr, "info: with environment %s\n", strings.Join(env, ","))
	}

	return exec.Exec(command, commandArgs, env)
}
