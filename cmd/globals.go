package cmd

import (
	"os"

	"github.com/spf13/cast"
)

const (
	globalErrorExitStatus = 1 // Global error exit status.
)

const (
	// pathSeparator is separator used for parameter names
	pathSeparator = "/"

	// shortTimeFormat is a short format for printing timestamps
	shortTimeFormat = "2006-01-02 15:04:05"

	// defaultNumRetries is the default for the number of retries we'll use for our AWS client
	defaultNumRetries = 10

	// metricsNamespace prefixes the cache counters
	metricsNamespace = "paramcache"
)

var (
	globalVerbose    = false             // Verbose flag set via command line
	globalBackend    = "ssm"             // Backend flag set via command line
	globalNumRetries = defaultNumRetries // Retries flag set via command line
	globalPrefix     = pathSeparator     // Default prefix flag set via command line
	globalFile       = ""                // Parameters file for the file backend
	globalLogLevel   = "warn"            // Log level flag set via command line
	// WHEN YOU ADD NEXT GLOBAL FLAG, MAKE SURE TO ALSO UPDATE PERSISTENT FLAGS, FLAG CONSTANTS AND UPDATE FUNC.
)

const (
	verboseEnvVar  = "PARAMCACHE_VERBOSE"
	backendEnvVar  = "PARAMCACHE_BACKEND"
	retriesEnvVar  = "PARAMCACHE_RETRIES"
	prefixEnvVar   = "PARAMCACHE_PREFIX"
	fileEnvVar     = "PARAMCACHE_FILE"
	logLevelEnvVar = "PARAMCACHE_LOG_LEVEL"
)

func updateGlobals() {
	if verbose, ok := os.LookupEnv(verboseEnvVar); ok {
		globalVerbose = cast.ToBool(verbose)
	}

	if backend, ok := os.LookupEnv(backendEnvVar); ok {
		globalBackend = backend
	}

	if retries, ok := os.LookupEnv(retriesEnvVar); ok {
		if n, err := cast.ToIntE(retries); err == nil {
			globalNumRetries = n
		}
	}

	if prefix, ok := os.LookupEnv(prefixEnvVar); ok && prefix != "" {
		globalPrefix = prefix
	}

	if file, ok := os.LookupEnv(fileEnvVar); ok {
		globalFile = file
	}

	if level, ok := os.LookupEnv(logLevelEnvVar); ok {
		globalLogLevel = level
	}
}
