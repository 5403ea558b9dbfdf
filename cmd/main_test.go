package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manju-lilly/regintel-processbatch/store"
)

const paramsFixture = `
sample:
  numberOne: ValueOne
  numberTwo: ValueTwo
  nested:
    numberThree: One,Two,Three
`

func writeFixture(t *testing.T) string {
	t.Helper()

	file := filepath.Join(t.TempDir(), "params.yaml")
	require.NoError(t, os.WriteFile(file, []byte(paramsFixture), 0o600))

	return file
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer

	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)

	err := rootCmd.ExecuteContext(context.Background())

	return out.String(), err
}

func TestGetCommand(t *testing.T) {
	defer func(prefix string) {
		globalPrefix, getParameters.Prefix = prefix, ""
	}(globalPrefix)

	file := writeFixture(t)

	out, err := run(t, "-b", "file", "--file", file, "get", "-q", "/sample/numberOne")
	require.NoError(t, err)
	assert.Equal(t, "ValueOne\n", out)

	out, err = run(t, "-b", "file", "--file", file, "get", "-q", "-p", "/sample/nested", "numberThree")
	require.NoError(t, err)
	assert.Equal(t, "One,Two,Three\n", out)

	_, err = run(t, "-b", "file", "--file", file, "get", "-q", "-p", "", "/sample/numberFour")
	assert.True(t, errors.Is(err, store.ErrParameterNotFound))
}

func TestGetCommandRelativePrefix(t *testing.T) {
	defer func(prefix string) {
		globalPrefix, getParameters.Prefix = prefix, ""
	}(globalPrefix)

	file := writeFixture(t)

	out, err := run(t, "-b", "file", "--file", file, "get", "-q", "-p", "sample", "numberOne")
	require.NoError(t, err)
	assert.Equal(t, "ValueOne\n", out)

	out, err = run(t, "-b", "file", "--file", file, "--default-prefix", "sample", "get", "-q", "-p", "", "numberTwo")
	require.NoError(t, err)
	assert.Equal(t, "ValueTwo\n", out)

	_, err = run(t, "-b", "file", "--file", file, "--default-prefix", "sample", "get", "-q", "-p", "", "numberFour")
	require.Error(t, err)
	assert.True(t, errors.Is(err, store.ErrParameterNotFound))
	assert.Contains(t, err.Error(), "/sample/numberFour")

	t.Setenv(prefixEnvVar, "sample/nested")

	out, err = run(t, "-b", "file", "--file", file, "get", "-q", "-p", "", "numberThree")
	require.NoError(t, err)
	assert.Equal(t, "One,Two,Three\n", out)
}

func TestListCommand(t *testing.T) {
	file := writeFixture(t)

	out, err := run(t, "-b", "file", "--file", file, "list", "-e", "sample")
	require.NoError(t, err)

	assert.Contains(t, out, "Key")
	assert.Contains(t, out, "nested/numberThree")
	assert.Contains(t, out, "ValueTwo")
}

func TestGetParameterStore(t *testing.T) {
	defer func(backend, file string) {
		globalBackend, globalFile = backend, file
	}(globalBackend, globalFile)

	globalBackend = "null"
	s, err := getParameterStore()
	require.NoError(t, err)
	assert.IsType(t, &store.NullStore{}, s)

	globalBackend = "file"
	globalFile = ""
	_, err = getParameterStore()
	assert.Error(t, err)

	globalBackend = "etcd"
	_, err = getParameterStore()
	assert.Error(t, err)
}
