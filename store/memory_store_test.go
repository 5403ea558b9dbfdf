package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(ps []Parameter) []string {
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.Name)
	}

	return out
}

func TestMemoryStorePut(t *testing.T) {
	s := NewMemoryStore()

	first := s.Put("sample/numberOne", TypeString, "ValueOne")
	second := s.Put("/sample/numberOne", TypeString, "ValueOneUpdated")

	assert.Equal(t, "/sample/numberOne", first.Name)
	assert.Equal(t, int64(1), first.Version)
	assert.Equal(t, int64(2), second.Version)
	assert.Equal(t, memoryARNPrefix+"/sample/numberOne", second.ARN)

	p, err := s.GetParameter(context.Background(), "/sample/numberOne", true)
	require.NoError(t, err)
	assert.Equal(t, "ValueOneUpdated", p.Value)

	s.Remove("/sample/numberOne")

	_, err = s.GetParameter(context.Background(), "/sample/numberOne", true)
	assert.True(t, errors.Is(err, ErrParameterNotFound))
}

//nolint:funlen
func TestMemoryStoreGetParametersByPath(t *testing.T) {
	s := NewMemoryStoreFromMap(map[string]string{
		"/sample/a":        "1",
		"/sample/b":        "2",
		"/sample/nested/c": "3",
		"/samplex/d":       "4",
		"/other/e":         "5",
	})

	cases := []struct {
		name     string
		query    PathQuery
		expected []string
	}{
		{
			name:     "recursive",
			query:    PathQuery{Path: "/sample/", Recursive: true},
			expected: []string{"/sample/a", "/sample/b", "/sample/nested/c"},
		},
		{
			name:     "one level",
			query:    PathQuery{Path: "/sample"},
			expected: []string{"/sample/a", "/sample/b"},
		},
		{
			name:     "root",
			query:    PathQuery{Path: "/", Recursive: true},
			expected: []string{"/other/e", "/sample/a", "/sample/b", "/sample/nested/c", "/samplex/d"},
		},
		{
			name:     "empty",
			query:    PathQuery{Path: "/missing/", Recursive: true},
			expected: []string{},
		},
	}

	for _, testCase := range cases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			page, err := s.GetParametersByPath(context.Background(), testCase.query)
			require.NoError(t, err)

			assert.Equal(t, testCase.expected, names(page.Parameters))
			assert.Empty(t, page.NextToken)
		})
	}
}

func TestMemoryStorePagination(t *testing.T) {
	s := NewMemoryStoreFromMap(map[string]string{
		"/p/a": "1",
		"/p/b": "2",
		"/p/c": "3",
	})
	s.SetPageSize(2)

	page, err := s.GetParametersByPath(context.Background(), PathQuery{Path: "/p/", Recursive: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"/p/a", "/p/b"}, names(page.Parameters))
	require.NotEmpty(t, page.NextToken)

	page, err = s.GetParametersByPath(context.Background(), PathQuery{Path: "/p/", Recursive: true, NextToken: page.NextToken})
	require.NoError(t, err)
	assert.Equal(t, []string{"/p/c"}, names(page.Parameters))
	assert.Empty(t, page.NextToken)

	_, err = s.GetParametersByPath(context.Background(), PathQuery{Path: "/p/", NextToken: "bogus"})
	assert.Error(t, err)
}

func TestNewMemoryStoreFromFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "params.yaml")

	err := os.WriteFile(file, []byte(`
sample:
  numberOne: ValueOne
  nested:
    port: 5432
    enabled: true
`), 0o600)
	require.NoError(t, err)

	s, err := NewMemoryStoreFromFile(file)
	require.NoError(t, err)

	page, err := s.GetParametersByPath(context.Background(), PathQuery{Path: "/sample/", Recursive: true})
	require.NoError(t, err)

	values := map[string]string{}
	for _, p := range page.Parameters {
		values[p.Name] = p.Value
	}

	assert.Equal(t, map[string]string{
		"/sample/numberOne":      "ValueOne",
		"/sample/nested/port":    "5432",
		"/sample/nested/enabled": "true",
	}, values)

	_, err = NewMemoryStoreFromFile(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestNullStore(t *testing.T) {
	s := NewNullStore()

	_, err := s.GetParameter(context.Background(), "/k", true)
	assert.Error(t, err)
	assert.False(t, errors.Is(err, ErrParameterNotFound))

	_, err = s.GetParametersByPath(context.Background(), PathQuery{Path: "/"})
	assert.Error(t, err)
}
