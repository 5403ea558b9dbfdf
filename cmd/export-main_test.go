package cmd

import (
	"bytes"
	"testing"

	"github.com/ghodss/yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//nolint:funlen
func TestExporters(t *testing.T) {
	params := map[string]string{
		"db/username": "admin",
		"db/password": `p"ss`,
		"api-key":     "secret",
	}

	cases := []struct {
		format   string
		expected string
	}{
		{
			format:   "json",
			expected: `{"api-key":"secret","db":{"password":"p\"ss","username":"admin"}}` + "\n",
		},
		{
			format: "csv",
			expected: `api-key,secret
db/password,"p""ss"
db/username,admin
`,
		},
		{
			format:   "tsv",
			expected: "api-key\tsecret\ndb/password\tp\"ss\ndb/username\tadmin\n",
		},
		{
			format: "dotenv",
			expected: `API_KEY="secret"
DB_PASSWORD="p\"ss"
DB_USERNAME="admin"
`,
		},
		{
			format: "tfvars",
			expected: `api-key = "secret"
db_password = "p\"ss"
db_username = "admin"
`,
		},
		{
			format: "tfenvvars",
			expected: `TF_VAR_api_key="secret"
TF_VAR_db_password="p\"ss"
TF_VAR_db_username="admin"
`,
		},
	}

	for _, testCase := range cases {
		testCase := testCase
		t.Run(testCase.format, func(t *testing.T) {
			var buf bytes.Buffer

			export, ok := exporters[testCase.format]
			require.True(t, ok)

			require.NoError(t, export(params, &buf))

			assert.Equal(t, testCase.expected, buf.String())
		})
	}
}

func TestExportAsYaml(t *testing.T) {
	var buf bytes.Buffer

	err := exportAsYaml(map[string]string{
		"db/username": "admin",
		"api-key":     "secret",
	}, &buf)
	require.NoError(t, err)

	var decoded map[string]interface{}

	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))

	assert.Equal(t, map[string]interface{}{
		"api-key": "secret",
		"db": map[string]interface{}{
			"username": "admin",
		},
	}, decoded)
}
