// Package environ builds process environments from cached parameters.
package environ

import (
	"context"
	"fmt"
	"strings"

	"github.com/manju-lilly/regintel-processbatch/store"
)

// Source lists parameters under a prefix. *cache.ParameterCache satisfies it.
type Source interface {
	List(ctx context.Context, prefix ...string) ([]store.Parameter, error)
}

// Environ is a slice of strings representing the environment, in the form
// "key=value".
type Environ []string

// StoreMissingKeyError is returned in strict mode when an environment
// variable holding the strict value has no matching parameter.
type StoreMissingKeyError struct {
	Key           string
	ValueExpected string
}

func (e StoreMissingKeyError) Error() string {
	return fmt.Sprintf("parameter store is missing key %s, present in environment with value %s", e.Key, e.ValueExpected)
}

// ExpectedKeyUnnormalizedError is returned in strict mode when an
// environment variable holding the strict value is not upper case, so it
// could never match a parameter.
type ExpectedKeyUnnormalizedError struct {
	Key           string
	ValueExpected string
}

func (e ExpectedKeyUnnormalizedError) Error() string {
	return fmt.Sprintf("environment variable %s with value %s is not upper case and cannot be filled", e.Key, e.ValueExpected)
}

// Unset an environment variable by key
func (e *Environ) Unset(key string) {
	for i := range *e {
		if strings.HasPrefix((*e)[i], key+"=") {
			(*e)[i] = (*e)[len(*e)-1]
			*e = (*e)[:len(*e)-1]

			break
		}
	}
}

// IsSet returns whether or not a key is currently set in the environment
func (e *Environ) IsSet(key string) bool {
	for i := range *e {
		if strings.HasPrefix((*e)[i], key+"=") {
			return true
		}
	}

	return false
}

// Set adds an environment variable, replacing any existing ones of the same key
func (e *Environ) Set(key, val string) {
	e.Unset(key)
	*e = append(*e, key+"="+val)
}

// Map squashes the list-like environment to a key->value map.
// Later entries win and malformed entries are dropped.
func (e *Environ) Map() map[string]string {
	m := map[string]string{}

	for _, kv := range *e {
		parts := strings.SplitN(kv, "=", 2) //nolint:gomnd
		if len(parts) != 2 {                //nolint:gomnd
			continue
		}

		m[parts[0]] = parts[1]
	}

	return m
}

func fromMap(m map[string]string) Environ {
	e := make([]string, 0, len(m))

	for k, v := range m {
		e = append(e, k+"="+v)
	}

	return Environ(e)
}

// configKeyToEnvVarName turns a parameter name relative to its prefix into
// an environment variable name: /db/user-name becomes DB_USER_NAME.
func configKeyToEnvVarName(k string) string {
	k = strings.TrimPrefix(k, "/")
	k = strings.ToUpper(k)
	k = strings.ReplaceAll(k, "/", "_")
	k = strings.ReplaceAll(k, "-", "_")
	k = strings.ReplaceAll(k, ".", "_")

	return k
}

type envVar struct {
	key, value string
}

// load lists the parameters under prefixPath as environment variables, in
// parameter name order.
func load(ctx context.Context, src Source, prefixPath string) ([]envVar, error) {
	params, err := src.List(ctx, prefixPath)
	if err != nil {
		return nil, err
	}

	prefix := strings.TrimSuffix(prefixPath, "/") + "/"
	vars := make([]envVar, 0, len(params))

	for _, p := range params {
		vars = append(vars, envVar{key: configKeyToEnvVarName(p.LocalKey(prefix)), value: p.Value})
	}

	return vars, nil
}

// Load loads environment variables from the parameters under prefixPath.
// Every variable overwritten, including one set by an earlier parameter of
// the same prefix, is appended to collisions when it is not nil.
func (e *Environ) Load(ctx context.Context, src Source, prefixPath string, collisions *[]string) error {
	vars, err := load(ctx, src, prefixPath)
	if err != nil {
		return err
	}

	for _, v := range vars {
		if e.IsSet(v.key) && collisions != nil {
			*collisions = append(*collisions, v.key)
		}

		e.Set(v.key, v.value)
	}

	return nil
}

// LoadStrict fills only the environment variables currently set to
// valueExpected, failing if any of them has no parameter under prefixPaths.
// With pristine, variables not filled from parameters are dropped.
func (e *Environ) LoadStrict(ctx context.Context, src Source, valueExpected string, pristine bool, prefixPaths ...string) error {
	params := map[string]string{}

	for _, prefixPath := range prefixPaths {
		vars, err := load(ctx, src, prefixPath)
		if err != nil {
			return err
		}

		for _, v := range vars {
			params[v.key] = v.value
		}
	}

	filled := map[string]string{}

	for key, value := range e.Map() {
		if value != valueExpected {
			continue
		}

		if key != strings.ToUpper(key) {
			return ExpectedKeyUnnormalizedError{Key: key, ValueExpected: valueExpected}
		}

		paramValue, ok := params[key]
		if !ok {
			return StoreMissingKeyError{Key: key, ValueExpected: valueExpected}
		}

		filled[key] = paramValue
	}

	if pristine {
		*e = fromMap(filled)
		return nil
	}

	for k, v := range filled {
		e.Set(k, v)
	}

	return nil
}
