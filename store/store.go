package store

import (
	"context"
	"errors"
	"strings"
	"time"
)

var (
	// ErrParameterNotFound is returned if the specified parameter is not found
	// in the parameter store.
	ErrParameterNotFound = errors.New("parameter not found")
)

// ParameterType is the encoding of a parameter value.
type ParameterType string

const (
	TypeString       ParameterType = "String"
	TypeStringList   ParameterType = "StringList"
	TypeSecureString ParameterType = "SecureString"
)

// Parameter is a snapshot of one entry as retrieved from the store.
// StringList values are kept comma-encoded.
type Parameter struct {
	Name             string
	Type             ParameterType
	Value            string
	Version          int64
	LastModifiedDate time.Time
	ARN              string
}

// Secure reports whether the parameter is stored encrypted.
func (p Parameter) Secure() bool {
	return p.Type == TypeSecureString
}

// LocalKey returns the parameter name relative to prefix.
func (p Parameter) LocalKey(prefix string) string {
	return strings.TrimPrefix(p.Name, prefix)
}

// PathQuery requests one page of parameters under Path.
type PathQuery struct {
	Path           string
	Recursive      bool
	WithDecryption bool
	NextToken      string
}

// Page is one page of a path query. An empty NextToken means the listing is
// exhausted.
type Page struct {
	Parameters []Parameter
	NextToken  string
}

// Store is the read side of a hierarchical parameter store.
type Store interface {
	GetParametersByPath(ctx context.Context, query PathQuery) (Page, error)
	GetParameter(ctx context.Context, name string, withDecryption bool) (Parameter, error)
}
