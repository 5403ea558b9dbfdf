package store

import (
	"context"
	"fmt"
	"os"
	"path"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/ghodss/yaml"
	"github.com/jeremywohl/flatten"
	"github.com/spf13/cast"
)

const (
	// defaultPageSize mirrors the SSM maximum for GetParametersByPath.
	defaultPageSize = 10

	memoryARNPrefix = "arn:aws:ssm:local:000000000000:parameter"
)

// MemoryStore is a Store kept entirely in process. Values are never
// encrypted, so WithDecryption has no effect.
type MemoryStore struct {
	m        map[string]Parameter
	pageSize int

	mu sync.RWMutex
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		m:        make(map[string]Parameter),
		pageSize: defaultPageSize,
	}
}

func NewMemoryStoreFromMap(m map[string]string) *MemoryStore {
	s := NewMemoryStore()

	for k, v := range m {
		s.Put(k, TypeString, v)
	}

	return s
}

// NewMemoryStoreFromFile seeds a MemoryStore from a YAML or JSON document.
// Nested keys become path segments, so {"db": {"user": "admin"}} is stored
// as /db/user.
func NewMemoryStoreFromFile(filename string) (*MemoryStore, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read parameters file: %w", err)
	}

	var doc map[string]interface{}

	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode parameters file as JSON or YAML: %w", err)
	}

	flat, err := flatten.Flatten(doc, "", flatten.PathStyle)
	if err != nil {
		return nil, fmt.Errorf("failed to flatten parameters file: %w", err)
	}

	m := make(map[string]string, len(flat))

	for k, v := range flat {
		s, err := cast.ToStringE(v)
		if err != nil {
			return nil, fmt.Errorf("unsupported value for %s: %w", k, err)
		}

		m[k] = s
	}

	return NewMemoryStoreFromMap(m), nil
}

// SetPageSize changes how many parameters a single path query returns.
func (s *MemoryStore) SetPageSize(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if n > 0 {
		s.pageSize = n
	}
}

// Put stores a parameter under name, bumping its version.
func (s *MemoryStore) Put(name string, typ ParameterType, value string) Parameter {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := path.Join("/", name)

	p := Parameter{
		Name:             key,
		Type:             typ,
		Value:            value,
		Version:          s.m[key].Version + 1,
		LastModifiedDate: time.Now().UTC(),
		ARN:              memoryARNPrefix + key,
	}

	s.m[key] = p

	return p
}

// Remove drops a parameter from the store.
func (s *MemoryStore) Remove(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.m, path.Join("/", name))
}

func (s *MemoryStore) GetParameter(ctx context.Context, name string, withDecryption bool) (Parameter, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if p, ok := s.m[name]; ok {
		return p, nil
	}

	return Parameter{}, fmt.Errorf("%w: %s", ErrParameterNotFound, name)
}

func (s *MemoryStore) GetParametersByPath(ctx context.Context, query PathQuery) (Page, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	prefixPath := path.Join("/", query.Path)
	if prefixPath != "/" {
		prefixPath += "/"
	}

	// sorted map range
	keys := make([]string, 0, len(s.m))
	for k := range s.m {
		if !strings.HasPrefix(k, prefixPath) {
			continue
		}

		if !query.Recursive && strings.Contains(k[len(prefixPath):], "/") {
			continue
		}

		keys = append(keys, k)
	}

	sort.Strings(keys)

	start := 0

	if query.NextToken != "" {
		var err error

		start, err = strconv.Atoi(query.NextToken)
		if err != nil || start < 0 || start > len(keys) {
			return Page{}, fmt.Errorf("invalid next token %q", query.NextToken)
		}
	}

	end := start + s.pageSize
	if end > len(keys) {
		end = len(keys)
	}

	page := Page{
		Parameters: make([]Parameter, 0, end-start),
	}

	for _, k := range keys[start:end] {
		page.Parameters = append(page.Parameters, s.m[k])
	}

	if end < len(keys) {
		page.NextToken = strconv.Itoa(end)
	}

	return page, nil
}

// Check the interfaces are satisfied
var (
	_ Store = &MemoryStore{}
)
