package store

import (
	"context"
	"errors"
)

type NullStore struct{}

func NewNullStore() *NullStore {
	return &NullStore{}
}

func (s *NullStore) GetParametersByPath(ctx context.Context, query PathQuery) (Page, error) {
	return Page{}, errors.New("not implemented for Null store")
}

func (s *NullStore) GetParameter(ctx context.Context, name string, withDecryption bool) (Parameter, error) {
	return Parameter{}, errors.New("not implemented for Null store")
}

// Check the interfaces are satisfied
var (
	_ Store = &NullStore{}
)
