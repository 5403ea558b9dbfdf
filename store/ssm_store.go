package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/service/ssm"
	"github.com/aws/aws-sdk-go/service/ssm/ssmiface"
)

// SSMStore implements the Store interface for reading configurations from
// SSM Parameter Store
type SSMStore struct {
	svc ssmiface.SSMAPI
}

// NewSSMStore creates a new SSMStore
func NewSSMStore(numRetries int) (*SSMStore, error) {
	ssmSession, region, err := getSession(numRetries)
	if err != nil {
		return nil, err
	}

	svc := ssm.New(ssmSession, &aws.Config{
		MaxRetries: aws.Int(numRetries),
		Region:     region,
	})

	return NewSSMStoreWithClient(svc), nil
}

// NewSSMStoreWithClient creates a SSMStore on top of an existing client.
func NewSSMStoreWithClient(svc ssmiface.SSMAPI) *SSMStore {
	return &SSMStore{
		svc: svc,
	}
}

// GetParametersByPath reads a single page of parameters under query.Path.
// Callers follow Page.NextToken to read the remaining pages.
func (s *SSMStore) GetParametersByPath(ctx context.Context, query PathQuery) (Page, error) {
	getParametersByPathInput := &ssm.GetParametersByPathInput{
		Path:           aws.String(query.Path),
		Recursive:      aws.Bool(query.Recursive),
		WithDecryption: aws.Bool(query.WithDecryption),
	}

	if query.NextToken != "" {
		getParametersByPathInput.NextToken = aws.String(query.NextToken)
	}

	resp, err := s.svc.GetParametersByPathWithContext(ctx, getParametersByPathInput)
	if err != nil {
		return Page{}, translateError(err)
	}

	page := Page{
		Parameters: make([]Parameter, 0, len(resp.Parameters)),
		NextToken:  aws.StringValue(resp.NextToken),
	}

	for _, param := range resp.Parameters {
		if param == nil || param.Name == nil {
			return Page{}, fmt.Errorf("malformed response for path %s: parameter without name", query.Path)
		}

		page.Parameters = append(page.Parameters, parameterToValue(param))
	}

	return page, nil
}

// GetParameter reads the latest version of exactly one parameter.
func (s *SSMStore) GetParameter(ctx context.Context, name string, withDecryption bool) (Parameter, error) {
	getParameterInput := &ssm.GetParameterInput{
		Name:           aws.String(name),
		WithDecryption: aws.Bool(withDecryption),
	}

	resp, err := s.svc.GetParameterWithContext(ctx, getParameterInput)
	if err != nil {
		return Parameter{}, translateError(err)
	}

	if resp.Parameter == nil || resp.Parameter.Name == nil {
		return Parameter{}, fmt.Errorf("malformed response for parameter %s", name)
	}

	return parameterToValue(resp.Parameter), nil
}

// translateError maps the SSM not-found code onto ErrParameterNotFound and
// leaves every other error untouched.
func translateError(err error) error {
	var awsErr awserr.Error
	if errors.As(err, &awsErr) && awsErr.Code() == ssm.ErrCodeParameterNotFound {
		return fmt.Errorf("%w: %s", ErrParameterNotFound, awsErr.Message())
	}

	return err
}

func parameterToValue(p *ssm.Parameter) Parameter {
	return Parameter{
		Name:             aws.StringValue(p.Name),
		Type:             ParameterType(aws.StringValue(p.Type)),
		Value:            aws.StringValue(p.Value),
		Version:          aws.Int64Value(p.Version),
		LastModifiedDate: aws.TimeValue(p.LastModifiedDate),
		ARN:              aws.StringValue(p.ARN),
	}
}

// Check the interfaces are satisfied
var (
	_ Store = &SSMStore{}
)
