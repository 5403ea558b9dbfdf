package store

import (
	"os"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
)

// getSession builds an AWS session from the shared config and the
// environment. The returned region is nil when neither defines one.
func getSession(numRetries int) (*session.Session, *string, error) {
	var region *string

	if r, ok := os.LookupEnv("AWS_REGION"); ok && r != "" {
		region = aws.String(r)
	}

	sess, err := session.NewSessionWithOptions(session.Options{
		Config: aws.Config{
			Region:     region,
			MaxRetries: aws.Int(numRetries),
		},
		SharedConfigState: session.SharedConfigEnable,
	})
	if err != nil {
		return nil, nil, err
	}

	if region == nil && sess.Config.Region != nil && *sess.Config.Region != "" {
		region = sess.Config.Region
	}

	return sess, region, nil
}
