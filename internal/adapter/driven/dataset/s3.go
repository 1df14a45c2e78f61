package dataset

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/diillson/arrivals-dashboard-go/internal/domain/entity"
	"github.com/diillson/arrivals-dashboard-go/internal/domain/repository"
	sharedtypes "github.com/diillson/arrivals-dashboard-go/internal/shared/types"
)

// S3Repository reads the CSV dataset from an S3 object.
type S3Repository struct {
	bucket  string
	key     string
	profile string
	region  string
	columns sharedtypes.Columns
}

// NewS3Repository creates a repository for an s3://bucket/key location.
func NewS3Repository(location, profile, region string, columns sharedtypes.Columns) (repository.DatasetRepository, error) {
	bucket, key, err := parseS3Location(location)
	if err != nil {
		return nil, err
	}
	return &S3Repository{
		bucket:  bucket,
		key:     key,
		profile: profile,
		region:  region,
		columns: columns,
	}, nil
}

// Source returns the s3:// location.
func (r *S3Repository) Source() string {
	return fmt.Sprintf("s3://%s/%s", r.bucket, r.key)
}

// LoadArrivals downloads the object and parses it as CSV.
func (r *S3Repository) LoadArrivals(ctx context.Context) ([]entity.Arrival, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if r.profile != "" {
		opts = append(opts, awsconfig.WithSharedConfigProfile(r.profile))
	}
	if r.region != "" {
		opts = append(opts, awsconfig.WithRegion(r.region))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("error loading AWS configuration: %w", err)
	}

	client := s3.NewFromConfig(cfg)
	out, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(r.key),
	})
	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			return nil, fmt.Errorf("%w: %s", sharedtypes.ErrDatasetNotFound, r.Source())
		}
		return nil, fmt.Errorf("error fetching %s: %w", r.Source(), err)
	}
	defer out.Body.Close()

	return ReadCSV(ctx, out.Body, r.columns)
}

func parseS3Location(location string) (string, string, error) {
	u, err := url.Parse(location)
	if err != nil {
		return "", "", fmt.Errorf("invalid S3 location %q: %w", location, err)
	}
	key := strings.TrimPrefix(u.Path, "/")
	if u.Scheme != "s3" || u.Host == "" || key == "" {
		return "", "", fmt.Errorf("%w: %q (expected s3://bucket/key)", sharedtypes.ErrUnsupportedSource, location)
	}
	return u.Host, key, nil
}
