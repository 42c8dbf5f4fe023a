package dataset

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3Types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"github.com/diillson/sales-dashboard-go/internal/shared/types"
)

const s3Scheme = "s3://"

// objectGetter é a parte do cliente S3 usada para ler o dataset.
type objectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// Códigos que o S3 devolve quando o objeto não pode ser encontrado. Sem
// s3:ListBucket, uma chave inexistente chega como AccessDenied.
var notFoundCodes = map[string]bool{
	"NoSuchKey":    true,
	"NoSuchBucket": true,
	"NotFound":     true,
	"AccessDenied": true,
}

// s3Source lê o dataset de um objeto S3, com cache de clientes por perfil/região.
type s3Source struct {
	clientCache map[string]objectGetter
	mu          sync.Mutex
	newClient   func(ctx context.Context, profile, region string) (objectGetter, error)
}

func newS3Source() *s3Source {
	return &s3Source{
		clientCache: make(map[string]objectGetter),
		newClient:   newS3Client,
	}
}

func isS3URI(path string) bool {
	return strings.HasPrefix(strings.ToLower(path), s3Scheme)
}

// parseS3URI separa s3://bucket/key em bucket e key.
func parseS3URI(uri string) (bucket, key string, err error) {
	if !isS3URI(uri) {
		return "", "", fmt.Errorf("not an s3 URI: %s", uri)
	}
	rest := uri[len(s3Scheme):]
	parts := strings.SplitN(rest, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid s3 URI %q: expected s3://bucket/key", uri)
	}
	return parts[0], parts[1], nil
}

func (s *s3Source) getClient(ctx context.Context, profile, region string) (objectGetter, error) {
	cacheKey := fmt.Sprintf("%s-%s", profile, region)

	s.mu.Lock()
	defer s.mu.Unlock()

	if client, ok := s.clientCache[cacheKey]; ok {
		return client, nil
	}

	client, err := s.newClient(ctx, profile, region)
	if err != nil {
		return nil, err
	}
	s.clientCache[cacheKey] = client
	return client, nil
}

func newS3Client(ctx context.Context, profile, region string) (objectGetter, error) {
	var optFns []func(*config.LoadOptions) error
	if profile != "" {
		optFns = append(optFns, config.WithSharedConfigProfile(profile))
	}
	if region != "" {
		optFns = append(optFns, config.WithRegion(region))
	}

	cfg, err := config.LoadDefaultConfig(ctx, optFns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config for profile %s: %w", profile, err)
	}

	return s3.NewFromConfig(cfg), nil
}

func (s *s3Source) open(ctx context.Context, uri, profile, region string) (io.ReadCloser, error) {
	bucket, key, err := parseS3URI(uri)
	if err != nil {
		return nil, err
	}

	client, err := s.getClient(ctx, profile, region)
	if err != nil {
		return nil, err
	}

	out, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("%w: %s: %w", types.ErrFileNotFound, uri, err)
		}
		return nil, fmt.Errorf("error fetching dataset from %s: %w", uri, err)
	}
	return out.Body, nil
}

func isNotFound(err error) bool {
	var noKey *s3Types.NoSuchKey
	var noBucket *s3Types.NoSuchBucket
	if errors.As(err, &noKey) || errors.As(err, &noBucket) {
		return true
	}
	var apiErr smithy.APIError
	return errors.As(err, &apiErr) && notFoundCodes[apiErr.ErrorCode()]
}
