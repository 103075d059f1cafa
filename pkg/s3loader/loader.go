package s3loader

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"path"
	"slices"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/i18n"
)

// objectAPI is the S3 surface the loader depends on; *s3.Client satisfies it.
type objectAPI interface {
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// Loader reads translation catalogs from an S3 bucket. Object naming follows
// the same convention as directory loading: "en.json" feeds the "en" locale,
// and files nested under a directory feed the directory's locale.
type Loader struct {
	api    objectAPI
	bucket string
	prefix string
}

// New creates a Loader with its own S3 client.
func New(cfg Config) (*Loader, error) {
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	opts := []func(*s3.Options){
		func(o *s3.Options) {
			o.Region = cfg.Region
			o.Credentials = credentials.NewStaticCredentialsProvider(
				cfg.AccessKey,
				cfg.SecretKey,
				"",
			)
		},
	}

	if cfg.Endpoint != "" {
		opts = append(opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = cfg.PathStyle
		})
	}

	return &Loader{
		api:    s3.New(s3.Options{}, opts...),
		bucket: cfg.Bucket,
		prefix: cfg.Prefix,
	}, nil
}

// NewWithClient creates a Loader around an existing client.
func NewWithClient(api objectAPI, bucket, prefix string) (*Loader, error) {
	if api == nil {
		return nil, ErrNilClient
	}
	if bucket == "" {
		return nil, fmt.Errorf("%w: bucket is required", ErrInvalidConfig)
	}
	return &Loader{api: api, bucket: bucket, prefix: prefix}, nil
}

// Fetch lists the catalog objects under the configured prefix, decodes each,
// and returns the flattened catalogs keyed by locale. Objects feeding the
// same locale are merged in listing order; objects without a catalog
// extension are skipped.
func (l *Loader) Fetch(ctx context.Context) (map[string]map[string]any, error) {
	keys, err := l.listKeys(ctx)
	if err != nil {
		return nil, err
	}

	catalogs := make(map[string]map[string]any)
	for _, key := range keys {
		decode := decoderFor(path.Ext(key))
		if decode == nil {
			continue
		}

		locale := localeForKey(strings.TrimPrefix(strings.TrimPrefix(key, l.prefix), "/"))
		if locale == "" {
			return nil, fmt.Errorf("%w: cannot derive locale from %q", ErrInvalidObject, key)
		}

		tree, err := l.fetch(ctx, key, decode)
		if err != nil {
			return nil, err
		}

		flat := i18n.Flatten(tree)
		if catalogs[locale] == nil {
			catalogs[locale] = make(map[string]any, len(flat))
		}
		maps.Copy(catalogs[locale], flat)
	}
	return catalogs, nil
}

// Load fetches the catalogs and merges each into repo via AddLocale.
func (l *Loader) Load(ctx context.Context, repo i18n.Repository) error {
	if repo == nil {
		return i18n.ErrNilRepository
	}

	catalogs, err := l.Fetch(ctx)
	if err != nil {
		return err
	}

	for _, locale := range slices.Sorted(maps.Keys(catalogs)) {
		if err := repo.AddLocale(locale, catalogs[locale]); err != nil {
			return fmt.Errorf("s3loader: applying %q: %w", locale, err)
		}
	}
	return nil
}

func (l *Loader) listKeys(ctx context.Context) ([]string, error) {
	var (
		keys  []string
		token *string
	)
	for {
		out, err := l.api.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
			Bucket:            aws.String(l.bucket),
			Prefix:            aws.String(l.prefix),
			ContinuationToken: token,
		})
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrListFailed, err)
		}

		for _, obj := range out.Contents {
			if obj.Key != nil {
				keys = append(keys, *obj.Key)
			}
		}

		if out.IsTruncated == nil || !*out.IsTruncated {
			return keys, nil
		}
		token = out.NextContinuationToken
	}
}

func (l *Loader) fetch(ctx context.Context, key string, decode func([]byte, any) error) (map[string]any, error) {
	out, err := l.api.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(l.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, wrapS3Error(err, key)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("s3loader: reading %q: %w", key, err)
	}

	tree := map[string]any{}
	if err := decode(data, &tree); err != nil {
		return nil, fmt.Errorf("%w: parsing %q: %s", ErrInvalidObject, key, err)
	}
	return tree, nil
}

// localeForKey derives the locale from an object key relative to the prefix:
// the leading directory when nested, the file stem otherwise.
func localeForKey(rest string) string {
	if dir, _, ok := strings.Cut(rest, "/"); ok {
		return dir
	}
	return strings.TrimSuffix(rest, path.Ext(rest))
}

func decoderFor(ext string) func([]byte, any) error {
	switch strings.ToLower(ext) {
	case ".json":
		return json.Unmarshal
	case ".yaml", ".yml":
		return yaml.Unmarshal
	default:
		return nil
	}
}

// wrapS3Error maps S3 failures to sentinel errors. The original error is
// formatted with %v so callers match sentinels with errors.Is instead of
// reaching for AWS types.
func wrapS3Error(err error, key string) error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound":
			return fmt.Errorf("%w: %q: %v", ErrObjectNotFound, key, err)
		case "AccessDenied", "Forbidden":
			return fmt.Errorf("%w: %q: %v", ErrAccessDenied, key, err)
		}
	}

	var notFound *types.NoSuchKey
	if errors.As(err, &notFound) {
		return fmt.Errorf("%w: %q: %v", ErrObjectNotFound, key, err)
	}

	return fmt.Errorf("%w: %q: %v", ErrFetchFailed, key, err)
}
