// Package s3loader reads translation catalogs from S3-compatible object
// storage into a repository.
//
// Objects follow the directory-loading convention: "locales/en.json" feeds
// the "en" locale, "locales/de/common.yaml" feeds "de". JSON and YAML are
// supported; other extensions are skipped.
//
//	loader, err := s3loader.New(s3loader.Config{
//	    Bucket:    "assets",
//	    AccessKey: os.Getenv("AWS_ACCESS_KEY_ID"),
//	    SecretKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
//	    Prefix:    "locales/",
//	})
//	if err != nil {
//	    return err
//	}
//	if err := loader.Load(ctx, repo); err != nil {
//	    return err
//	}
//
// LoadConfig fills the same Config from S3_* environment variables. MinIO
// and other S3-compatible services work through Endpoint and PathStyle.
package s3loader
