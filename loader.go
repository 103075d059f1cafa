package i18n

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

// catalogFile is one translation file discovered by LoadDir, carrying its
// parsed tree once the decode pass has run.
type catalogFile struct {
	path   string
	locale string
	decode func([]byte, any) error
	tree   map[string]any
}

// LoadDir loads every translation catalog under fsys into the repository.
// The root must contain either {locale}.json / {locale}.yaml files or
// {locale}/ directories whose files all belong to that locale:
//
//	en.json
//	en/errors.yaml
//	de/common.yml
//
// Files are parsed concurrently and applied to the repository in walk order,
// so a later file merges over an earlier one the same way AddLocale does.
// Unknown extensions are skipped.
func LoadDir(ctx context.Context, fsys fs.FS, repo Repository) error {
	if repo == nil {
		return ErrNilRepository
	}

	var files []*catalogFile

	err := fs.WalkDir(fsys, ".", func(filePath string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		decode, ok := decoderFor(strings.ToLower(path.Ext(filePath)))
		if !ok {
			return nil
		}

		locale := localeForPath(filePath)
		if locale == "" {
			return fmt.Errorf("%w: cannot derive locale from %q", ErrInvalidFile, filePath)
		}

		files = append(files, &catalogFile{path: filePath, locale: locale, decode: decode})
		return nil
	})
	if err != nil {
		return err
	}

	eg, ctx := errgroup.WithContext(ctx)
	for _, file := range files {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := fs.ReadFile(fsys, file.path)
			if err != nil {
				return fmt.Errorf("reading %q: %w", file.path, err)
			}
			if err := file.decode(data, &file.tree); err != nil {
				return fmt.Errorf("%w: parsing %q: %s", ErrInvalidFile, file.path, err)
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	for _, file := range files {
		if err := repo.AddLocale(file.locale, file.tree); err != nil {
			return fmt.Errorf("applying %q: %w", file.path, err)
		}
	}
	return nil
}

// decoderFor maps a lowercase file extension to its unmarshal function.
func decoderFor(ext string) (func([]byte, any) error, bool) {
	switch ext {
	case ".json":
		return json.Unmarshal, true
	case ".yaml", ".yml":
		return yaml.Unmarshal, true
	}
	return nil, false
}

// localeForPath derives the locale a file belongs to: the top-level directory
// name, or the file stem for files at the root.
func localeForPath(filePath string) string {
	if dir, _, ok := strings.Cut(filePath, "/"); ok {
		return dir
	}
	return strings.TrimSuffix(path.Base(filePath), path.Ext(filePath))
}
