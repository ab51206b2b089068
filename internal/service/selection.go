package service

import (
	"context"
	iofs "io/fs"
	"path"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/omegaatt36/batchren/internal/domain"
	"github.com/omegaatt36/batchren/internal/port"
)

// DefaultGlob selects every file below the root.
const DefaultGlob = "**/*"

// SelectionService selects files under a root directory by glob. Only files
// with an extension count as items; an item's name is the file stem.
type SelectionService struct {
	fs    port.FileSystem
	root  string
	globs []string
}

func NewSelectionService(fs port.FileSystem, root string, globs ...string) *SelectionService {
	if len(globs) == 0 {
		globs = []string{DefaultGlob}
	}
	return &SelectionService{fs: fs, root: root, globs: globs}
}

// Selection walks the root on every call; results are never cached.
func (s *SelectionService) Selection(ctx context.Context) ([]domain.Item, error) {
	fsys := s.fs.DirFS(s.root)

	info, err := iofs.Stat(fsys, ".")
	if err != nil {
		return nil, errors.Errorf("%w: root %q: %w", domain.ErrInvalidPath, s.root, err)
	}
	if !info.IsDir() {
		return nil, errors.Errorf("%w: root %q is not a directory", domain.ErrInvalidPath, s.root)
	}

	seen := make(map[string]bool)
	var items []domain.Item
	for _, glob := range s.globs {
		if !doublestar.ValidatePattern(glob) {
			return nil, errors.Errorf("%w: %q", domain.ErrInvalidGlob, glob)
		}

		matches, err := doublestar.Glob(fsys, glob, doublestar.WithFilesOnly(), doublestar.WithFailOnIOErrors())
		if err != nil {
			return nil, errors.Errorf("%w: reading %q: %w", domain.ErrInvalidPath, s.root, err)
		}

		for _, rel := range matches {
			if seen[rel] {
				continue
			}
			seen[rel] = true

			base := path.Base(rel)
			ext := path.Ext(base)
			stem := strings.TrimSuffix(base, ext)
			if ext == "" || stem == "" {
				continue
			}

			items = append(items, domain.Item{
				Identity: domain.Identity(filepath.Join(s.root, filepath.FromSlash(rel))),
				Name:     stem,
			})
		}
	}

	domain.NaturalSort(items)
	zerolog.Ctx(ctx).Debug().Str("root", s.root).Strs("globs", s.globs).Int("items", len(items)).Msg("selection read")
	return items, nil
}

// Namespace scopes collision checks to files sharing a directory and extension.
func Namespace(e domain.PlanEntry) string {
	id := string(e.Identity)
	return filepath.Dir(id) + string(filepath.Separator) + strings.ToLower(filepath.Ext(id))
}

