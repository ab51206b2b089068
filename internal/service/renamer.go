package service

import (
	"context"
	iofs "io/fs"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/omegaatt36/batchren/internal/domain"
	"github.com/omegaatt36/batchren/internal/port"
)

// RenamerService is the filesystem rename sink. New names exclude the
// extension, which is carried over from the existing file.
type RenamerService struct {
	fs port.FileSystem
}

func NewRenamerService(fs port.FileSystem) *RenamerService {
	return &RenamerService{fs: fs}
}

// Rename moves the file at id to newName within the same directory. It
// refuses names that would leave the directory and any existing target,
// including the file's own current path.
func (s *RenamerService) Rename(ctx context.Context, id domain.Identity, newName string) error {
	if err := validateName(newName); err != nil {
		return err
	}

	oldPath := string(id)
	newPath := filepath.Join(filepath.Dir(oldPath), newName+filepath.Ext(oldPath))

	// Rename replaces an existing target on POSIX, so only a confirmed
	// missing target lets it through.
	_, err := s.fs.Stat(newPath)
	switch {
	case err == nil:
		return errors.Errorf("%w: %q already exists", domain.ErrNameTaken, filepath.Base(newPath))
	case !errors.Is(err, iofs.ErrNotExist):
		return errors.Errorf("checking %q: %w", filepath.Base(newPath), err)
	}

	if err := s.fs.Rename(oldPath, newPath); err != nil {
		return errors.Errorf("renaming %q: %w", filepath.Base(oldPath), err)
	}

	zerolog.Ctx(ctx).Trace().Str("from", oldPath).Str("to", newPath).Msg("file moved")
	return nil
}

func validateName(name string) error {
	switch {
	case strings.TrimSpace(name) == "":
		return errors.Errorf("%w: new name is empty", domain.ErrInvalidName)
	case name == "." || name == "..":
		return errors.Errorf("%w: %q is reserved", domain.ErrInvalidName, name)
	case strings.ContainsAny(name, `/\`) || strings.ContainsRune(name, filepath.Separator):
		return errors.Errorf("%w: %q contains a path separator", domain.ErrInvalidName, name)
	case strings.ContainsRune(name, 0):
		return errors.Errorf("%w: %q contains a NUL byte", domain.ErrInvalidName, name)
	}
	return nil
}
