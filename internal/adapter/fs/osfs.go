package fs

import (
	iofs "io/fs"
	"os"

	"gitlab.com/tozd/go/errors"

	"github.com/omegaatt36/batchren/internal/domain"
)

// OSFileSystem implements port.FileSystem using the real OS filesystem.
type OSFileSystem struct{}

// Stat errors match both domain.ErrInvalidPath and the underlying cause,
// e.g. fs.ErrNotExist.
func (f *OSFileSystem) Stat(path string) (os.FileInfo, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.Prefix(err, domain.ErrInvalidPath)
	}
	return info, nil
}

func (f *OSFileSystem) Rename(oldpath, newpath string) error {
	return os.Rename(oldpath, newpath)
}

func (f *OSFileSystem) DirFS(root string) iofs.FS {
	return os.DirFS(root)
}
