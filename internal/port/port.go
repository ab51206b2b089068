package port

import (
	"context"
	"io/fs"
	"os"

	"github.com/omegaatt36/batchren/internal/domain"
)

//go:generate mockgen -source=port.go -destination=../mock/mock_port.go -package=mock

// FileSystem abstracts file system operations for testability.
type FileSystem interface {
	Stat(path string) (os.FileInfo, error)
	Rename(oldpath, newpath string) error
	DirFS(root string) fs.FS
}

// PatternCompiler turns a user pattern into a Replacer, rejecting invalid syntax.
type PatternCompiler interface {
	Compile(pattern string) (domain.Replacer, error)
}

// SelectionProvider supplies the live selection. It is read again before
// every plan.
type SelectionProvider interface {
	Selection(ctx context.Context) ([]domain.Item, error)
}

// RenameSink commits a single rename in the backing store.
type RenameSink interface {
	Rename(ctx context.Context, id domain.Identity, newName string) error
}

// Confirmer asks the user to approve renaming count items.
type Confirmer interface {
	Confirm(ctx context.Context, count int) (bool, error)
}

// Planner computes rename plans from the current selection.
type Planner interface {
	Plan(ctx context.Context, spec domain.RenameSpec) (domain.Plan, error)
}

// Executor applies a confirmed plan.
type Executor interface {
	Execute(ctx context.Context, plan domain.Plan) []domain.Outcome
}
