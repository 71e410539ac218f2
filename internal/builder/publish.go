package builder

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/brogergvhs/isbnrange/internal/rangetable"
	"github.com/brogergvhs/isbnrange/internal/util"

	"github.com/gofrs/flock"
)

// LockPath is the lock file guarding the artifact at path.
func LockPath(path string) string {
	return path + ".lock"
}

// Publish writes the table to path while holding an exclusive lock on
// LockPath(path). The artifact is replaced by rename, so readers see either
// the old or the new table.
func Publish(path string, t *rangetable.Table) error {
	data, err := rangetable.Marshal(t)
	if err != nil {
		return stageErr(StageWrite, err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return stageErr(StageWrite, fmt.Errorf("create directory: %w", err))
	}

	lock := flock.New(LockPath(path))
	ok, err := lock.TryLock()
	if err != nil {
		return stageErr(StageWrite, fmt.Errorf("acquire lock: %w", err))
	}
	if !ok {
		return stageErr(StageWrite, ErrLocked)
	}
	defer func() {
		_ = lock.Unlock()
	}()

	if err := util.WriteFileAtomic(path, data, 0644); err != nil {
		return stageErr(StageWrite, err)
	}

	return nil
}
