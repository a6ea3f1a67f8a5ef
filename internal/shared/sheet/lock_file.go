package sheet

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
)

// FileLocker 基于 flock 的跨进程锁，锁文件放在表文件旁边。
// 同一目录下的 serve 与 CLI 进程通过它串行化写入。
type FileLocker struct {
	root  string
	retry time.Duration
}

func NewFileLocker(root string) *FileLocker {
	return &FileLocker{root: root, retry: 20 * time.Millisecond}
}

func (l *FileLocker) lockPath(key string) string {
	p := filepath.Join(l.root, filepath.FromSlash(key))
	return filepath.Join(filepath.Dir(p), "."+filepath.Base(p)+".lock")
}

func (l *FileLocker) Lock(ctx context.Context, key string) (func(), error) {
	name := l.lockPath(key)
	if err := os.MkdirAll(filepath.Dir(name), 0o755); err != nil {
		return nil, fmt.Errorf("create lock dir for %s: %w", key, err)
	}

	fl := flock.New(name)
	ok, err := fl.TryLockContext(ctx, l.retry)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("lock %s not acquired", key)
	}
	return func() { fl.Unlock() }, nil
}
