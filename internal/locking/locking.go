// Package locking serializes writers on a destination path. Two concurrent
// sprocket invocations pointed at the same output would interleave writes;
// an flock on a sibling lock file turns that into a fast, explicit failure.
package locking

import (
	"fmt"
	"os"

	"github.com/gofrs/flock"

	"sprocket/internal/services"
)

// OutputLock holds an advisory lock for one destination path.
type OutputLock struct {
	lockPath string
	lock     *flock.Flock
}

// AcquireOutput locks the destination path for writing. A held lock fails
// immediately rather than waiting; the caller is expected to surface the
// conflict, not queue behind it.
func AcquireOutput(outputPath string) (*OutputLock, error) {
	if outputPath == "" {
		return nil, services.Wrap(services.ErrValidation, "locking", "acquire", "empty output path", nil)
	}
	lockPath := outputPath + ".lock"
	lock := flock.New(lockPath)

	ok, err := lock.TryLock()
	if err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "locking", "acquire", fmt.Sprintf("lock %s", lockPath), err)
	}
	if !ok {
		return nil, services.Wrap(services.ErrValidation, "locking", "acquire",
			fmt.Sprintf("output %s is being written by another process", outputPath), nil)
	}
	return &OutputLock{lockPath: lockPath, lock: lock}, nil
}

// Path reports the lock file backing this lock.
func (l *OutputLock) Path() string {
	if l == nil {
		return ""
	}
	return l.lockPath
}

// Release unlocks and removes the lock file. Safe to call on a nil lock.
func (l *OutputLock) Release() error {
	if l == nil || l.lock == nil {
		return nil
	}
	if err := l.lock.Unlock(); err != nil {
		return fmt.Errorf("release lock %s: %w", l.lockPath, err)
	}
	// Best effort: another waiter may have re-created the file already.
	_ = os.Remove(l.lockPath)
	return nil
}
