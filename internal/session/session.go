package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/go-ps"

	"github.com/julianstephens/daycard/internal/constants"
	"github.com/julianstephens/daycard/internal/logger"
)

var findProcessFunc = ps.FindProcess

var ErrMalformed = errors.New("session lockfile is malformed")

// Holder describes the process named in a lockfile.
type Holder struct {
	PID     int
	Actor   string
	Started time.Time
}

func (h Holder) String() string {
	return fmt.Sprintf("%s (pid %d, since %s)", h.Actor, h.PID, h.Started.Format(time.RFC3339))
}

// Lock marks a writing daycard session in a config directory. Writes are
// last-write-wins; the lock only lets a second session warn its admin.
type Lock struct {
	path string
	self Holder
}

func Path(dir string) string {
	return filepath.Join(dir, constants.SessionLockfileName)
}

// Active returns the holder of the lock in dir when that process is still a
// running daycard binary other than the caller.
func Active(dir string) (Holder, bool, error) {
	h, err := read(Path(dir))
	if err != nil {
		if os.IsNotExist(err) {
			return Holder{}, false, nil
		}
		return Holder{}, false, err
	}
	if h.PID == os.Getpid() {
		return Holder{}, false, nil
	}

	proc, err := findProcessFunc(h.PID)
	if err != nil || proc == nil {
		return Holder{}, false, nil
	}
	if !strings.HasPrefix(proc.Executable(), constants.AppName) {
		return Holder{}, false, nil
	}
	return h, true, nil
}

// Acquire writes a lockfile for the current process. If another live
// session holds it the previous holder is returned alongside the new lock.
func Acquire(dir, actor string) (*Lock, *Holder, error) {
	other, held, err := Active(dir)
	if err != nil && !errors.Is(err, ErrMalformed) {
		return nil, nil, err
	}
	if errors.Is(err, ErrMalformed) {
		logger.Warn("Replacing malformed session lockfile", "path", Path(dir))
	}

	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, nil, fmt.Errorf("failed to create config directory: %w", err)
	}
	self := Holder{PID: os.Getpid(), Actor: actor, Started: time.Now().UTC().Truncate(time.Second)}
	line := fmt.Sprintf("%d|%s|%s\n", self.PID, self.Actor, self.Started.Format(time.RFC3339))
	if err := os.WriteFile(Path(dir), []byte(line), 0600); err != nil {
		return nil, nil, fmt.Errorf("failed to write session lockfile: %w", err)
	}

	lock := &Lock{path: Path(dir), self: self}
	if held {
		return lock, &other, nil
	}
	return lock, nil, nil
}

// Release removes the lockfile if it still names this process.
func (l *Lock) Release() error {
	if l == nil {
		return nil
	}
	h, err := read(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if h.PID != l.self.PID {
		return nil
	}
	return os.Remove(l.path)
}

func read(path string) (Holder, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Holder{}, err
	}
	parts := strings.Split(strings.TrimSpace(string(content)), "|")
	if len(parts) != 3 {
		return Holder{}, ErrMalformed
	}
	pid, err := strconv.Atoi(parts[0])
	if err != nil || pid <= 0 {
		return Holder{}, fmt.Errorf("%w: invalid process ID", ErrMalformed)
	}
	started, err := time.Parse(time.RFC3339, parts[2])
	if err != nil {
		return Holder{}, fmt.Errorf("%w: invalid start time", ErrMalformed)
	}
	return Holder{PID: pid, Actor: parts[1], Started: started}, nil
}
