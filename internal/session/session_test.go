package session

import (
	"errors"
	"os"
	"testing"

	"github.com/mitchellh/go-ps"
)

type fakeProcess struct {
	pid int
	exe string
}

func (p fakeProcess) Pid() int           { return p.pid }
func (p fakeProcess) PPid() int          { return 1 }
func (p fakeProcess) Executable() string { return p.exe }

func withProcesses(t *testing.T, procs map[int]string) {
	t.Helper()
	orig := findProcessFunc
	findProcessFunc = func(pid int) (ps.Process, error) {
		if exe, ok := procs[pid]; ok {
			return fakeProcess{pid: pid, exe: exe}, nil
		}
		return nil, nil
	}
	t.Cleanup(func() { findProcessFunc = orig })
}

func writeLock(t *testing.T, dir, content string) {
	t.Helper()
	if err := os.WriteFile(Path(dir), []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
}

func TestActive(t *testing.T) {
	tests := []struct {
		name    string
		content string
		procs   map[int]string
		held    bool
		wantErr error
	}{
		{"no lockfile", "", nil, false, nil},
		{"live daycard", "4242|ada|2024-12-01T10:00:00Z", map[int]string{4242: "daycard"}, true, nil},
		{"dead process", "4242|ada|2024-12-01T10:00:00Z", nil, false, nil},
		{"pid reused by another binary", "4242|ada|2024-12-01T10:00:00Z", map[int]string{4242: "bash"}, false, nil},
		{"malformed", "garbage", nil, false, ErrMalformed},
		{"bad pid", "x|ada|2024-12-01T10:00:00Z", nil, false, ErrMalformed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			if tt.content != "" {
				writeLock(t, dir, tt.content)
			}
			withProcesses(t, tt.procs)

			h, held, err := Active(dir)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Active() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Active() error = %v", err)
			}
			if held != tt.held {
				t.Errorf("Active() held = %v, want %v", held, tt.held)
			}
			if held && (h.PID != 4242 || h.Actor != "ada") {
				t.Errorf("Active() holder = %+v", h)
			}
		})
	}
}

func TestAcquireAndRelease(t *testing.T) {
	dir := t.TempDir()
	withProcesses(t, nil)

	lock, other, err := Acquire(dir, "grace")
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	if other != nil {
		t.Errorf("Acquire() reported holder %v on an empty dir", other)
	}

	// The caller's own lock is never reported as another session.
	if _, held, _ := Active(dir); held {
		t.Error("Active() reported the current process")
	}

	if err := lock.Release(); err != nil {
		t.Fatalf("Release() error = %v", err)
	}
	if _, err := os.Stat(Path(dir)); !os.IsNotExist(err) {
		t.Errorf("lockfile still present after Release(): %v", err)
	}
}

func TestAcquireReportsOtherSession(t *testing.T) {
	dir := t.TempDir()
	writeLock(t, dir, "4242|ada|2024-12-01T10:00:00Z")
	withProcesses(t, map[int]string{4242: "daycard"})

	lock, other, err := Acquire(dir, "grace")
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	defer lock.Release()
	if other == nil || other.Actor != "ada" {
		t.Errorf("Acquire() other = %v, want ada", other)
	}
}

func TestAcquireReplacesMalformed(t *testing.T) {
	dir := t.TempDir()
	writeLock(t, dir, "nonsense")
	withProcesses(t, nil)

	lock, _, err := Acquire(dir, "grace")
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	if err := lock.Release(); err != nil {
		t.Errorf("Release() error = %v", err)
	}
}

func TestReleaseKeepsForeignLock(t *testing.T) {
	dir := t.TempDir()
	withProcesses(t, nil)
	lock, _, err := Acquire(dir, "grace")
	if err != nil {
		t.Fatal(err)
	}
	writeLock(t, dir, "4242|ada|2024-12-01T10:00:00Z")

	if err := lock.Release(); err != nil {
		t.Fatalf("Release() error = %v", err)
	}
	if _, err := os.Stat(Path(dir)); err != nil {
		t.Error("Release() removed a lockfile owned by another process")
	}
}
