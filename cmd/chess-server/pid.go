// FILE: cmd/chess-server/pid.go
package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"syscall"

	"github.com/rs/zerolog/log"
)

// pidFile is the server's PID file, held open for the life of the process
type pidFile struct {
	path   string
	file   *os.File
	locked bool
}

// acquirePIDFile writes the current PID to path. With lock set the file is
// flocked and a live owner of an existing file is an error; stale files left
// by dead processes are reclaimed.
func acquirePIDFile(path string, lock bool) (*pidFile, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if errors.Is(err, os.ErrExist) {
		if lock {
			if err := checkOwner(path); err != nil {
				return nil, err
			}
		}
		// Not truncated yet, a running owner may still hold the lock
		file, err = os.OpenFile(path, os.O_WRONLY, 0o644)
	}
	if err != nil {
		return nil, fmt.Errorf("cannot open PID file: %w", err)
	}

	p := &pidFile{path: path, file: file}

	if lock {
		if err := syscall.Flock(int(file.Fd()), syscall.LOCK_EX|syscall.LOCK_NB); err != nil {
			file.Close()
			if errors.Is(err, syscall.EWOULDBLOCK) {
				return nil, fmt.Errorf("cannot acquire lock on %s: another instance is running", path)
			}
			return nil, fmt.Errorf("lock failed: %w", err)
		}
		p.locked = true
	}

	if err := p.write(os.Getpid()); err != nil {
		p.Release()
		return nil, err
	}
	return p, nil
}

func (p *pidFile) write(pid int) error {
	if err := p.file.Truncate(0); err != nil {
		return fmt.Errorf("cannot truncate PID file: %w", err)
	}
	if _, err := p.file.WriteAt([]byte(strconv.Itoa(pid)+"\n"), 0); err != nil {
		return fmt.Errorf("cannot write PID: %w", err)
	}
	if err := p.file.Sync(); err != nil {
		return fmt.Errorf("cannot sync PID file: %w", err)
	}
	return nil
}

// Release unlocks and removes the PID file
func (p *pidFile) Release() {
	if p.locked {
		syscall.Flock(int(p.file.Fd()), syscall.LOCK_UN)
	}
	p.file.Close()
	os.Remove(p.path)
}

// checkOwner fails when the PID recorded in path belongs to a live process
func checkOwner(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("cannot read existing PID file: %w", err)
	}

	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || pid <= 0 {
		log.Warn().Str("path", path).Str("content", string(data)).Msg("reclaiming corrupted PID file")
		return nil
	}

	// FindProcess never fails on Unix, signal 0 probes for existence
	proc, _ := os.FindProcess(pid)
	if err := proc.Signal(syscall.Signal(0)); err != nil {
		if errors.Is(err, os.ErrProcessDone) || errors.Is(err, syscall.ESRCH) {
			log.Warn().Int("pid", pid).Msg("reclaiming stale PID file")
			return nil
		}
		return fmt.Errorf("process %d exists but cannot verify ownership: %v", pid, err)
	}

	return fmt.Errorf("server already running with pid %d", pid)
}
