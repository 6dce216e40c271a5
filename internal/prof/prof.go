// Package prof wires runtime/pprof into the qasmc commands.
package prof

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
)

// Options name the profile files; an empty path disables that profile.
type Options struct {
	CPUPath string
	MemPath string
}

// Session is an active profiling run started by Start.
type Session struct {
	opts    Options
	cpuFile *os.File
}

// Start begins CPU profiling when requested. A nil Session is returned
// when nothing is enabled, and Stop on it is a no-op.
func Start(opts Options) (*Session, error) {
	if opts.CPUPath == "" && opts.MemPath == "" {
		return nil, nil
	}
	s := &Session{opts: opts}
	if opts.CPUPath == "" {
		return s, nil
	}
	f, err := os.Create(opts.CPUPath)
	if err != nil {
		return nil, fmt.Errorf("cpu profile: %w", err)
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("cpu profile: %w", err)
	}
	s.cpuFile = f
	return s, nil
}

// Stop finishes the CPU profile and writes the heap profile.
func (s *Session) Stop() error {
	if s == nil {
		return nil
	}
	var errs []error
	if s.cpuFile != nil {
		pprof.StopCPUProfile()
		errs = append(errs, s.cpuFile.Close())
		s.cpuFile = nil
	}
	if s.opts.MemPath != "" {
		errs = append(errs, writeHeap(s.opts.MemPath))
	}
	return errors.Join(errs...)
}

func writeHeap(path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("heap profile: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
	}()
	// свежая статистика аллокаций
	runtime.GC()
	return pprof.WriteHeapProfile(f)
}
