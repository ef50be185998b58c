package system

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/shirou/gopsutil/v3/mem"
)

// InitResourceLimits raises the open-file limit so batches that write many
// extracted region files do not run out of descriptors (macOS/Linux).
func InitResourceLimits() {
	var rLimit syscall.Rlimit
	err := syscall.Getrlimit(syscall.RLIMIT_NOFILE, &rLimit)
	if err != nil {
		slog.Warn("could not read open-file limit", "error", err)
		return
	}

	rLimit.Cur = 2048
	if rLimit.Cur > rLimit.Max {
		rLimit.Cur = rLimit.Max
	}

	err = syscall.Setrlimit(syscall.RLIMIT_NOFILE, &rLimit)
	if err != nil {
		slog.Warn("could not raise open-file limit", "error", err)
	} else {
		slog.Debug("open-file limit raised", "limit", rLimit.Cur)
	}
}

// SuggestWorkers picks a page-worker count: one per CPU, capped so the
// estimated per-page working set fits in available memory. perPageBytes of 0
// uses a 256 MiB estimate (a 300 DPI A4 page plus pipeline intermediates).
func SuggestWorkers(perPageBytes uint64) int {
	workers := runtime.NumCPU()

	if perPageBytes == 0 {
		perPageBytes = 256 << 20
	}

	vm, err := mem.VirtualMemory()
	if err != nil {
		slog.Debug("memory probe failed, using CPU count", "error", err)
		return workers
	}

	byMem := int(vm.Available / perPageBytes)
	if byMem < 1 {
		byMem = 1
	}
	if byMem < workers {
		workers = byMem
	}
	return workers
}

// FindLatestPDF returns the most recently modified PDF in dir.
func FindLatestPDF(dir string) (string, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}

	var latestFile string
	var latestTime time.Time

	for _, f := range files {
		if !f.IsDir() && strings.HasSuffix(strings.ToLower(f.Name()), ".pdf") {
			info, err := f.Info()
			if err != nil {
				continue
			}
			if info.ModTime().After(latestTime) {
				latestTime = info.ModTime()
				latestFile = filepath.Join(dir, f.Name())
			}
		}
	}

	if latestFile == "" {
		return "", fmt.Errorf("no PDF files found in %s", dir)
	}

	return latestFile, nil
}
