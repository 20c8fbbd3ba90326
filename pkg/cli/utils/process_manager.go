package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"syscall"
	"time"
)

const processInfoFile = "process_info"

// ProcessInfo describes a detached server started by `gemini-mcp run -d`.
type ProcessInfo struct {
	PID              int       `json:"pid"`
	Name             string    `json:"name"`
	Version          string    `json:"version"`
	Transport        string    `json:"transport"`
	Port             int       `json:"port,omitempty"`
	StartedAt        time.Time `json:"startedAt"`
	ServerConfigPath string    `json:"serverConfigPath,omitempty"`
	EnvFilePath      string    `json:"envFilePath,omitempty"`
}

type processes map[string]ProcessInfo

// ProcessManager persists the detached servers in a JSON file keyed by the
// server config path they were started with.
type ProcessManager struct {
	fileMux      sync.Mutex
	infoFilePath string
}

var (
	manager     *ProcessManager
	managerErr  error
	managerOnce sync.Once
)

// GetProcessManager returns the manager backed by the user cache dir.
func GetProcessManager() (*ProcessManager, error) {
	managerOnce.Do(func() {
		dir, err := GetCacheDir()
		if err != nil {
			managerErr = err
			return
		}
		manager = NewProcessManager(filepath.Join(dir, processInfoFile))
	})
	return manager, managerErr
}

func NewProcessManager(infoFilePath string) *ProcessManager {
	return &ProcessManager{infoFilePath: infoFilePath}
}

func (pm *ProcessManager) load() (processes, error) {
	bytes, err := os.ReadFile(pm.infoFilePath)
	if errors.Is(err, os.ErrNotExist) {
		return processes{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", pm.infoFilePath, err)
	}

	procs := processes{}
	if len(bytes) == 0 {
		return procs, nil
	}
	if err := json.Unmarshal(bytes, &procs); err != nil {
		return nil, fmt.Errorf("failed to deserialize the contents of %s: %w", pm.infoFilePath, err)
	}
	return procs, nil
}

func (pm *ProcessManager) store(procs processes) error {
	bytes, err := json.Marshal(procs)
	if err != nil {
		return fmt.Errorf("failed to serialize the processes map: %w", err)
	}
	if err := os.WriteFile(pm.infoFilePath, bytes, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", pm.infoFilePath, err)
	}
	return nil
}

func (pm *ProcessManager) GetProcess(key string) (ProcessInfo, error) {
	pm.fileMux.Lock()
	defer pm.fileMux.Unlock()

	procs, err := pm.load()
	if err != nil {
		return ProcessInfo{}, fmt.Errorf("unable to find gemini-mcp instance: %w", err)
	}

	info, ok := procs[key]
	if !ok {
		return ProcessInfo{}, fmt.Errorf("no gemini-mcp instance recorded for %s", key)
	}
	return info, nil
}

func (pm *ProcessManager) SaveProcess(key string, info ProcessInfo) error {
	pm.fileMux.Lock()
	defer pm.fileMux.Unlock()

	procs, err := pm.load()
	if err != nil {
		return fmt.Errorf("unable to save gemini-mcp instance: %w", err)
	}
	procs[key] = info
	return pm.store(procs)
}

func (pm *ProcessManager) DeleteProcess(key string) error {
	pm.fileMux.Lock()
	defer pm.fileMux.Unlock()

	procs, err := pm.load()
	if err != nil {
		return fmt.Errorf("unable to delete gemini-mcp instance: %w", err)
	}
	delete(procs, key)
	return pm.store(procs)
}

// ListProcesses returns every recorded instance, alive or not.
func (pm *ProcessManager) ListProcesses() (map[string]ProcessInfo, error) {
	pm.fileMux.Lock()
	defer pm.fileMux.Unlock()

	procs, err := pm.load()
	if err != nil {
		return nil, err
	}
	return procs, nil
}

// IsProcessAlive reports whether pid names a running process.
func IsProcessAlive(pid int) bool {
	if pid <= 0 {
		return false
	}
	proc, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	return proc.Signal(syscall.Signal(0)) == nil
}
