package core

import (
	"sort"
	"sync"
)

// StageInfo describes a stage for the registry.
type StageInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Prompt      string `json:"prompt"`
}

var (
	registrations   = make(map[string]StageInfo)
	registrationsMu sync.RWMutex
)

// Register records stage metadata under info.ID. Registering an ID twice
// replaces the earlier entry.
func Register(info StageInfo) {
	registrationsMu.Lock()
	defer registrationsMu.Unlock()
	registrations[info.ID] = info
}

// Registry returns metadata for all registered stages, sorted by ID.
func Registry() []StageInfo {
	registrationsMu.RLock()
	defer registrationsMu.RUnlock()
	infos := make([]StageInfo, 0, len(registrations))
	for _, info := range registrations {
		infos = append(infos, info)
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].ID < infos[j].ID })
	return infos
}

// GetStageByID returns stage metadata by ID, or nil.
func GetStageByID(id string) *StageInfo {
	registrationsMu.RLock()
	defer registrationsMu.RUnlock()
	if info, ok := registrations[id]; ok {
		return &info
	}
	return nil
}
