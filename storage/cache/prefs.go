package cache

import (
	"context"
	"encoding/json"
	"sync"

	"aquadesk/pkg/logger"
	"aquadesk/pkg/models"
	"aquadesk/storage"
)

type prefStore struct {
	mu    sync.RWMutex
	prefs models.Preferences
	snaps storage.ISnapshotStorage
	log   logger.ILogger
}

func NewPreferenceStorage(ctx context.Context, snaps storage.ISnapshotStorage, log logger.ILogger) storage.IPreferenceStorage {
	p := &prefStore{snaps: snaps, log: log}

	data, err := snaps.Load(ctx, storage.SnapshotKeyPreferences)
	if err != nil || len(data) == 0 {
		if err != nil {
			log.Warning("failed to load preferences, using defaults", logger.Error(err))
		}
		return p
	}
	if err := json.Unmarshal(data, &p.prefs); err != nil {
		log.Warning("corrupt preferences snapshot, using defaults", logger.Error(err))
		p.prefs = models.Preferences{}
	}
	return p
}

func (p *prefStore) Preferences() models.Preferences {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.prefs
}

func (p *prefStore) SetDarkMode(ctx context.Context, on bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.prefs.DarkMode = on
	data, err := json.Marshal(p.prefs)
	if err != nil {
		return err
	}
	return p.snaps.Save(ctx, storage.SnapshotKeyPreferences, data)
}
