package cache

import (
	"context"
	"os"
	"path/filepath"

	"aquadesk/storage"
)

// fileSnapshots keeps one JSON file per snapshot key inside a data
// directory.
type fileSnapshots struct {
	dir string
}

func NewFileSnapshots(dir string) (storage.ISnapshotStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &fileSnapshots{dir: dir}, nil
}

func (f *fileSnapshots) path(key string) string {
	return filepath.Join(f.dir, key+".json")
}

func (f *fileSnapshots) Load(_ context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(f.path(key))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (f *fileSnapshots) Save(_ context.Context, key string, data []byte) error {
	tmp := f.path(key) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, f.path(key))
}

func (f *fileSnapshots) Close() {}
