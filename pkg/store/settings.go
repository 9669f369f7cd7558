package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"

	"golang.org/x/exp/maps"
)

// Settings are free-form key/value pairs kept alongside the package
// database.
func (l *Local) Setting(ctx context.Context, key string) (string, bool, error) {
	settings, err := l.readSettings()
	if err != nil {
		return "", false, err
	}
	val, ok := settings[key]
	return val, ok, nil
}

func (l *Local) SetSetting(ctx context.Context, key, value string) error {
	settings, err := l.readSettings()
	if err != nil {
		return err
	}
	settings[key] = value
	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return err
	}
	if err := l.rootfs.MkdirAll(filepath.Dir(settingsFile), 0755); err != nil {
		return err
	}
	return l.rootfs.WriteFile(settingsFile, data, 0644)
}

// SettingKeys returns every configured setting name, sorted.
func (l *Local) SettingKeys(ctx context.Context) ([]string, error) {
	settings, err := l.readSettings()
	if err != nil {
		return nil, err
	}
	keys := maps.Keys(settings)
	sort.Strings(keys)
	return keys, nil
}

func (l *Local) readSettings() (map[string]string, error) {
	settings := map[string]string{}
	data, err := l.rootfs.ReadFile(settingsFile)
	if err != nil {
		if os.IsNotExist(err) {
			return settings, nil
		}
		return nil, err
	}
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, err
	}
	return settings, nil
}
