// Package i18n provides the message catalogs for report and activity labels.
// Arabic is the product's primary language; English is carried for exports
// and tests. Catalogs are embedded so the binary needs no locale directory.
package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

const (
	LangAR = "ar"
	LangEN = "en"
)

//go:embed locales/*.json
var localeFiles embed.FS

type Manager struct {
	defaultLanguage string
	locales         map[string]map[string]string
	supported       []string
}

func NewManager(defaultLanguage string) (*Manager, error) {
	manager := &Manager{
		locales: map[string]map[string]string{},
	}

	entries, err := fs.ReadDir(localeFiles, "locales")
	if err != nil {
		return nil, fmt.Errorf("read embedded locales: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}

		language := strings.TrimSuffix(strings.ToLower(entry.Name()), filepath.Ext(entry.Name()))
		content, err := fs.ReadFile(localeFiles, "locales/"+entry.Name())
		if err != nil {
			return nil, fmt.Errorf("read locale %s: %w", language, err)
		}

		messages := map[string]string{}
		if err := json.Unmarshal(content, &messages); err != nil {
			return nil, fmt.Errorf("parse locale %s: %w", language, err)
		}
		if len(messages) == 0 {
			return nil, fmt.Errorf("locale %s is empty", language)
		}

		manager.locales[language] = messages
		manager.supported = append(manager.supported, language)
	}

	if _, ok := manager.locales[LangAR]; !ok {
		return nil, fmt.Errorf("required locale %q missing", LangAR)
	}
	if _, ok := manager.locales[LangEN]; !ok {
		return nil, fmt.Errorf("required locale %q missing", LangEN)
	}

	sort.Strings(manager.supported)
	manager.defaultLanguage = manager.NormalizeLanguage(defaultLanguage)
	return manager, nil
}

func (manager *Manager) DefaultLanguage() string {
	return manager.defaultLanguage
}

func (manager *Manager) SupportedLanguages() []string {
	result := make([]string, len(manager.supported))
	copy(result, manager.supported)
	return result
}

func (manager *Manager) NormalizeLanguage(raw string) string {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	if at := strings.IndexAny(normalized, "-_"); at > 0 {
		normalized = normalized[:at]
	}
	if manager.isSupported(normalized) {
		return normalized
	}
	if manager.defaultLanguage != "" {
		return manager.defaultLanguage
	}
	return LangAR
}

func (manager *Manager) Translate(language string, key string) string {
	targetLanguage := manager.NormalizeLanguage(language)
	if value, ok := manager.locales[targetLanguage][key]; ok && strings.TrimSpace(value) != "" {
		return value
	}
	if value, ok := manager.locales[manager.defaultLanguage][key]; ok && strings.TrimSpace(value) != "" {
		return value
	}
	return key
}

func (manager *Manager) Translatef(language string, key string, args ...any) string {
	return fmt.Sprintf(manager.Translate(language, key), args...)
}

func (manager *Manager) isSupported(language string) bool {
	if language == "" {
		return false
	}
	_, ok := manager.locales[language]
	return ok
}
