// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

// Package vault bootstraps the Obsidian vault the planner works against:
// the folder tree, per-folder readmes, the main index note, minimal Obsidian
// configuration, and the default JSON resource files the engine and its
// sibling modules expect to find. Existing files are never overwritten.
package vault

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ResourceDir is the subfolder holding the JSON resources (matches the
// planner store's layout).
const ResourceDir = "06-RECURSOS"

// DefaultStructure is the expected vault folder tree.
var DefaultStructure = []string{
	"00-META",
	"01-LEITURAS",
	"02-ANOTAÇÕES",
	"03-REVISÃO",
	"04-MAPAS MENTAIS",
	ResourceDir,
}

var readmeDescriptions = map[string]string{
	"00-META":         "Metadados, índices e organização do sistema.",
	"01-LEITURAS":     "Obras por autor e progresso de leitura.",
	"02-ANOTAÇÕES":    "Anotações do usuário durante estudo/leitura.",
	"03-REVISÃO":      "Materiais de revisão gerados pelo planner.",
	"04-MAPAS MENTAIS": "Mapas mentais e estruturas visuais.",
	ResourceDir:       "Recursos de apoio, caches e registros.",
}

// defaultResources are the JSON files guaranteed to exist with safe default
// shapes before the engine runs.
var defaultResources = map[string]any{
	"agenda.json":                     map[string]any{},
	"preferences.json":                map[string]any{},
	"pomodoro_stats.json":             map[string]any{},
	"flashcards.json":                 map[string]any{},
	"quizzes.json":                    map[string]any{},
	"review_stats.json":               map[string]any{},
	"review_questions.json":           map[string]any{},
	"review_chapter_difficulty.json":  map[string]any{},
	"review_runtime.json":             map[string]any{"question_interval_minutes": 10},
	"preferences_learning_history.json": []any{},
}

// Bootstrap ensures the vault directory and its expected structure exist and
// returns the absolute vault path.
func Bootstrap(vaultPath string) (string, error) {
	trimmed := strings.TrimSpace(vaultPath)
	if trimmed == "" {
		return "", fmt.Errorf("vault path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err == nil {
			trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
		}
	}
	abs, err := filepath.Abs(trimmed)
	if err != nil {
		return "", fmt.Errorf("resolve vault path: %w", err)
	}

	if err := os.MkdirAll(abs, 0o755); err != nil {
		return "", fmt.Errorf("create vault dir: %w", err)
	}
	for _, folder := range DefaultStructure {
		dir := filepath.Join(abs, folder)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("create %s: %w", folder, err)
		}
		if err := ensureReadme(dir, folder); err != nil {
			return "", err
		}
	}

	if err := ensureObsidianConfig(abs); err != nil {
		return "", err
	}
	if err := ensureIndexNote(abs); err != nil {
		return "", err
	}
	if err := ensureResources(abs); err != nil {
		return "", err
	}
	return abs, nil
}

func ensureReadme(dir, folder string) error {
	path := filepath.Join(dir, "README.md")
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	desc, ok := readmeDescriptions[folder]
	if !ok {
		desc = "Diretório de trabalho do vault."
	}
	content := fmt.Sprintf("# %s\n\n%s\n\n*Gerenciado por arc-planner*\n", folder, desc)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write %s readme: %w", folder, err)
	}
	return nil
}

func ensureObsidianConfig(vaultPath string) error {
	dir := filepath.Join(vaultPath, ".obsidian")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create .obsidian: %w", err)
	}

	corePlugins := map[string]any{
		"corePlugins": map[string]bool{
			"file-explorer": true,
			"global-search": true,
			"graph":         true,
			"backlink":      true,
			"templates":     true,
		},
	}
	templates := map[string]any{
		"folder":     ResourceDir + "/templates",
		"dateFormat": "YYYY-MM-DD",
	}
	if err := ensureJSON(filepath.Join(dir, "core-plugins.json"), corePlugins); err != nil {
		return err
	}
	return ensureJSON(filepath.Join(dir, "templates.json"), templates)
}

func ensureIndexNote(vaultPath string) error {
	path := filepath.Join(vaultPath, "Índice Principal.md")
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	content := strings.Join([]string{
		"# 🧠 Cérebro Digital",
		"",
		"Bem-vindo ao seu vault gerenciado pelo **arc-planner**.",
		"",
		"## Estrutura",
		"- **00-META**: Metadados e organização",
		"- **01-LEITURAS**: Obras por autor e sessões de leitura",
		"- **02-ANOTAÇÕES**: Notas do usuário",
		"- **03-REVISÃO**: Planos de revisão espaçada",
		"- **04-MAPAS MENTAIS**: Materiais visuais",
		"- **06-RECURSOS**: Arquivos de suporte e registros",
		"",
	}, "\n")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write index note: %w", err)
	}
	return nil
}

func ensureResources(vaultPath string) error {
	dir := filepath.Join(vaultPath, ResourceDir)
	for name, payload := range defaultResources {
		if err := ensureJSON(filepath.Join(dir, name), payload); err != nil {
			return err
		}
	}
	return nil
}

func ensureJSON(path string, payload any) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}
