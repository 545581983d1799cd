package services

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/yungbote/codemorph-backend/internal/platform/logger"
)

// Language pairs the wire key used in code_outputs with the display name fed
// into translation prompts. Order is the order translation calls are issued.
type Language struct {
	Key  string `yaml:"key" json:"key"`
	Name string `yaml:"name" json:"name"`
}

// AnalysisLanguageKey is the representative language the Analysis Pipeline
// scores. An absent key is treated as empty source, never an error.
const AnalysisLanguageKey = "python"

func DefaultLanguages() []Language {
	return []Language{
		{Key: "python", Name: "Python"},
		{Key: "javascript", Name: "JavaScript"},
		{Key: "java", Name: "Java"},
		{Key: "cpp", Name: "C++"},
		{Key: "csharp", Name: "C#"},
		{Key: "go", Name: "Go"},
		{Key: "rust", Name: "Rust"},
		{Key: "typescript", Name: "TypeScript"},
		{Key: "swift", Name: "Swift"},
		{Key: "kotlin", Name: "Kotlin"},
	}
}

// LoadLanguages reads an optional YAML override of the target-language table.
// Any problem with the file falls back to the built-in table.
func LoadLanguages(path string, log *logger.Logger) []Language {
	if strings.TrimSpace(path) == "" {
		return DefaultLanguages()
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if log != nil {
			log.Warn("Language table file unreadable, using built-in table", "path", path, "error", err)
		}
		return DefaultLanguages()
	}

	var loaded []Language
	if err := yaml.Unmarshal(raw, &loaded); err != nil {
		if log != nil {
			log.Warn("Language table file invalid, using built-in table", "path", path, "error", err)
		}
		return DefaultLanguages()
	}

	out := make([]Language, 0, len(loaded))
	for _, lang := range loaded {
		lang.Key = strings.TrimSpace(lang.Key)
		lang.Name = strings.TrimSpace(lang.Name)
		if lang.Key == "" || lang.Name == "" {
			continue
		}
		out = append(out, lang)
	}
	if len(out) == 0 {
		if log != nil {
			log.Warn("Language table file empty, using built-in table", "path", path)
		}
		return DefaultLanguages()
	}
	return out
}

func languageName(languages []Language, key string) string {
	for _, lang := range languages {
		if strings.EqualFold(lang.Key, key) {
			return lang.Name
		}
	}
	return key
}
