package config

import (
	"fmt"
	"log"
	"os"

	"github.com/BurntSushi/toml"
)

// ProviderConfig holds the connection details for one LLM provider.
type ProviderConfig struct {
	APIKey  string `toml:"api_key,omitempty"`
	BaseURL string `toml:"base_url,omitempty"`
	Model   string `toml:"model,omitempty"`
}

// UserConfig is the on-disk shape of ~/.sabi/config.toml.
type UserConfig struct {
	Provider            string                    `toml:"provider"`
	DefaultSystemPrompt string                    `toml:"default_system_prompt,omitempty"`
	Providers           map[string]ProviderConfig `toml:"providers"`
	DangerousPatterns   []string                  `toml:"dangerous_patterns,omitempty"`
	InteractivePatterns []string                  `toml:"interactive_patterns,omitempty"`
}

// Config is the runtime configuration sabi operates with. It is always
// populated (either from ~/.sabi/config.toml or from built-in defaults) so
// the core never has to special-case a missing config file.
type Config struct {
	Provider            string
	DefaultSystemPrompt string
	Providers           map[string]ProviderConfig
	DangerousPatterns   []string
	InteractivePatterns []string
}

var Debug = false
var DebugLog *log.Logger

// CheckDebug reports whether debug logging was requested via SABI_DEBUG.
func CheckDebug() bool {
	v := os.Getenv("SABI_DEBUG")
	return v == "true" || v == "1"
}

// InitDebugLog opens ~/.sabi/debug.log in append mode and installs it as
// DebugLog, gated by Debug. Mirrors the teacher's InitDebugLog exactly: a
// plain stdlib *log.Logger, no third-party logging library.
func InitDebugLog() {
	if !CheckDebug() {
		return
	}
	Debug = true

	if err := EnsureDir(RootDir()); err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not create %s: %v\n", RootDir(), err)
		return
	}

	f, err := os.OpenFile(DebugLogPath(), os.O_RDWR|os.O_CREATE|os.O_APPEND, 0600)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not open debug log: %v\n", err)
		return
	}

	DebugLog = log.New(f, "", log.Ldate|log.Ltime|log.Lmicroseconds|log.Lshortfile)
	DebugLog.Printf("=== sabi debug logging started ===")
}

// Load reads ~/.sabi/config.toml, falling back to built-in defaults (see
// defaults.go) for anything the file omits or if the file does not exist.
// A missing config file is not an error: onboarding is out of scope
// (spec.md §1), so the core must run unconfigured.
func Load() (*Config, error) {
	cfg := &Config{
		Provider:            DefaultProvider,
		DefaultSystemPrompt: DefaultSystemPromptText,
		Providers:           defaultProviderConfigs(),
		DangerousPatterns:   append([]string(nil), DefaultDangerousPatterns...),
		InteractivePatterns: append([]string(nil), DefaultInteractivePatterns...),
	}

	path := ConfigFilePath()
	if !FileExists(path) {
		return cfg, nil
	}

	var user UserConfig
	if _, err := toml.DecodeFile(path, &user); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if user.Provider != "" {
		cfg.Provider = user.Provider
	}
	if user.DefaultSystemPrompt != "" {
		cfg.DefaultSystemPrompt = user.DefaultSystemPrompt
	}
	for id, pc := range user.Providers {
		cfg.Providers[id] = pc
	}
	if len(user.DangerousPatterns) > 0 {
		cfg.DangerousPatterns = user.DangerousPatterns
	}
	if len(user.InteractivePatterns) > 0 {
		cfg.InteractivePatterns = user.InteractivePatterns
	}

	return cfg, nil
}

// Save writes cfg back to ~/.sabi/config.toml.
func Save(cfg *Config) error {
	if err := EnsureDir(RootDir()); err != nil {
		return fmt.Errorf("failed to create %s: %w", RootDir(), err)
	}

	user := UserConfig{
		Provider:            cfg.Provider,
		DefaultSystemPrompt: cfg.DefaultSystemPrompt,
		Providers:           cfg.Providers,
		DangerousPatterns:   cfg.DangerousPatterns,
		InteractivePatterns: cfg.InteractivePatterns,
	}

	f, err := os.OpenFile(ConfigFilePath(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to open config for writing: %w", err)
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(user)
}

// ProviderConfigFor returns the configured settings for a provider id,
// falling back to an empty ProviderConfig if unset.
func (c *Config) ProviderConfigFor(id string) ProviderConfig {
	if pc, ok := c.Providers[id]; ok {
		return pc
	}
	return ProviderConfig{}
}
