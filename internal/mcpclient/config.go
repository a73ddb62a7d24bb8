package mcpclient

import (
	"fmt"
	"os"
	"sort"

	"github.com/BurntSushi/toml"

	"github.com/Steff96/sabi-tui/internal/config"
)

// fileConfig is the on-disk shape of ~/.sabi/mcp.toml:
//
//	[servers.filesystem]
//	transport = "stdio"
//	command = "npx"
//	args = ["-y", "@modelcontextprotocol/server-filesystem", "/home"]
//
// Grounded on original_source/src/mcp.rs::McpConfig.
type fileConfig struct {
	Servers map[string]ServerConfig `toml:"servers"`
}

// LoadConfig reads ~/.sabi/mcp.toml, returning an empty server map if the
// file does not exist yet (grounded on
// original_source/src/mcp.rs::McpConfig::create_default_if_missing).
func LoadConfig() (map[string]ServerConfig, error) {
	path := config.McpConfigFilePath()
	if !config.FileExists(path) {
		return map[string]ServerConfig{}, nil
	}

	var fc fileConfig
	if _, err := toml.DecodeFile(path, &fc); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if fc.Servers == nil {
		fc.Servers = map[string]ServerConfig{}
	}
	for name, sc := range fc.Servers {
		if sc.Transport == "" {
			sc.Transport = TransportStdio
			fc.Servers[name] = sc
		}
	}
	return fc.Servers, nil
}

// SaveConfig writes servers back to ~/.sabi/mcp.toml.
func SaveConfig(servers map[string]ServerConfig) error {
	if err := config.EnsureDir(config.RootDir()); err != nil {
		return fmt.Errorf("failed to create %s: %w", config.RootDir(), err)
	}

	f, err := os.OpenFile(config.McpConfigFilePath(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to open mcp config for writing: %w", err)
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(fileConfig{Servers: servers})
}

// AddStdioServer registers a stdio server, grounded on
// original_source/src/mcp.rs::McpConfig::add_server.
func AddStdioServer(servers map[string]ServerConfig, name, command string, args []string) {
	servers[name] = ServerConfig{
		Transport: TransportStdio,
		Command:   command,
		Args:      args,
		Env:       map[string]string{},
	}
}

// AddHTTPServer registers an HTTP server, grounded on
// original_source/src/mcp.rs::McpConfig::add_http_server.
func AddHTTPServer(servers map[string]ServerConfig, name, url string, headers map[string]string) {
	if headers == nil {
		headers = map[string]string{}
	}
	servers[name] = ServerConfig{Transport: TransportHTTP, URL: url, Headers: headers}
}

// RemoveServer deletes a server entry, reporting whether it existed.
func RemoveServer(servers map[string]ServerConfig, name string) bool {
	if _, ok := servers[name]; !ok {
		return false
	}
	delete(servers, name)
	return true
}

// SetEnv sets an environment variable on a stdio server, grounded on
// original_source/src/mcp.rs::McpConfig::set_env.
func SetEnv(servers map[string]ServerConfig, name, key, value string) error {
	sc, ok := servers[name]
	if !ok {
		return fmt.Errorf("unknown mcp server %q", name)
	}
	if sc.Env == nil {
		sc.Env = map[string]string{}
	}
	sc.Env[key] = value
	servers[name] = sc
	return nil
}

// RemoveEnv deletes an environment variable from a stdio server, grounded
// on original_source/src/mcp.rs::McpConfig::remove_env.
func RemoveEnv(servers map[string]ServerConfig, name, key string) error {
	sc, ok := servers[name]
	if !ok {
		return fmt.Errorf("unknown mcp server %q", name)
	}
	delete(sc.Env, key)
	servers[name] = sc
	return nil
}

// SetHeader sets an HTTP header on an http server, grounded on
// original_source/src/mcp.rs::McpConfig::set_header.
func SetHeader(servers map[string]ServerConfig, name, key, value string) error {
	sc, ok := servers[name]
	if !ok {
		return fmt.Errorf("unknown mcp server %q", name)
	}
	if sc.Headers == nil {
		sc.Headers = map[string]string{}
	}
	sc.Headers[key] = value
	servers[name] = sc
	return nil
}

// ListServers returns server names sorted for deterministic display.
func ListServers(servers map[string]ServerConfig) []string {
	names := make([]string, 0, len(servers))
	for name := range servers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
