package mcpclient

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Steff96/sabi-tui/internal/config"
)

// Manager supervises multiple independent MCP servers identified by name
// (spec.md §4.5). The process table is guarded by a single mutex that call
// holds for the whole request/response exchange, so calls are serialized
// across all servers: calls to different servers do not overlap. Grounded on hkdb-otui/mcp/process.go's ProcessManager for the
// mutex-guarded map and "kill everything on shutdown" idiom; the wire
// mechanics themselves come from original_source/src/mcp.rs (see jsonrpc.go).
type Manager struct {
	mu        sync.Mutex
	config    map[string]ServerConfig
	processes map[string]*process
	timeout   time.Duration
}

// NewManager builds a Manager from a frozen snapshot of the server
// configuration. The subclient never re-reads the file at runtime.
func NewManager(cfg map[string]ServerConfig) *Manager {
	snapshot := make(map[string]ServerConfig, len(cfg))
	for k, v := range cfg {
		snapshot[k] = v
	}
	return &Manager{
		config:    snapshot,
		processes: make(map[string]*process),
		timeout:   DefaultTimeout,
	}
}

// ServerNames returns the configured server names, sorted for determinism.
func (m *Manager) ServerNames() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	names := make([]string, 0, len(m.config))
	for name := range m.config {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsRunning reports whether a stdio server currently has a live child
// process. HTTP servers are never "running" in this sense.
func (m *Manager) IsRunning(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.processes[name]
	return ok
}

// StartServer spawns the named stdio server and performs the initialize
// handshake (spec.md §4.5 items 1-2). HTTP servers are a no-op: there is no
// process and no initialize handshake for that transport.
func (m *Manager) StartServer(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.startServerLocked(name)
}

func (m *Manager) startServerLocked(name string) error {
	cfg, ok := m.config[name]
	if !ok {
		return fmt.Errorf("unknown mcp server %q", name)
	}
	if cfg.Transport == TransportHTTP {
		return nil
	}

	p, err := startStdio(cfg)
	if err != nil {
		return fmt.Errorf("start %s: %w", name, err)
	}
	m.processes[name] = p

	if _, err := callStdio(p, m.timeout, "initialize", initializeParams()); err != nil {
		p.stop()
		delete(m.processes, name)
		return fmt.Errorf("initialize %s: %w", name, err)
	}
	if _, err := callStdio(p, m.timeout, "notifications/initialized", nil); err != nil {
		p.stop()
		delete(m.processes, name)
		return fmt.Errorf("notify initialized %s: %w", name, err)
	}
	return nil
}

// StartAll starts every configured stdio server, returning a per-server
// error map (nil entry = success). HTTP servers are skipped (spec.md §4.5
// "start_all").
func (m *Manager) StartAll() map[string]error {
	status := make(map[string]error)
	for _, name := range m.ServerNames() {
		status[name] = m.StartServer(name)
	}
	return status
}

// StopServer kills the named server's child process and removes its
// process-table entry.
func (m *Manager) StopServer(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopServerLocked(name)
}

func (m *Manager) stopServerLocked(name string) {
	if p, ok := m.processes[name]; ok {
		p.stop()
		delete(m.processes, name)
	}
}

// StopAll kills every running server from one goroutine per server, per the
// teacher's ProcessManager.Shutdown idiom; each StopServer takes the
// process-table mutex, so the kills themselves run one at a time. Called on
// subclient teardown.
func (m *Manager) StopAll() {
	m.mu.Lock()
	names := make([]string, 0, len(m.processes))
	for name := range m.processes {
		names = append(names, name)
	}
	m.mu.Unlock()

	var wg sync.WaitGroup
	for _, name := range names {
		wg.Add(1)
		go func(n string) {
			defer wg.Done()
			m.StopServer(n)
		}(name)
	}
	wg.Wait()
}

// restartServerLocked implements spec.md §4.5 item 6's stop->sleep
// 100ms->start sequence, grounded verbatim on
// original_source/src/mcp.rs::restart_server.
func (m *Manager) restartServerLocked(name string) error {
	m.stopServerLocked(name)
	time.Sleep(100 * time.Millisecond)
	return m.startServerLocked(name)
}

// call dispatches method/params to the named server, routing HTTP servers
// to callHTTP and stdio servers to callStdio while holding the process-table
// mutex for the whole exchange (spec.md §5 "Concurrency").
func (m *Manager) call(ctx context.Context, name, method string, params any) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cfg, ok := m.config[name]
	if !ok {
		return nil, fmt.Errorf("unknown mcp server %q", name)
	}
	if cfg.Transport == TransportHTTP {
		return callHTTP(ctx, cfg, m.timeout, method, params)
	}

	p, ok := m.processes[name]
	if !ok {
		return nil, fmt.Errorf("mcp server %q is not running", name)
	}
	return callStdio(p, m.timeout, method, params)
}

// callWithRetry implements spec.md §4.5 item 6 / §8 invariant 8: any error
// from call triggers at most one retry (stdio only) — stop, sleep, start,
// re-initialize, re-issue the same call once. The retry's own failure is
// final. Grounded on original_source/src/mcp.rs::call_with_retry.
func (m *Manager) callWithRetry(ctx context.Context, name, method string, params any) (any, error) {
	result, err := m.call(ctx, name, method, params)
	if err == nil {
		return result, nil
	}

	m.mu.Lock()
	cfg, ok := m.config[name]
	isHTTP := ok && cfg.Transport == TransportHTTP
	m.mu.Unlock()
	if isHTTP {
		return nil, err
	}

	m.mu.Lock()
	restartErr := m.restartServerLocked(name)
	m.mu.Unlock()
	if restartErr != nil {
		return nil, err // original failure, per spec.md §4.5 item 6
	}

	return m.call(ctx, name, method, params)
}

// ListTools calls tools/list on the named server (spec.md §4.5).
func (m *Manager) ListTools(ctx context.Context, name string) ([]Tool, error) {
	result, err := m.callWithRetry(ctx, name, "tools/list", nil)
	if err != nil {
		return nil, err
	}
	return decodeTools(result)
}

// ListAllTools returns every server's tool catalog, keyed by server name.
// Tool names are kept as each server reports them; core.BuildSystemPrompt
// renders them as "<server>.<tool>", grounded on
// hkdb-otui/mcp/aggregator.go's shortName+"."+tool.Name convention.
func (m *Manager) ListAllTools(ctx context.Context) map[string][]Tool {
	out := make(map[string][]Tool)
	for _, name := range m.ServerNames() {
		tools, err := m.ListTools(ctx, name)
		if err != nil {
			continue
		}
		out[name] = tools
	}
	return out
}

// CallTool calls tools/call on the named server with {name, arguments}
// params (spec.md §4.5), returning the result rendered as a string for
// re-injection into the conversation. Implements core.MCPCaller.
//
// traceID correlates a call with its at-most-one retry in the debug log; it
// is independent of the JSON-RPC request id in jsonrpc.go, which must stay
// a per-server monotonic counter (spec.md §8 invariant 8).
func (m *Manager) CallTool(ctx context.Context, server, name string, arguments map[string]any) (string, error) {
	traceID := uuid.NewString()
	if config.Debug {
		config.DebugLog.Printf("mcp[%s] call %s.%s %v", traceID, server, name, arguments)
	}

	params := map[string]any{"name": name, "arguments": arguments}
	result, err := m.callWithRetry(ctx, server, "tools/call", params)
	if err != nil {
		if config.Debug {
			config.DebugLog.Printf("mcp[%s] error: %v", traceID, err)
		}
		return "", err
	}
	data, err := json.Marshal(result)
	if err != nil {
		return "", fmt.Errorf("marshal tool result: %w", err)
	}
	return string(data), nil
}

func decodeTools(result any) ([]Tool, error) {
	data, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("marshal tools/list result: %w", err)
	}
	var wrapper struct {
		Tools []Tool `json:"tools"`
	}
	if err := json.Unmarshal(data, &wrapper); err != nil {
		return nil, fmt.Errorf("decode tools/list result: %w", err)
	}
	return wrapper.Tools, nil
}
