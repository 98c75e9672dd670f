package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogPipelineHooks writes pipeline events to a logger at debug level.
type LogPipelineHooks struct{ Logger *log.Logger }

// NewLogPipelineHooks returns pipeline hooks that log through l.
func NewLogPipelineHooks(l *log.Logger) *LogPipelineHooks { return &LogPipelineHooks{Logger: l} }

func (h *LogPipelineHooks) OnLayoutStart(_ context.Context, groups, nodes int) {
	h.Logger.Debug("layout started", "groups", groups, "nodes", nodes)
}

func (h *LogPipelineHooks) OnLayoutComplete(_ context.Context, edges int, d time.Duration, err error) {
	if err != nil {
		h.Logger.Debug("layout failed", "duration", d, "err", err)
		return
	}
	h.Logger.Debug("layout finished", "edges", edges, "duration", d)
}

func (h *LogPipelineHooks) OnRenderStart(_ context.Context, formats []string) {
	h.Logger.Debug("render started", "formats", formats)
}

func (h *LogPipelineHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	if err != nil {
		h.Logger.Debug("render failed", "formats", formats, "duration", d, "err", err)
		return
	}
	h.Logger.Debug("render finished", "formats", formats, "duration", d)
}

// LogCacheHooks writes cache events to a logger at debug level.
type LogCacheHooks struct{ Logger *log.Logger }

// NewLogCacheHooks returns cache hooks that log through l.
func NewLogCacheHooks(l *log.Logger) *LogCacheHooks { return &LogCacheHooks{Logger: l} }

func (h *LogCacheHooks) OnCacheHit(_ context.Context, keyType string) {
	h.Logger.Debug("cache hit", "type", keyType)
}

func (h *LogCacheHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.Logger.Debug("cache miss", "type", keyType)
}

func (h *LogCacheHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.Logger.Debug("cache set", "type", keyType, "bytes", size)
}

// LogHTTPHooks writes one line per API response.
type LogHTTPHooks struct{ Logger *log.Logger }

// NewLogHTTPHooks returns HTTP hooks that log through l.
func NewLogHTTPHooks(l *log.Logger) *LogHTTPHooks { return &LogHTTPHooks{Logger: l} }

func (h *LogHTTPHooks) OnRequest(_ context.Context, method, path string) {
	h.Logger.Debug("request", "method", method, "path", path)
}

func (h *LogHTTPHooks) OnResponse(_ context.Context, method, path string, status int, d time.Duration) {
	h.Logger.Info("response", "method", method, "path", path, "status", status, "duration", d)
}

func (h *LogHTTPHooks) OnError(_ context.Context, method, path string, err error) {
	h.Logger.Warn("request failed", "method", method, "path", path, "err", err)
}

var (
	_ PipelineHooks = (*LogPipelineHooks)(nil)
	_ CacheHooks    = (*LogCacheHooks)(nil)
	_ HTTPHooks     = (*LogHTTPHooks)(nil)
)
