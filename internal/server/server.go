package server

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync/atomic"

	"github.com/tartampluch/go-chinacal/internal/cache"
	"github.com/tartampluch/go-chinacal/internal/config"
	"github.com/tartampluch/go-chinacal/internal/errs"
	"github.com/tartampluch/go-chinacal/internal/tools"
)

// feedItem stores the rendered holiday feed and its ETag for HTTP caching.
type feedItem struct {
	data []byte
	etag string
}

// QueryServer exposes the tool registry over HTTP and serves the holiday
// ICS feed.
type QueryServer struct {
	Port     string
	Registry *tools.Registry
	Cache    *cache.Cache

	// feed uses atomic.Pointer for lock-free reads: the ICS body is read
	// often and replaced only when datasets change.
	feed atomic.Pointer[feedItem]
}

// NewQueryServer creates a server bound to the registry.
func NewQueryServer(port string, registry *tools.Registry, resultCache *cache.Cache) *QueryServer {
	return &QueryServer{Port: port, Registry: registry, Cache: resultCache}
}

// UpdateFeed atomically replaces the served ICS body.
func (s *QueryServer) UpdateFeed(data []byte) {
	hash := sha256.Sum256(data)
	item := &feedItem{
		data: data,
		etag: fmt.Sprintf(config.FormatETag, hex.EncodeToString(hash[:])),
	}
	s.feed.Store(item)

	slog.Debug(config.MsgFeedUpdated,
		config.LogKeyComponent, config.CompServer,
		config.LogKeySizeBytes, len(data),
		config.LogKeyETag, item.etag,
	)
}

// Start runs the HTTP server and blocks until the context is cancelled.
func (s *QueryServer) Start(ctx context.Context) error {
	if s.Port == "" {
		return errors.New(config.ErrPortRequired)
	}

	mux := http.NewServeMux()
	mux.HandleFunc(config.RouteToolList, s.handleToolList)
	mux.HandleFunc(config.RouteToolCall, s.handleToolCall)
	mux.HandleFunc(config.RouteStats, s.handleStats)
	mux.HandleFunc(config.RouteFeed, s.handleFeed)

	srv := &http.Server{
		Addr:         config.LocalhostBindAddr + config.AddrSeparator + s.Port,
		Handler:      mux,
		ReadTimeout:  config.ServerReadTimeout,
		WriteTimeout: config.ServerWriteTimeout,
		IdleTimeout:  config.ServerIdleTimeout,
	}

	serverError := make(chan error, config.ChannelBufferSize)

	go func() {
		slog.Info(config.MsgServerListen,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyPort, s.Port,
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverError <- err
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info(config.MsgServerStop, config.LogKeyComponent, config.CompServer)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("%s: %w", config.ErrServerShutdown, err)
		}
		return nil

	case err := <-serverError:
		return fmt.Errorf("%s: %w", config.ErrServerStartup, err)
	}
}

// handleToolCall dispatches POST /v1/tools/{name}.
func (s *QueryServer) handleToolCall(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set(config.HeaderAllow, config.AllowedMethodsPost)
		http.Error(w, config.HTTPMsgMethodNotAll, http.StatusMethodNotAllowed)
		return
	}

	name := strings.TrimPrefix(r.URL.Path, config.RouteToolCall)
	if name == "" || strings.Contains(name, "/") {
		http.Error(w, config.HTTPMsgNotFound, http.StatusNotFound)
		return
	}

	args := map[string]any{}
	if r.Body != nil {
		body, err := io.ReadAll(r.Body)
		if err == nil && len(bytes.TrimSpace(body)) > 0 {
			if err := json.Unmarshal(body, &args); err != nil {
				s.writeError(w, errs.Validation(config.ErrArgsDecode, "body", string(body)))
				return
			}
		}
	}

	result, err := s.Registry.Execute(name, args)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}

// handleToolList serves GET /v1/tools.
func (s *QueryServer) handleToolList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set(config.HeaderAllow, config.AllowedMethodsGet)
		http.Error(w, config.HTTPMsgMethodNotAll, http.StatusMethodNotAllowed)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"tools": s.Registry.List()})
}

// handleStats serves GET /v1/stats with the result-cache counters.
func (s *QueryServer) handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set(config.HeaderAllow, config.AllowedMethodsGet)
		http.Error(w, config.HTTPMsgMethodNotAll, http.StatusMethodNotAllowed)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"cache": s.Cache.Stats()})
}

// handleFeed serves the ICS body with ETag-based HTTP caching.
func (s *QueryServer) handleFeed(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set(config.HeaderAllow, config.AllowedMethodsGet)
		http.Error(w, config.HTTPMsgMethodNotAll, http.StatusMethodNotAllowed)
		return
	}

	item := s.feed.Load()
	if item == nil {
		w.Header().Set(config.HeaderRetryAfter, config.RetryAfterSeconds)
		http.Error(w, config.HTTPMsgInitializing, http.StatusServiceUnavailable)
		return
	}

	w.Header().Set(config.HeaderContentType, config.MimeTextCalendar)
	w.Header().Set(config.HeaderXContentType, config.MimeNoSniff)
	w.Header().Set(config.HeaderCacheControl, config.CacheControlPrivate)
	w.Header().Set(config.HeaderETag, item.etag)

	if match := r.Header.Get(config.HeaderIfNoneMatch); match == item.etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	if r.Method == http.MethodGet {
		if _, err := io.Copy(w, bytes.NewReader(item.data)); err != nil {
			slog.Error(config.ErrWriteResp,
				config.LogKeyComponent, config.CompServer,
				config.LogKeyError, err,
			)
		}
	}
}

// statusFor maps the error taxonomy onto HTTP status codes.
func statusFor(err error) int {
	switch errs.CodeOf(err) {
	case config.CodeUnknownTool:
		return http.StatusNotFound
	case config.CodeUnknownHolidayData:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadRequest
	}
}

func (s *QueryServer) writeError(w http.ResponseWriter, err error) {
	s.writeJSON(w, statusFor(err), errs.Envelope(err))
}

func (s *QueryServer) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set(config.HeaderContentType, config.MimeJSON)
	w.Header().Set(config.HeaderXContentType, config.MimeNoSniff)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error(config.ErrWriteResp,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyError, err,
		)
	}
}
