// Package tools is the explicit routing table between operation names and
// engine handlers. Each tool declares its input schema; arguments are
// validated at this boundary before any engine component runs, and every
// failure leaves as a typed error the server layer can envelope.
package tools

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/tartampluch/go-chinacal/internal/bazi"
	"github.com/tartampluch/go-chinacal/internal/cache"
	"github.com/tartampluch/go-chinacal/internal/clock"
	"github.com/tartampluch/go-chinacal/internal/config"
	"github.com/tartampluch/go-chinacal/internal/errs"
	"github.com/tartampluch/go-chinacal/internal/holiday"
	"github.com/tartampluch/go-chinacal/internal/i18n"
	"github.com/tartampluch/go-chinacal/internal/lunisolar"
	"github.com/tartampluch/go-chinacal/internal/solarterm"
)

// Engine bundles the components a handler may consult. All fields are
// read-only after construction except Cache, which synchronizes itself.
type Engine struct {
	Converter *lunisolar.Converter
	Terms     *solarterm.Resolver
	Bazi      *bazi.Calculator
	Holidays  *holiday.Resolver
	Cache     *cache.Cache
	Clock     clock.Clock
	Trans     *i18n.Translator
}

// Tool is one dispatchable operation.
type Tool struct {
	Name        string
	Description string
	InputSchema map[string]any

	// volatile tools depend on the current date; their cache key carries
	// today so a long-lived process never serves yesterday's answer.
	volatile bool

	handler func(e *Engine, args map[string]any) (map[string]any, error)
}

// Info is the externally visible description of a tool.
type Info struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"input_schema"`
}

// Registry maps operation names to tools.
type Registry struct {
	engine *Engine
	byName map[string]Tool
	order  []string
}

// NewRegistry registers the ten engine operations against the engine.
func NewRegistry(e *Engine) *Registry {
	r := &Registry{
		engine: e,
		byName: make(map[string]Tool),
	}
	for _, t := range toolset() {
		r.byName[t.Name] = t
		r.order = append(r.order, t.Name)
	}
	return r
}

// List returns the registered tools in registration order.
func (r *Registry) List() []Info {
	out := make([]Info, 0, len(r.order))
	for _, name := range r.order {
		t := r.byName[name]
		out = append(out, Info{Name: t.Name, Description: t.Description, InputSchema: t.InputSchema})
	}
	return out
}

// Execute dispatches one operation. Results are memoized per
// (tool, arguments) through the engine cache; correctness never depends
// on a hit.
func (r *Registry) Execute(name string, args map[string]any) (map[string]any, error) {
	t, ok := r.byName[name]
	if !ok {
		return nil, errs.UnknownTool(name)
	}

	start := time.Now()
	key := r.cacheKey(t, args)

	if cached, hit := r.engine.Cache.Get(key); hit {
		if result, isMap := cached.(map[string]any); isMap {
			return result, nil
		}
	}

	result, err := t.handler(r.engine, args)
	if err != nil {
		slog.Warn(config.MsgToolFailed,
			config.LogKeyComponent, config.CompTools,
			config.LogKeyTool, name,
			config.LogKeyCode, errs.CodeOf(err),
			config.LogKeyError, err,
		)
		return nil, err
	}

	r.engine.Cache.Set(key, result)

	slog.Debug(config.MsgToolCall,
		config.LogKeyComponent, config.CompTools,
		config.LogKeyTool, name,
		config.LogKeyDuration, time.Since(start).Milliseconds(),
	)
	return result, nil
}

// cacheKey serializes the arguments into a stable key. encoding/json
// sorts map keys, so equal argument sets collide as intended.
func (r *Registry) cacheKey(t Tool, args map[string]any) string {
	raw, err := json.Marshal(args)
	if err != nil {
		raw = []byte(fmt.Sprintf("%v", args))
	}
	if t.volatile {
		return t.Name + ":" + r.engine.Clock.Now().Format(config.DateFormatISO) + ":" + string(raw)
	}
	return t.Name + ":" + string(raw)
}
