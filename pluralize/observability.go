package pluralize

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/kdsmith18542/pluralkit/observability"
)

// Observer defines hooks for tracing and metrics in pluralize operations
type Observer interface {
	OnInflection(ctx context.Context, engine string, direction string, word string, duration time.Duration)
	OnRuleRegistered(ctx context.Context, engine string, kind string, err error)
}

type observerHolder struct {
	Observer
}

var observer atomic.Pointer[observerHolder]

// RegisterObserver sets the package-wide observer used by engines that were
// not given one with WithObserver. Passing nil disables it.
func RegisterObserver(obs Observer) {
	if obs == nil {
		observer.Store(nil)
		return
	}
	observer.Store(&observerHolder{Observer: obs})
}

// getObserver returns the registered observer (or nil)
func getObserver() Observer {
	if h := observer.Load(); h != nil {
		return h.Observer
	}
	return nil
}

func (e *Engine) currentObserver() Observer {
	if e.observer != nil {
		return e.observer
	}
	return getObserver()
}

func (e *Engine) notifyRule(kind string, err error) {
	if obs := e.currentObserver(); obs != nil {
		obs.OnRuleRegistered(context.Background(), e.name, kind, err)
	}
}

// pluralizeObserver implements Observer using the global observability system
type pluralizeObserver struct{}

func (p *pluralizeObserver) OnInflection(ctx context.Context, engine string, direction string, word string, duration time.Duration) {
	observability.GetObserver().OnInflection(ctx, engine, direction, word, duration)
}

func (p *pluralizeObserver) OnRuleRegistered(ctx context.Context, engine string, kind string, err error) {
	observability.GetObserver().OnRuleRegistered(ctx, engine, kind, err)
}

// EnableObservability routes pluralize events to the observability package.
func EnableObservability() {
	RegisterObserver(&pluralizeObserver{})
}
