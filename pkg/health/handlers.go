// Package health serves the liveness and readiness probes of the HTTP
// transport.
package health

import (
	"net/http"
	"sync/atomic"
)

// Probe reports why the server cannot serve tool calls yet, or nil.
type Probe func() error

type Checker interface {
	SetReady(ready bool)
	LivenessHandler(w http.ResponseWriter, r *http.Request)
	ReadinessHandler(w http.ResponseWriter, r *http.Request)
}

type checker struct {
	ready  atomic.Bool
	probes []Probe
}

var _ Checker = &checker{}

// NewChecker returns a checker that is not ready until SetReady(true) and
// every probe passes.
func NewChecker(probes ...Probe) Checker {
	return &checker{probes: probes}
}

func (c *checker) SetReady(ready bool) {
	c.ready.Store(ready)
}

func (c *checker) LivenessHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (c *checker) ReadinessHandler(w http.ResponseWriter, r *http.Request) {
	if !c.ready.Load() {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("not ready"))
		return
	}

	for _, probe := range c.probes {
		if err := probe(); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("not ready: " + err.Error()))
			return
		}
	}

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
