package handlers

import (
	"net/http"
	"sync/atomic"
)

// Reloadable serves through the handler most recently stored, so a
// configuration change can replace the router without restarting the
// listener. In-flight requests finish on the handler they started with.
type Reloadable struct {
	current atomic.Pointer[http.Handler]
}

func NewReloadable(h http.Handler) *Reloadable {
	r := &Reloadable{}
	r.Store(h)
	return r
}

func (r *Reloadable) Store(h http.Handler) {
	r.current.Store(&h)
}

func (r *Reloadable) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	(*r.current.Load()).ServeHTTP(w, req)
}
