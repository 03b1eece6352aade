package explorer

import "context"

// Registry tracks the open explorer per session (tabpage, window, or
// whatever scope the host uses). It is an explicit service object
// injected into callers rather than ambient state, so tests construct
// isolated instances. Mutated only from the single control thread.
type Registry struct {
	bySession map[string]*Explorer
}

func NewRegistry() *Registry {
	return &Registry{bySession: make(map[string]*Explorer)}
}

func (r *Registry) Get(session string) (*Explorer, bool) {
	e, ok := r.bySession[session]
	return e, ok
}

func (r *Registry) Put(session string, e *Explorer) {
	r.bySession[session] = e
}

func (r *Registry) Remove(session string) {
	delete(r.bySession, session)
}

func (r *Registry) Len() int {
	return len(r.bySession)
}

// CloseAll closes every registered explorer and empties the registry.
func (r *Registry) CloseAll(ctx context.Context) {
	for session, e := range r.bySession {
		_ = e.Close(ctx)
		delete(r.bySession, session)
	}
}
