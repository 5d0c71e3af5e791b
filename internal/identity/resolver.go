package identity

import (
	"context"
	"sync"

	"github.com/studylab/studyvault/internal/logging"
)

// Event is a sign-in notification from the external authentication source.
type Event struct {
	PrincipalID string
	Email       string
}

// Source delivers authentication events. The channel closing means the
// source is gone; no further resolution happens.
type Source interface {
	Events() <-chan Event
}

// Resolver subscribes to an authentication source and computes the storage
// key for the session. The key is fixed by the first successful sign-in and
// never changes afterwards; Ready is closed exactly once at that point.
// Sign-out is not handled here.
//
// Resolver serves session-oriented collaborators that learn their identity
// asynchronously, such as an embedded page runtime waiting on an auth
// provider. The stateless HTTP API does not need it: every request carries
// its identity in the bearer token and goes through Policy directly.
type Resolver struct {
	policy Policy
	log    logging.Logger

	mu    sync.RWMutex
	key   string
	email string

	readyOnce sync.Once
	ready     chan struct{}
}

func NewResolver(policy Policy, log logging.Logger) *Resolver {
	return &Resolver{
		policy: policy,
		log:    log.With("component", "identity"),
		ready:  make(chan struct{}),
	}
}

// Run consumes events until ctx is done or the source closes. Only the
// first event resolves the key; later sign-ins on the same session are
// logged and ignored to keep the key immutable.
func (r *Resolver) Run(ctx context.Context, src Source) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-src.Events():
			if !ok {
				return
			}
			r.Resolve(ctx, ev)
		}
	}
}

// Resolve applies a single sign-in event.
func (r *Resolver) Resolve(ctx context.Context, ev Event) {
	if ev.PrincipalID == "" {
		return
	}

	r.mu.Lock()
	if r.key != "" {
		r.mu.Unlock()
		r.log.Debug(ctx, "ignoring sign-in after key resolution", "email", ev.Email)
		return
	}
	r.key = r.policy.StorageKey(ev.PrincipalID, ev.Email)
	r.email = ev.Email
	r.mu.Unlock()

	r.log.Info(ctx, "storage key resolved", "email", ev.Email)
	r.readyOnce.Do(func() { close(r.ready) })
}

// Ready is closed after the first successful resolution. Callers must wait
// on it before issuing store operations.
func (r *Resolver) Ready() <-chan struct{} { return r.ready }

// StorageKey returns the resolved key, or false before the first sign-in.
func (r *Resolver) StorageKey() (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.key, r.key != ""
}

// Email returns the signed-in e-mail, or empty before the first sign-in.
func (r *Resolver) Email() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.email
}
