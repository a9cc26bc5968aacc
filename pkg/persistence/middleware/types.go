package middleware

import "github.com/aretw0/nfa/pkg/ports"

// Middleware allows wrapping a ComputationStore to add behavior.
type Middleware func(ports.ComputationStore) ports.ComputationStore

// Chain wraps store with every middleware. The first one is the outermost.
func Chain(store ports.ComputationStore, mws ...Middleware) ports.ComputationStore {
	for i := len(mws) - 1; i >= 0; i-- {
		store = mws[i](store)
	}
	return store
}
