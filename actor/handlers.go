package actor

import "sync"

// SignalHandler is user-registered code invoked at termination, once per
// signal, in insertion order (spec §3.1).
type SignalHandler func(HandlerContext, Signal)

// handlerChain is an append-only list, safe for concurrent append and
// iteration (spec §3.1, §9): each append builds a fresh backing slice, so
// a snapshot taken before an append never observes it, and iterating a
// snapshot needs no lock at all.
type handlerChain struct {
	mu       sync.Mutex
	handlers []SignalHandler
}

func newHandlerChain() *handlerChain {
	return &handlerChain{}
}

func (hc *handlerChain) append(h SignalHandler) {
	hc.mu.Lock()
	defer hc.mu.Unlock()
	next := make([]SignalHandler, len(hc.handlers)+1)
	copy(next, hc.handlers)
	next[len(hc.handlers)] = h
	hc.handlers = next
}

func (hc *handlerChain) snapshot() []SignalHandler {
	hc.mu.Lock()
	defer hc.mu.Unlock()
	return hc.handlers
}
