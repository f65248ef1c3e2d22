// Package goid exposes the calling goroutine's runtime id.
//
// Go deliberately provides no goroutine-local storage. The standard
// workaround — parsing the header line of the goroutine's own stack
// dump — is the same class of introspection go.uber.org/goleak performs
// internally to attribute leaked goroutines back to their creation site.
// actorkit reuses the technique to gate the owner-goroutine preconditions
// that the actor engine and the async scope both enforce.
package goid

import (
	"bytes"
	"runtime"
	"strconv"
)

// Current returns the id of the calling goroutine.
func Current() int64 {
	buf := make([]byte, 64)
	n := runtime.Stack(buf, false)
	buf = buf[:n]

	fields := bytes.Fields(buf)
	if len(fields) < 2 {
		return -1
	}
	id, err := strconv.ParseInt(string(fields[1]), 10, 64)
	if err != nil {
		return -1
	}
	return id
}
