// Package localization stores and retrieves localized diagnostic messages.
//
// Three interchangeable backends implement the same Producer contract: a
// compact serialized table (.db) optimized for startup and lookup, a
// structured YAML list (.yaml), and a flat "id" = "msg"; file (.strings).
// All three are keyed by the closed identifier space in internal/diagid and
// degrade to caller-supplied default messages when a file is missing,
// malformed, or only partially localized.
package localization

import (
	"locstone/internal/diagid"
)

// ProducerState tracks the one-shot lazy initialization of a producer.
// The transition out of NotInitialized is terminal: a producer never retries
// a failed load and never re-enters NotInitialized.
type ProducerState uint8

const (
	NotInitialized ProducerState = iota
	Initialized
	FailedInitialization
)

// Producer is the message-store contract shared by the three backends.
//
// Producers perform no I/O until the first call of MessageOrDefault or
// ForEachAvailable. They do no internal locking: concurrent first use must
// be synchronized by the caller. After initialization all operations are
// read-only and safe for concurrent readers.
type Producer interface {
	// MessageOrDefault returns the localized text for id, or def unchanged
	// when initialization failed or the catalog has no entry for id.
	MessageOrDefault(id diagid.ID, def string) string

	// ForEachAvailable invokes fn once per identifier with a non-empty
	// translation, in ascending identifier order. Invokes fn zero times
	// when initialization failed.
	ForEachAvailable(fn func(id diagid.ID, msg string))

	// State reports the producer's initialization state.
	State() ProducerState
}

// core carries the state machine and debug-name handling shared by every
// backend. Backends embed it and route lookups through initOnce/finish.
type core struct {
	space      *diagid.Space
	debugNames bool
	state      ProducerState
	err        error
}

// initOnce runs load on the first call and latches the outcome. Subsequent
// calls are no-ops regardless of the outcome.
func (c *core) initOnce(load func() error) {
	if c.state != NotInitialized {
		return
	}
	if err := load(); err != nil {
		c.err = err
		c.state = FailedInitialization
		return
	}
	c.state = Initialized
}

// finish applies the default-message fallback and the optional debug-name
// suffix to a raw lookup result.
func (c *core) finish(id diagid.ID, localized, def string) string {
	if localized == "" {
		return def
	}
	if c.debugNames {
		return localized + c.space.DebugSuffix(id)
	}
	return localized
}

func (c *core) State() ProducerState {
	return c.state
}

// Err returns the error that moved the producer to FailedInitialization,
// or nil. Useful for tooling that wants to distinguish a missing catalog
// from a corrupt one; lookup callers never see it.
func (c *core) Err() error {
	return c.err
}
