package generator

// Observer receives notable pipeline events. The generation endpoint wires it
// to SSE log frames; background callers can use NopObserver.
type Observer interface {
	// Log reports a human-readable progress message.
	Log(message string)
	// KeepAlive signals that the pipeline is still working while no content
	// has arrived; transports can use it to hold connections open.
	KeepAlive()
}

// NopObserver discards all events.
type NopObserver struct{}

// Log does nothing.
func (NopObserver) Log(message string) {}

// KeepAlive does nothing.
func (NopObserver) KeepAlive() {}
