package connection

// Metrics counts per-connection traffic and state changes. Implementations
// must be safe for concurrent use.
type Metrics interface {
	// MessageReceived counts one received message by its protocol command.
	MessageReceived(command string)
	// MessageSent counts one successfully written message by its command.
	MessageSent(command string)
	// StateChanged reports a lifecycle transition ("open", "closed").
	StateChanged(connID, state string)
}

// NopMetrics discards all measurements.
type NopMetrics struct{}

func (NopMetrics) MessageReceived(string)      {}
func (NopMetrics) MessageSent(string)          {}
func (NopMetrics) StateChanged(string, string) {}
