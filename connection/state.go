package connection

// connState is the behavior of a connection in one lifecycle phase. The
// worker holds exactly one state and replaces it with each transition
// method's return value; a state must not be used after it transitioned
// away.
type connState interface {
	// sendMessage takes ownership of ps and guarantees its eventual
	// resolution.
	sendMessage(ps *pendingSend)

	onInitFinished(cmd *initFinishedCmd) connState
	onIncoming(cmd *incomingCmd) connState
	onOutgoingFailed(err error) connState

	sendPing()
	checkPong() connState

	onCloseRequested() connState
}
