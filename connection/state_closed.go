package connection

// closedState is terminal. Every send resolves immediately with the
// closure reason; late task results are dropped.
type closedState struct {
	c      *Connection
	reason error
}

func (s *closedState) sendMessage(ps *pendingSend) {
	ps.resolve(s.reason)
	pendingSendPool.release(ps)
}

func (s *closedState) onInitFinished(cmd *initFinishedCmd) connState {
	// a connect that lost the race against Close still owns a socket
	if cmd.conn != nil {
		_ = cmd.conn.Close()
	}
	return s
}

func (s *closedState) onIncoming(*incomingCmd) connState { return s }
func (s *closedState) onOutgoingFailed(error) connState  { return s }
func (s *closedState) sendPing()                         {}
func (s *closedState) checkPong() connState              { return s }
func (s *closedState) onCloseRequested() connState       { return s }
