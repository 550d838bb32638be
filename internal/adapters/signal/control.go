package signal

func (c *Connection) handlePong() {
	c.log.Debug().Msg("pong")
}
