package typechecker

func (c *Checker) pushLoopContext() {
	c.loopDepth++
}

func (c *Checker) popLoopContext() {
	if c.loopDepth > 0 {
		c.loopDepth--
	}
}

func (c *Checker) inLoopContext() bool {
	return c.loopDepth > 0
}
