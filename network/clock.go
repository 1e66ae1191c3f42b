package network

// ClockSync maps server time onto the local clock. It keeps only the most
// recent sample; jitter between samples passes straight through.
type ClockSync struct {
	diff    int64
	samples int
}

// Update records a snapshot receipt: diff = localNow - serverTime (ms).
func (c *ClockSync) Update(serverTime, localNow int64) {
	c.diff = localNow - serverTime
	c.samples++
}

// Diff returns localNow - serverTime from the last sample.
func (c *ClockSync) Diff() int64 {
	return c.diff
}

// Synced reports whether at least one sample has been taken.
func (c *ClockSync) Synced() bool {
	return c.samples > 0
}

// ToLocal converts a server timestamp to the local clock.
func (c *ClockSync) ToLocal(serverTime int64) int64 {
	return serverTime + c.diff
}

// ServerNow estimates the server clock at localNow.
func (c *ClockSync) ServerNow(localNow int64) int64 {
	return localNow - c.diff
}

// Reset forgets every sample.
func (c *ClockSync) Reset() {
	c.diff = 0
	c.samples = 0
}
