package sequencer

// Timer is a saturating countdown counter.
type Timer struct {
	remaining uint32
}

// Load sets the number of ticks left.
func (t *Timer) Load(n uint32) {
	t.remaining = n
}

// Tick counts one tick down, holding at zero.
func (t *Timer) Tick() {
	if t.remaining > 0 {
		t.remaining--
	}
}

// Expired tells if the timer has reached zero.
func (t Timer) Expired() bool {
	return t.remaining == 0
}

// Remaining returns the number of ticks left.
func (t Timer) Remaining() uint32 {
	return t.remaining
}
