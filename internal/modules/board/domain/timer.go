package domain

// applyTimer is the timer sub-reducer. It knows nothing about sessions,
// queues, or persistence; the only state it reads is its own. Tick is a
// no-op while paused even though the clock driver is supposed to stop
// ticking on pause — the reducer does not trust the driver.
func applyTimer(t TimerState, kind ActionKind) TimerState {
	switch kind {
	case ActionTick:
		if t.Paused {
			return t
		}
		t.ElapsedSeconds++
		t.CumulativeSeconds++
	case ActionPause:
		t.Paused = true
	case ActionResume:
		t.Paused = false
	case ActionReset:
		t = TimerState{}
	}
	return t
}
