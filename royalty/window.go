package royalty

// ShiftWindow records a new owner in the ownership window. The window grows
// by appending until it reaches the configured generation count, then evicts
// the oldest entry before appending. This runs on every completed transfer
// regardless of whether a distribution happened.
func (s *AssetState) ShiftWindow(to Address) {
	capacity := int(s.Config.GenerationCount)
	if len(s.Window) >= capacity {
		// FIFO eviction: drop the oldest, keep order.
		n := copy(s.Window, s.Window[1:])
		s.Window = s.Window[:n]
	}
	s.Window = append(s.Window, to)
}
