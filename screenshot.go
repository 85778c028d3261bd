package arbor

// Screenshot queues a labeled capture of the next rendered frame. Rendering
// itself is host business: a host drains the queue with TakeScreenshots
// after drawing and writes the images wherever it keeps them.
func (s *Scene) Screenshot(label string) {
	s.screenshotQueue = append(s.screenshotQueue, label)
}

// TakeScreenshots returns the queued labels and empties the queue.
func (s *Scene) TakeScreenshots() []string {
	if len(s.screenshotQueue) == 0 {
		return nil
	}
	labels := s.screenshotQueue
	s.screenshotQueue = nil
	return labels
}
