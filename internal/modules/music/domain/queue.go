package domain

// TrackQueue is a FIFO queue of tracks. Insertion order is play order and the
// head is the currently-playing or about-to-play track; the head is removed
// when it has been consumed, before the next play attempt.
type TrackQueue struct {
	tracks []Track
}

// NewTrackQueue creates an empty TrackQueue.
func NewTrackQueue() TrackQueue {
	return TrackQueue{
		tracks: make([]Track, 0),
	}
}

// IsEmpty returns true if the queue has no tracks.
func (q *TrackQueue) IsEmpty() bool {
	return q.Len() == 0
}

// Len returns the number of tracks in the queue.
func (q *TrackQueue) Len() int {
	return len(q.tracks)
}

// Push appends a track to the end of the queue and returns its 0-indexed
// position (0 = head).
func (q *TrackQueue) Push(track Track) int {
	q.tracks = append(q.tracks, track)
	return len(q.tracks) - 1
}

// Head returns the track at the front of the queue without removing it,
// or nil if the queue is empty.
func (q *TrackQueue) Head() *Track {
	if q.IsEmpty() {
		return nil
	}
	return &q.tracks[0]
}

// PopHead removes and returns the track at the front of the queue,
// or nil if the queue is empty.
func (q *TrackQueue) PopHead() *Track {
	if q.IsEmpty() {
		return nil
	}
	head := q.tracks[0]
	q.tracks = q.tracks[1:]
	return &head
}

// Clear removes all tracks and returns how many were removed.
func (q *TrackQueue) Clear() int {
	n := len(q.tracks)
	q.tracks = make([]Track, 0)
	return n
}

// List returns a copy of all tracks in play order.
func (q *TrackQueue) List() []Track {
	result := make([]Track, q.Len())
	copy(result, q.tracks)
	return result
}
