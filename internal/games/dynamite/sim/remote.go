package sim

// RemoteQueue holds armed remote bombs in the order they were dropped.
type RemoteQueue struct {
	ids []EntityID
}

// Push appends a bomb to the back of the queue.
func (q *RemoteQueue) Push(id EntityID) {
	q.ids = append(q.ids, id)
}

// Len returns the number of queued bombs.
func (q *RemoteQueue) Len() int {
	return len(q.ids)
}

// IDs returns a copy of the queue, front first.
func (q *RemoteQueue) IDs() []EntityID {
	return append([]EntityID(nil), q.ids...)
}

// pop removes and returns the front of the queue.
func (q *RemoteQueue) pop() (EntityID, bool) {
	if len(q.ids) == 0 {
		return NoEntity, false
	}
	id := q.ids[0]
	q.ids = q.ids[1:]
	return id, true
}

// remove drops id wherever it sits. Reports whether it was queued.
func (q *RemoteQueue) remove(id EntityID) bool {
	for i, v := range q.ids {
		if v == id {
			q.ids = append(q.ids[:i:i], q.ids[i+1:]...)
			return true
		}
	}
	return false
}

func (q RemoteQueue) clone() RemoteQueue {
	return RemoteQueue{ids: append([]EntityID(nil), q.ids...)}
}

// trigger detonates the earliest live remote bomb. Stale entries are discarded.
func (s *State) trigger(r *resolver) bool {
	for {
		id, ok := s.remote.pop()
		if !ok {
			return false
		}
		e, ok := s.entities.get(id)
		if !ok || e.Kind != KindBomb || !e.Bomb.Armed {
			continue
		}
		r.enqueue(id, CauseTrigger)
		return true
	}
}
