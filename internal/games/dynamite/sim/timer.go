package sim

import "time"

// advanceTimers counts down every armed, fused, unfrozen bomb and queues
// the ones that reach zero. Remote and Contact bombs carry no timer.
func (s *State) advanceTimers(step time.Duration, r *resolver) {
	s.entities.each(func(e *Entity) {
		if e.Kind != KindBomb || !e.Bomb.Armed || !e.Bomb.HasTimer {
			return
		}
		if e.Bomb.Frozen(s.Now) {
			return
		}
		e.Bomb.Timer -= step
		if e.Bomb.Timer <= 0 {
			e.Bomb.Timer = 0
			r.enqueue(e.ID, CauseTimer)
		}
	})
}
