package store

import (
	"log"

	"FitTrack/internal/model"
)

// Subscription channels are buffered one snapshot deep. A send replaces
// any snapshot the subscriber has not consumed yet, so a slow consumer
// always sees the latest state rather than a backlog of stale ones.

func (s *SQLiteStore) SubscribeFoods(day string) (<-chan []model.FoodEntry, func()) {
	ch := make(chan []model.FoodEntry, 1)

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		close(ch)
		return ch, func() {}
	}
	id := s.nextSub
	s.nextSub++
	if s.foodSubs[day] == nil {
		s.foodSubs[day] = make(map[int]chan []model.FoodEntry)
	}
	s.foodSubs[day][id] = ch
	s.mu.Unlock()

	if entries, err := s.FoodEntriesForDay(day); err == nil {
		pushSnapshot(ch, entries)
	} else {
		log.Printf("[WARN] initial food snapshot for %s failed: %v", day, err)
	}

	cancel := func() {
		s.mu.Lock()
		if subs, ok := s.foodSubs[day]; ok {
			delete(subs, id)
			if len(subs) == 0 {
				delete(s.foodSubs, day)
			}
		}
		s.mu.Unlock()
	}
	return ch, cancel
}

func (s *SQLiteStore) SubscribeExercises(day string) (<-chan []model.ExerciseEntry, func()) {
	ch := make(chan []model.ExerciseEntry, 1)

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		close(ch)
		return ch, func() {}
	}
	id := s.nextSub
	s.nextSub++
	if s.exSubs[day] == nil {
		s.exSubs[day] = make(map[int]chan []model.ExerciseEntry)
	}
	s.exSubs[day][id] = ch
	s.mu.Unlock()

	if entries, err := s.ExerciseEntriesForDay(day); err == nil {
		pushSnapshot(ch, entries)
	} else {
		log.Printf("[WARN] initial exercise snapshot for %s failed: %v", day, err)
	}

	cancel := func() {
		s.mu.Lock()
		if subs, ok := s.exSubs[day]; ok {
			delete(subs, id)
			if len(subs) == 0 {
				delete(s.exSubs, day)
			}
		}
		s.mu.Unlock()
	}
	return ch, cancel
}

func (s *SQLiteStore) SubscribeHydration(day string) (<-chan int, func()) {
	ch := make(chan int, 1)

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		close(ch)
		return ch, func() {}
	}
	id := s.nextSub
	s.nextSub++
	if s.hydSubs[day] == nil {
		s.hydSubs[day] = make(map[int]chan int)
	}
	s.hydSubs[day][id] = ch
	s.mu.Unlock()

	if cups, err := s.HydrationCups(day); err == nil {
		pushSnapshot(ch, cups)
	} else {
		log.Printf("[WARN] initial hydration snapshot for %s failed: %v", day, err)
	}

	cancel := func() {
		s.mu.Lock()
		if subs, ok := s.hydSubs[day]; ok {
			delete(subs, id)
			if len(subs) == 0 {
				delete(s.hydSubs, day)
			}
		}
		s.mu.Unlock()
	}
	return ch, cancel
}

// The notify functions query outside the lock, then send while holding
// it. Sends must happen under mu: Close closes the subscriber channels
// under the same lock, so an unguarded send could race it and panic.

func (s *SQLiteStore) notifyFoods(day string) {
	s.mu.Lock()
	n := len(s.foodSubs[day])
	s.mu.Unlock()
	if n == 0 {
		return
	}

	entries, err := s.FoodEntriesForDay(day)
	if err != nil {
		log.Printf("[WARN] food snapshot for %s failed: %v", day, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	for _, ch := range s.foodSubs[day] {
		pushSnapshot(ch, entries)
	}
}

func (s *SQLiteStore) notifyExercises(day string) {
	s.mu.Lock()
	n := len(s.exSubs[day])
	s.mu.Unlock()
	if n == 0 {
		return
	}

	entries, err := s.ExerciseEntriesForDay(day)
	if err != nil {
		log.Printf("[WARN] exercise snapshot for %s failed: %v", day, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	for _, ch := range s.exSubs[day] {
		pushSnapshot(ch, entries)
	}
}

func (s *SQLiteStore) notifyHydration(day string) {
	s.mu.Lock()
	n := len(s.hydSubs[day])
	s.mu.Unlock()
	if n == 0 {
		return
	}

	cups, err := s.HydrationCups(day)
	if err != nil {
		log.Printf("[WARN] hydration snapshot for %s failed: %v", day, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	for _, ch := range s.hydSubs[day] {
		pushSnapshot(ch, cups)
	}
}

// pushSnapshot drains a stale unconsumed snapshot before sending, so the
// buffered-1 channel always holds the newest state.
func pushSnapshot[T any](ch chan T, snapshot T) {
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- snapshot:
	default:
	}
}
