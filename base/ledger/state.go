package ledger

type snapshot struct {
	undo int
	logs int
}

// journal keeps undo entries of the running transaction
type journal struct {
	undo []func()
	logs []Log
}

func (j *journal) snapshot() snapshot {
	return snapshot{undo: len(j.undo), logs: len(j.logs)}
}

func (j *journal) revert(s snapshot) {
	for i := len(j.undo) - 1; i >= s.undo; i-- {
		j.undo[i]()
	}
	j.undo = j.undo[:s.undo]
	j.logs = j.logs[:s.logs]
}

// Map is journaled contract storage. Values are stored as given, callers must
// not mutate a stored value in place.
type Map[K comparable, V any] struct {
	m map[K]V
}

func NewMap[K comparable, V any]() *Map[K, V] {
	return &Map[K, V]{m: make(map[K]V)}
}

func (s *Map[K, V]) Get(k K) (V, bool) {
	v, ok := s.m[k]
	return v, ok
}

func (s *Map[K, V]) Set(tx *Tx, k K, v V) {
	prev, existed := s.m[k]
	tx.record(func() {
		if existed {
			s.m[k] = prev
		} else {
			delete(s.m, k)
		}
	})
	s.m[k] = v
}

func (s *Map[K, V]) Delete(tx *Tx, k K) {
	prev, existed := s.m[k]
	if !existed {
		return
	}
	tx.record(func() {
		s.m[k] = prev
	})
	delete(s.m, k)
}

func (s *Map[K, V]) Len() int {
	return len(s.m)
}

// Range visits entries in no particular order until fn returns false
func (s *Map[K, V]) Range(fn func(K, V) bool) {
	for k, v := range s.m {
		if !fn(k, v) {
			return
		}
	}
}

// Value is a single journaled slot
type Value[V any] struct {
	v V
}

func (s *Value[V]) Get() V {
	return s.v
}

func (s *Value[V]) Set(tx *Tx, v V) {
	prev := s.v
	tx.record(func() {
		s.v = prev
	})
	s.v = v
}
