package store

// EventKind names the mutation that produced an Event.
type EventKind string

const (
	EventAppend  EventKind = "append"
	EventDrop    EventKind = "drop"
	EventPatch   EventKind = "patch"
	EventCommit  EventKind = "commit"
	EventDiscard EventKind = "discard"
)

// Event describes a change to the store.
type Event struct {
	Kind EventKind
	// ID is the affected entry, empty for commit and discard.
	ID string
	// Version is the store version after the change.
	Version uint64
}

type observer struct {
	id int
	fn func(Event)
}

// Version returns a counter bumped on every change. Ignored operations on
// unknown ids leave it untouched.
func (s *Store) Version() uint64 {
	return s.version
}

// Subscribe registers fn to be called synchronously after every change.
// The returned function removes the subscription.
func (s *Store) Subscribe(fn func(Event)) (cancel func()) {
	id := s.nextObs
	s.nextObs++
	s.observers = append(s.observers, observer{id: id, fn: fn})
	return func() {
		for i, o := range s.observers {
			if o.id == id {
				s.observers = append(s.observers[:i:i], s.observers[i+1:]...)
				return
			}
		}
	}
}

func (s *Store) changed(kind EventKind, id string) {
	s.version++
	ev := Event{Kind: kind, ID: id, Version: s.version}
	for _, o := range s.observers {
		o.fn(ev)
	}
}
