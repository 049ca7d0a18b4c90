package rewrite

import "fmt"

// EventKind is the kind of a processing event.
type EventKind int

const (
	// RepeatFixed is emitted after mutating a repeated window.
	RepeatFixed EventKind = iota
	// MotifFound is emitted before mutating a motif hit.
	MotifFound
	// MotifAbsent is emitted when a motif is not in the sequence.
	MotifAbsent
	// MotifUnresolved is emitted when the failsafe for a motif is
	// exhausted and the motif is left in the sequence.
	MotifUnresolved
)

var eventNames = [...]string{"repeat_fixed", "motif_found", "motif_absent", "motif_unresolved"}

func (k EventKind) String() string {
	if int(k) < len(eventNames) {
		return eventNames[k]
	}
	return fmt.Sprintf("EventKind(%d)", int(k))
}

// MarshalText encodes the kind by name.
func (k EventKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes the kind by name.
func (k *EventKind) UnmarshalText(b []byte) error {
	for i, n := range eventNames {
		if n == string(b) {
			*k = EventKind(i)
			return nil
		}
	}
	return fmt.Errorf("unknown event kind %q", b)
}

// Event is a single entry of the processing log.
type Event struct {
	Kind EventKind `json:"kind"`
	// Name is the motif name, empty for repeats.
	Name string `json:"name,omitempty"`
	// Pattern is the repeated window or the motif pattern.
	Pattern string `json:"pattern"`
	// Position is the hit position, -1 for absent motifs.
	Position int `json:"position"`
	// Local is the sequence at Position after the fix.
	Local string `json:"local,omitempty"`
	// Attempt is the failsafe counter value for motif events.
	Attempt int `json:"attempt,omitempty"`
}

// Message returns a human readable description of the event.
func (e Event) Message() string {
	switch e.Kind {
	case RepeatFixed:
		return fmt.Sprintf("Found repetitive motif %s at position %d. Replaced with sequence %s", e.Pattern, e.Position, e.Local)
	case MotifFound:
		return fmt.Sprintf("Found restriction enzyme motif %s at position %d", e.Pattern, e.Position)
	case MotifAbsent:
		return fmt.Sprintf("Found no instance of restriction enzyme motif %s", e.Pattern)
	case MotifUnresolved:
		return fmt.Sprintf("Motif %s left unresolved at position %d after %d attempts", e.Pattern, e.Position, e.Attempt)
	}
	return e.Kind.String()
}
