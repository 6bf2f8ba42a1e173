package deck

import "time"

// Direction is the outcome of a completed swipe.
type Direction int

const (
	Reject Direction = iota
	Accept
)

// String returns the name of the direction.
func (d Direction) String() string {
	if d == Accept {
		return "accept"
	}
	return "reject"
}

// Icon returns the footer glyph for the direction.
func (d Direction) Icon() string {
	if d == Accept {
		return "♥"
	}
	return "✕"
}

// Profile is a single card in the deck.
type Profile struct {
	ID      string   `yaml:"id,omitempty"`
	Name    string   `yaml:"name"`
	Age     int      `yaml:"age,omitempty"`
	Bio     string   `yaml:"bio,omitempty"`
	Picture string   `yaml:"picture,omitempty"`
	Tags    []string `yaml:"tags,omitempty"`
}

// Decision records a swiped profile.
type Decision struct {
	ProfileID string    `yaml:"id"`
	Name      string    `yaml:"name"`
	Direction Direction `yaml:"-"`
	Verdict   string    `yaml:"verdict"`
	At        time.Time `yaml:"at"`
}

// Deck is the ordered list of remaining profiles. The head is the card
// under control; the deck only shrinks from the head and is never reordered.
// It is only mutated from Bubbletea's single-threaded Update loop.
type Deck struct {
	profiles []Profile
	history  []Decision
}

// New creates a Deck from the given profiles. The slice is copied.
func New(profiles []Profile) *Deck {
	p := make([]Profile, len(profiles))
	copy(p, profiles)
	return &Deck{profiles: p}
}

// Head returns a pointer to the controlled profile, or nil if empty.
func (d *Deck) Head() *Profile {
	if len(d.profiles) == 0 {
		return nil
	}
	return &d.profiles[0]
}

// Peek returns up to n profiles after the head.
func (d *Deck) Peek(n int) []Profile {
	if len(d.profiles) <= 1 || n <= 0 {
		return nil
	}
	end := 1 + n
	if end > len(d.profiles) {
		end = len(d.profiles)
	}
	result := make([]Profile, end-1)
	copy(result, d.profiles[1:end])
	return result
}

// Len returns the number of remaining profiles.
func (d *Deck) Len() int {
	return len(d.profiles)
}

// Empty reports whether no controllable card is left.
func (d *Deck) Empty() bool {
	return len(d.profiles) == 0
}

// RemoveHead drops the head profile and records the decision. Returns false
// if the deck is already empty.
func (d *Deck) RemoveHead(dir Direction, at time.Time) (Profile, bool) {
	if len(d.profiles) == 0 {
		return Profile{}, false
	}
	head := d.profiles[0]
	d.profiles = d.profiles[1:]
	d.history = append(d.history, Decision{
		ProfileID: head.ID,
		Name:      head.Name,
		Direction: dir,
		Verdict:   dir.String(),
		At:        at,
	})
	return head, true
}

// History returns the decisions in swipe order.
func (d *Deck) History() []Decision {
	out := make([]Decision, len(d.history))
	copy(out, d.history)
	return out
}

// Counts returns how many profiles were accepted and rejected.
func (d *Deck) Counts() (accepted, rejected int) {
	for _, h := range d.history {
		if h.Direction == Accept {
			accepted++
		} else {
			rejected++
		}
	}
	return accepted, rejected
}

// Swiped returns the number of decisions made so far.
func (d *Deck) Swiped() int {
	return len(d.history)
}
