package gesture

// Phase is the lifecycle state of a pan gesture as reported by its source.
type Phase int

const (
	Undetermined Phase = iota
	Possible
	Began
	Active
	End
	Cancelled
	Failed
)

// Released reports whether the gesture is over and the card should be
// handed to the springs. Cancelled and Failed release the card the same way
// End does.
func (p Phase) Released() bool {
	switch p {
	case End, Cancelled, Failed:
		return true
	}
	return false
}

// String returns the name of the phase.
func (p Phase) String() string {
	switch p {
	case Possible:
		return "possible"
	case Began:
		return "began"
	case Active:
		return "active"
	case End:
		return "end"
	case Cancelled:
		return "cancelled"
	case Failed:
		return "failed"
	default:
		return "undetermined"
	}
}
