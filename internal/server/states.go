package server

// State is a stage of the connection lifecycle. Every connection ends up in Closed, no
// matter at which stage the handling stopped.
type State uint8

const (
	Accepted State = iota + 1
	Reading
	Parsed
	Malformed
	Routed
	Responding
	Closed
)

func (s State) String() string {
	switch s {
	case Accepted:
		return "accepted"
	case Reading:
		return "reading"
	case Parsed:
		return "parsed"
	case Malformed:
		return "malformed"
	case Routed:
		return "routed"
	case Responding:
		return "responding"
	case Closed:
		return "closed"
	default:
		return "unknown"
	}
}
