package game

type TickKind int

const (
	SubTick  TickKind = iota // A subdivision line
	BeatTick                 // The start of a beat group
	HalfTick                 // The middle of a beat group on even divisors
)

func (k TickKind) String() string {
	switch k {
	case BeatTick:
		return "beat"
	case HalfTick:
		return "half"
	}
	return "sub"
}

// Tick is one grid line on the timeline
type Tick struct {
	Kind  TickKind
	Ms    float64
	Point TimingPoint // The timing point whose segment produced this tick
}
