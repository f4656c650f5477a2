package polls

// Option is an answer index as sent to Telegram at poll creation. The order
// is shared with the poll message and must not change.
type Option int

const (
	Playing Option = iota
	NotPlaying
	FiftyFifty
)

// Options lists every valid option in poll order.
var Options = []Option{Playing, NotPlaying, FiftyFifty}

func (o Option) Valid() bool {
	return o >= Playing && o <= FiftyFifty
}

func (o Option) String() string {
	switch o {
	case Playing:
		return "playing"
	case NotPlaying:
		return "not playing"
	case FiftyFifty:
		return "fifty-fifty"
	default:
		return "unknown"
	}
}
