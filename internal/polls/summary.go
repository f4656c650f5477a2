package polls

import (
	"fmt"
	"html"
	"sort"
	"strings"

	"github.com/nikitkaralius/weeklypoll/internal/models"
)

// SummaryView lists voters per option, each list sorted. A voter who picked
// several options shows up in several lists.
type SummaryView struct {
	Playing    []string
	NotPlaying []string
	FiftyFifty []string
}

func summarize(b models.Ballot) SummaryView {
	v := SummaryView{
		Playing:    []string{},
		NotPlaying: []string{},
		FiftyFifty: []string{},
	}
	for name, opts := range b {
		if containsOption(opts, Playing) {
			v.Playing = append(v.Playing, name)
		}
		if containsOption(opts, NotPlaying) {
			v.NotPlaying = append(v.NotPlaying, name)
		}
		if containsOption(opts, FiftyFifty) {
			v.FiftyFifty = append(v.FiftyFifty, name)
		}
	}
	sort.Strings(v.Playing)
	sort.Strings(v.NotPlaying)
	sort.Strings(v.FiftyFifty)
	return v
}

func containsOption(opts []int, o Option) bool {
	for _, id := range opts {
		if Option(id) == o {
			return true
		}
	}
	return false
}

// Render formats v as an HTML message: the header, then playing, not
// playing and fifty-fifty lines in that order.
func Render(v SummaryView, l Labels) string {
	lines := []string{
		l.Header,
		renderLine(l.Playing, v.Playing, l.Nobody),
		renderLine(l.NotPlaying, v.NotPlaying, l.Nobody),
		renderLine(l.FiftyFifty, v.FiftyFifty, l.Nobody),
	}
	return strings.Join(lines, "\n")
}

func renderLine(label string, names []string, nobody string) string {
	list := nobody
	if len(names) > 0 {
		escaped := make([]string, len(names))
		for i, n := range names {
			escaped[i] = html.EscapeString(n)
		}
		list = strings.Join(escaped, ", ")
	}
	return fmt.Sprintf("%s (%d): %s", label, len(names), list)
}
