package models

// Settings is the singleton record the bot persists between restarts.
// Nil fields are unset.
type Settings struct {
	GroupChatID  *int64  `json:"group_chat_id,omitempty"`
	LatestPollID *string `json:"latest_poll_id,omitempty"`
}

// Ballot maps a voter display name to the option indices they picked.
type Ballot map[string][]int

// Votes maps a poll id to its ballot.
type Votes map[string]Ballot

func (s Settings) Clone() Settings {
	var c Settings
	if s.GroupChatID != nil {
		id := *s.GroupChatID
		c.GroupChatID = &id
	}
	if s.LatestPollID != nil {
		id := *s.LatestPollID
		c.LatestPollID = &id
	}
	return c
}

func (b Ballot) Clone() Ballot {
	c := make(Ballot, len(b))
	for name, opts := range b {
		c[name] = append([]int{}, opts...)
	}
	return c
}

func (v Votes) Clone() Votes {
	c := make(Votes, len(v))
	for pollID, b := range v {
		c[pollID] = b.Clone()
	}
	return c
}
