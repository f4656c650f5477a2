package polls

import "strings"

// DisplayName is the ledger key for a voter. Two accounts with the same full
// name and username share a key and overwrite each other's ballot.
func DisplayName(fullName, username string) string {
	if username == "" {
		return fullName
	}
	return fullName + " (@" + username + ")"
}

// FullName joins Telegram's first and last name the way clients show it.
func FullName(first, last string) string {
	return strings.TrimSpace(first + " " + last)
}

// Answer is an inbound poll answer.
type Answer struct {
	PollID    string
	FullName  string
	Username  string
	OptionIDs []int
}

func (a Answer) Voter() string {
	return DisplayName(a.FullName, a.Username)
}
