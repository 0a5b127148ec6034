package models

import "time"

type VoteChoice string

const (
	VoteAgree    VoteChoice = "agree"
	VoteDisagree VoteChoice = "disagree"
	VoteAbstain  VoteChoice = "abstain"
)

// ValidVoteChoice reports whether c is one of the three allowed choices.
func ValidVoteChoice(c VoteChoice) bool {
	return c == VoteAgree || c == VoteDisagree || c == VoteAbstain
}

// Vote records one voter's final choice on a proposal. Exactly one vote per
// (proposal, voter); there is no update or retraction path.
type Vote struct {
	ID         string
	ProposalID string
	VoterID    string
	Choice     VoteChoice
	CreatedAt  time.Time
}

// Tally is the derived per-choice vote count for a proposal.
type Tally struct {
	Agree    int
	Disagree int
	Abstain  int
}
