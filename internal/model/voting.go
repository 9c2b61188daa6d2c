package model

import "time"

// VoteMode selects how a voting round collects and aggregates votes.
type VoteMode string

const (
	ModeDotVoting VoteMode = "dot_voting"
	ModeStockRank VoteMode = "stock_rank"
	ModeMatrix2x2 VoteMode = "matrix_2x2"
)

// RoundConfig is the mode-specific configuration of a round. Only the
// fields relevant to the round's mode are set.
type RoundConfig struct {
	TotalPoints int    `json:"totalPoints,omitempty" bson:"totalPoints,omitempty"` // dot_voting
	TopN        int    `json:"topN,omitempty" bson:"topN,omitempty"`               // stock_rank
	XAxisLabel  string `json:"xAxisLabel,omitempty" bson:"xAxisLabel,omitempty"`   // matrix_2x2
	YAxisLabel  string `json:"yAxisLabel,omitempty" bson:"yAxisLabel,omitempty"`   // matrix_2x2
}

// VotingRound is one configured voting exercise within the vote phase.
// RoundNumber is 1-based and monotonically increasing per session; rounds
// surviving a revert are never renumbered. IsRevealed flips to true exactly
// once and never back.
type VotingRound struct {
	ID          string      `json:"id" bson:"_id,omitempty"`
	SessionID   string      `json:"sessionId" bson:"sessionId"`
	RoundNumber int         `json:"roundNumber" bson:"roundNumber"`
	Mode        VoteMode    `json:"mode" bson:"mode"`
	Config      RoundConfig `json:"config" bson:"config"`
	IsRevealed  bool        `json:"isRevealed" bson:"isRevealed"`
	CreatedAt   time.Time   `json:"createdAt" bson:"createdAt"`
}

// VoteValue is the mode-specific payload stored on a vote: Points for
// dot_voting, Rank for stock_rank, X/Y for matrix_2x2.
type VoteValue struct {
	Points float64 `json:"points,omitempty" bson:"points,omitempty"`
	Rank   float64 `json:"rank,omitempty" bson:"rank,omitempty"`
	X      float64 `json:"x,omitempty" bson:"x,omitempty"`
	Y      float64 `json:"y,omitempty" bson:"y,omitempty"`
}

// Vote is a single participant valuation of a single post-it within a
// round. A participant's resubmission replaces all of their votes in that
// round.
type Vote struct {
	ID            string    `json:"id" bson:"_id,omitempty"`
	RoundID       string    `json:"roundId" bson:"roundId"`
	SessionID     string    `json:"sessionId" bson:"sessionId"`
	ParticipantID string    `json:"participantId" bson:"participantId"`
	PostItID      string    `json:"postItId" bson:"postItId"`
	Value         VoteValue `json:"value" bson:"value"`
}

// Submission entry types, one per mode.

type DotVote struct {
	PostItID string  `json:"postItId"`
	Points   float64 `json:"points"`
}

type RankVote struct {
	PostItID string  `json:"postItId"`
	Rank     float64 `json:"rank"`
}

type MatrixVote struct {
	PostItID string  `json:"postItId"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
}

// Aggregation result types, one per mode.

type DotVoteResult struct {
	PostItID string  `json:"postItId"`
	Total    float64 `json:"total"`
}

type StockRankResult struct {
	PostItID    string  `json:"postItId"`
	AvgRank     float64 `json:"avgRank"`
	TimesRanked int     `json:"timesRanked"`
}

type MatrixResult struct {
	PostItID string  `json:"postItId"`
	AvgX     float64 `json:"avgX"`
	AvgY     float64 `json:"avgY"`
	Count    int     `json:"count"`
}

// VotingProgress reports how many of a session's participants have voted in
// a round. Voted counts distinct participants, not vote rows.
type VotingProgress struct {
	Total int `json:"total"`
	Voted int `json:"voted"`
}

// VoteStatus is a single participant's submission state within a round.
type VoteStatus struct {
	HasVoted bool    `json:"hasVoted"`
	Votes    []*Vote `json:"votes"`
}
