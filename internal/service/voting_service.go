package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"stormboard/internal/cache"
	"stormboard/internal/model"
	"stormboard/internal/repository"
)

// VotingService manages voting rounds and vote aggregation. A participant's
// submission replaces all of their prior votes in the round; the
// delete-then-insert is serialized per participant and round so two racing
// submissions from the same participant cannot interleave.
type VotingService struct {
	roundRepo       repository.RoundRepo
	voteRepo        repository.VoteRepo
	participantRepo repository.ParticipantRepo
	resultsCache    cache.ResultsCache
	authSvc         *AuthService
	broadcaster     Broadcaster

	submitMu sync.Mutex
	locks    map[string]*sync.Mutex
}

// NewVotingService creates a new voting service.
func NewVotingService(
	roundRepo repository.RoundRepo,
	voteRepo repository.VoteRepo,
	participantRepo repository.ParticipantRepo,
	resultsCache cache.ResultsCache,
	authSvc *AuthService,
) *VotingService {
	return &VotingService{
		roundRepo:       roundRepo,
		voteRepo:        voteRepo,
		participantRepo: participantRepo,
		resultsCache:    resultsCache,
		authSvc:         authSvc,
		locks:           make(map[string]*sync.Mutex),
	}
}

// SetBroadcaster injects the event broadcaster.
func (s *VotingService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// CreateRound opens a new voting round in a session. The session must be in
// the vote phase. Round numbers count up from 1 and are never reused within
// a live sequence; rounds deleted by a phase revert free their numbers.
// Owner or co-admin.
func (s *VotingService) CreateRound(ctx context.Context, cred model.Credential, sessionID string, mode model.VoteMode, config model.RoundConfig) (*model.VotingRound, error) {
	session, err := s.authSvc.AuthorizeSession(ctx, cred, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Phase != model.PhaseVote {
		return nil, ErrPhaseNotVote
	}

	count, err := s.roundRepo.CountBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	round := &model.VotingRound{
		SessionID:   sessionID,
		RoundNumber: count + 1,
		Mode:        mode,
		Config:      config,
		CreatedAt:   time.Now(),
	}
	if err := s.roundRepo.Create(ctx, round); err != nil {
		return nil, err
	}
	broadcast(s.broadcaster, sessionID, EventRoundCreated, round)
	return round, nil
}

// GetRound returns a round by ID, or nil.
func (s *VotingService) GetRound(ctx context.Context, roundID string) (*model.VotingRound, error) {
	return s.roundRepo.GetByID(ctx, roundID)
}

// GetActiveRound returns the session's highest-numbered round, or nil when
// no round exists.
func (s *VotingService) GetActiveRound(ctx context.Context, sessionID string) (*model.VotingRound, error) {
	return s.roundRepo.GetLatest(ctx, sessionID)
}

// RoundsBySession returns all rounds of a session ordered by round number.
func (s *VotingService) RoundsBySession(ctx context.Context, sessionID string) ([]*model.VotingRound, error) {
	return s.roundRepo.ListBySession(ctx, sessionID)
}

// Reveal marks a round's results as visible to participants. Revealing an
// already-revealed round is a no-op success. Owner or co-admin.
func (s *VotingService) Reveal(ctx context.Context, cred model.Credential, roundID string) error {
	round, err := s.roundRepo.GetByID(ctx, roundID)
	if err != nil {
		return err
	}
	if round == nil {
		return ErrRoundNotFound
	}
	if _, err := s.authSvc.AuthorizeSession(ctx, cred, round.SessionID); err != nil {
		return err
	}
	if round.IsRevealed {
		return nil
	}

	round.IsRevealed = true
	if err := s.roundRepo.Update(ctx, round); err != nil {
		return err
	}
	broadcast(s.broadcaster, round.SessionID, EventRoundRevealed, map[string]string{"roundId": roundID})
	return nil
}

// SubmitDotVotes replaces the participant's dot votes in a round. Entries
// with zero or negative points are dropped, so allocating zero points to
// every post-it clears the ballot.
func (s *VotingService) SubmitDotVotes(ctx context.Context, participantToken, roundID string, entries []model.DotVote) error {
	votes := make([]*model.Vote, 0, len(entries))
	for _, entry := range entries {
		if entry.Points <= 0 {
			continue
		}
		votes = append(votes, &model.Vote{
			PostItID: entry.PostItID,
			Value:    model.VoteValue{Points: entry.Points},
		})
	}
	return s.submit(ctx, participantToken, roundID, votes)
}

// SubmitRankVotes replaces the participant's ranking in a round.
func (s *VotingService) SubmitRankVotes(ctx context.Context, participantToken, roundID string, entries []model.RankVote) error {
	votes := make([]*model.Vote, 0, len(entries))
	for _, entry := range entries {
		votes = append(votes, &model.Vote{
			PostItID: entry.PostItID,
			Value:    model.VoteValue{Rank: entry.Rank},
		})
	}
	return s.submit(ctx, participantToken, roundID, votes)
}

// SubmitMatrixVotes replaces the participant's matrix placements in a round.
func (s *VotingService) SubmitMatrixVotes(ctx context.Context, participantToken, roundID string, entries []model.MatrixVote) error {
	votes := make([]*model.Vote, 0, len(entries))
	for _, entry := range entries {
		votes = append(votes, &model.Vote{
			PostItID: entry.PostItID,
			Value:    model.VoteValue{X: entry.X, Y: entry.Y},
		})
	}
	return s.submit(ctx, participantToken, roundID, votes)
}

func (s *VotingService) submit(ctx context.Context, participantToken, roundID string, votes []*model.Vote) error {
	round, err := s.roundRepo.GetByID(ctx, roundID)
	if err != nil {
		return err
	}
	if round == nil {
		return ErrRoundNotFound
	}

	participant, err := s.authSvc.ResolveParticipant(ctx, participantToken, round.SessionID)
	if err != nil {
		return err
	}

	session, err := s.authSvc.sessionRepo.GetByID(ctx, round.SessionID)
	if err != nil {
		return err
	}
	if session == nil {
		return ErrSessionNotFound
	}
	if session.Phase != model.PhaseVote {
		return ErrPhaseNotVote
	}

	lock := s.lockFor(participant.ID + ":" + roundID)
	lock.Lock()
	defer lock.Unlock()

	if err := s.voteRepo.DeleteByParticipantRound(ctx, participant.ID, roundID); err != nil {
		return err
	}
	for _, vote := range votes {
		vote.RoundID = roundID
		vote.SessionID = round.SessionID
		vote.ParticipantID = participant.ID
		if err := s.voteRepo.Create(ctx, vote); err != nil {
			return err
		}
	}

	if s.resultsCache != nil {
		_ = s.resultsCache.Invalidate(ctx, roundID)
	}
	broadcast(s.broadcaster, round.SessionID, EventVotesSubmitted, map[string]string{"roundId": roundID})
	return nil
}

func (s *VotingService) lockFor(key string) *sync.Mutex {
	s.submitMu.Lock()
	defer s.submitMu.Unlock()
	lock, ok := s.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[key] = lock
	}
	return lock
}

// AggregateDot totals points per post-it, highest first. Ties keep the
// order post-its first appeared in the vote list.
func (s *VotingService) AggregateDot(ctx context.Context, roundID string) ([]model.DotVoteResult, error) {
	if s.resultsCache != nil {
		if cached, err := s.resultsCache.GetDot(ctx, roundID); err == nil && cached != nil {
			return cached, nil
		}
	}

	votes, err := s.voteRepo.ListByRound(ctx, roundID)
	if err != nil {
		return nil, err
	}

	totals := make(map[string]float64)
	var order []string
	for _, vote := range votes {
		if _, seen := totals[vote.PostItID]; !seen {
			order = append(order, vote.PostItID)
		}
		totals[vote.PostItID] += vote.Value.Points
	}

	results := make([]model.DotVoteResult, 0, len(order))
	for _, postItID := range order {
		results = append(results, model.DotVoteResult{PostItID: postItID, Total: totals[postItID]})
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Total > results[j].Total
	})

	if s.resultsCache != nil {
		_ = s.resultsCache.SetDot(ctx, roundID, results)
	}
	return results, nil
}

// AggregateStockRank averages ranks per post-it, lowest average first.
func (s *VotingService) AggregateStockRank(ctx context.Context, roundID string) ([]model.StockRankResult, error) {
	if s.resultsCache != nil {
		if cached, err := s.resultsCache.GetStockRank(ctx, roundID); err == nil && cached != nil {
			return cached, nil
		}
	}

	votes, err := s.voteRepo.ListByRound(ctx, roundID)
	if err != nil {
		return nil, err
	}

	sums := make(map[string]float64)
	counts := make(map[string]int)
	var order []string
	for _, vote := range votes {
		if _, seen := counts[vote.PostItID]; !seen {
			order = append(order, vote.PostItID)
		}
		sums[vote.PostItID] += vote.Value.Rank
		counts[vote.PostItID]++
	}

	results := make([]model.StockRankResult, 0, len(order))
	for _, postItID := range order {
		results = append(results, model.StockRankResult{
			PostItID:    postItID,
			AvgRank:     sums[postItID] / float64(counts[postItID]),
			TimesRanked: counts[postItID],
		})
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].AvgRank < results[j].AvgRank
	})

	if s.resultsCache != nil {
		_ = s.resultsCache.SetStockRank(ctx, roundID, results)
	}
	return results, nil
}

// AggregateMatrix averages x/y placements per post-it, most-placed first.
func (s *VotingService) AggregateMatrix(ctx context.Context, roundID string) ([]model.MatrixResult, error) {
	if s.resultsCache != nil {
		if cached, err := s.resultsCache.GetMatrix(ctx, roundID); err == nil && cached != nil {
			return cached, nil
		}
	}

	votes, err := s.voteRepo.ListByRound(ctx, roundID)
	if err != nil {
		return nil, err
	}

	sumX := make(map[string]float64)
	sumY := make(map[string]float64)
	counts := make(map[string]int)
	var order []string
	for _, vote := range votes {
		if _, seen := counts[vote.PostItID]; !seen {
			order = append(order, vote.PostItID)
		}
		sumX[vote.PostItID] += vote.Value.X
		sumY[vote.PostItID] += vote.Value.Y
		counts[vote.PostItID]++
	}

	results := make([]model.MatrixResult, 0, len(order))
	for _, postItID := range order {
		results = append(results, model.MatrixResult{
			PostItID: postItID,
			AvgX:     sumX[postItID] / float64(counts[postItID]),
			AvgY:     sumY[postItID] / float64(counts[postItID]),
			Count:    counts[postItID],
		})
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Count > results[j].Count
	})

	if s.resultsCache != nil {
		_ = s.resultsCache.SetMatrix(ctx, roundID, results)
	}
	return results, nil
}

// Progress reports how many of the session's participants have voted in a
// round. Voted counts distinct participants, however many vote rows each
// submitted.
func (s *VotingService) Progress(ctx context.Context, roundID string) (*model.VotingProgress, error) {
	round, err := s.roundRepo.GetByID(ctx, roundID)
	if err != nil {
		return nil, err
	}
	if round == nil {
		return nil, ErrRoundNotFound
	}

	total, err := s.participantRepo.CountBySession(ctx, round.SessionID)
	if err != nil {
		return nil, err
	}

	votes, err := s.voteRepo.ListByRound(ctx, roundID)
	if err != nil {
		return nil, err
	}
	voters := make(map[string]struct{})
	for _, vote := range votes {
		voters[vote.ParticipantID] = struct{}{}
	}

	return &model.VotingProgress{Total: total, Voted: len(voters)}, nil
}

// ParticipantVoteStatus returns whether a participant has voted in a round
// and the votes they hold there.
func (s *VotingService) ParticipantVoteStatus(ctx context.Context, participantToken, roundID string) (*model.VoteStatus, error) {
	round, err := s.roundRepo.GetByID(ctx, roundID)
	if err != nil {
		return nil, err
	}
	if round == nil {
		return nil, ErrRoundNotFound
	}

	participant, err := s.authSvc.ResolveParticipant(ctx, participantToken, round.SessionID)
	if err != nil {
		return nil, err
	}

	votes, err := s.voteRepo.ListByParticipantRound(ctx, participant.ID, roundID)
	if err != nil {
		return nil, err
	}
	return &model.VoteStatus{HasVoted: len(votes) > 0, Votes: votes}, nil
}
