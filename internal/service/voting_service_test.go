package service

import (
	"context"
	"errors"
	"testing"

	"stormboard/internal/model"
)

// votingFixture is a session in the vote phase with three ideas and two
// participants.
type votingFixture struct {
	env     *testEnv
	session *model.Session
	ideas   []*model.PostIt
}

func newVotingFixture(t *testing.T) *votingFixture {
	t.Helper()
	env := newTestEnv()
	session := env.mustCreateSession(t)
	env.mustJoin(t, session.ID, "tok-1")
	env.mustJoin(t, session.ID, "tok-2")

	ideas := []*model.PostIt{
		env.mustCreatePostIt(t, session.ID, "idea one"),
		env.mustCreatePostIt(t, session.ID, "idea two"),
		env.mustCreatePostIt(t, session.ID, "idea three"),
	}
	env.mustAdvanceTo(t, session.ID, model.PhaseVote)
	return &votingFixture{env: env, session: session, ideas: ideas}
}

func (f *votingFixture) mustCreateRound(t *testing.T, mode model.VoteMode, config model.RoundConfig) *model.VotingRound {
	t.Helper()
	round, err := f.env.voting.CreateRound(context.Background(), ownerCred(), f.session.ID, mode, config)
	if err != nil {
		t.Fatalf("create round: %v", err)
	}
	return round
}

func TestCreateRoundRequiresVotePhase(t *testing.T) {
	env := newTestEnv()
	session := env.mustCreateSession(t)
	ctx := context.Background()

	if _, err := env.voting.CreateRound(ctx, ownerCred(), session.ID, model.ModeDotVoting, model.RoundConfig{TotalPoints: 5}); !errors.Is(err, ErrPhaseNotVote) {
		t.Fatalf("err = %v, want ErrPhaseNotVote", err)
	}
}

func TestRoundNumbering(t *testing.T) {
	f := newVotingFixture(t)
	first := f.mustCreateRound(t, model.ModeDotVoting, model.RoundConfig{TotalPoints: 5})
	second := f.mustCreateRound(t, model.ModeStockRank, model.RoundConfig{TopN: 3})

	if first.RoundNumber != 1 || second.RoundNumber != 2 {
		t.Fatalf("round numbers = %d, %d, want 1, 2", first.RoundNumber, second.RoundNumber)
	}

	active, err := f.env.voting.GetActiveRound(context.Background(), f.session.ID)
	if err != nil {
		t.Fatalf("active round: %v", err)
	}
	if active.ID != second.ID {
		t.Fatalf("active round = %s, want latest %s", active.ID, second.ID)
	}
}

func TestSubmitDotVotesFiltersZeroPoints(t *testing.T) {
	f := newVotingFixture(t)
	round := f.mustCreateRound(t, model.ModeDotVoting, model.RoundConfig{TotalPoints: 5})
	ctx := context.Background()

	err := f.env.voting.SubmitDotVotes(ctx, "tok-1", round.ID, []model.DotVote{
		{PostItID: f.ideas[0].ID, Points: 3},
		{PostItID: f.ideas[1].ID, Points: 0},
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	results, err := f.env.voting.AggregateDot(ctx, round.ID)
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("results = %d entries, want 1 (zero-point entry dropped)", len(results))
	}
	if results[0].PostItID != f.ideas[0].ID || results[0].Total != 3 {
		t.Fatalf("result = %+v, want {%s 3}", results[0], f.ideas[0].ID)
	}
}

func TestResubmissionReplacesPriorVotes(t *testing.T) {
	f := newVotingFixture(t)
	round := f.mustCreateRound(t, model.ModeDotVoting, model.RoundConfig{TotalPoints: 5})
	ctx := context.Background()

	if err := f.env.voting.SubmitDotVotes(ctx, "tok-1", round.ID, []model.DotVote{
		{PostItID: f.ideas[0].ID, Points: 5},
	}); err != nil {
		t.Fatalf("first submit: %v", err)
	}
	if err := f.env.voting.SubmitDotVotes(ctx, "tok-1", round.ID, []model.DotVote{
		{PostItID: f.ideas[1].ID, Points: 2},
	}); err != nil {
		t.Fatalf("second submit: %v", err)
	}

	results, _ := f.env.voting.AggregateDot(ctx, round.ID)
	if len(results) != 1 || results[0].PostItID != f.ideas[1].ID || results[0].Total != 2 {
		t.Fatalf("results = %+v, want only the second ballot", results)
	}
}

func TestAggregateDotSortsDescending(t *testing.T) {
	f := newVotingFixture(t)
	round := f.mustCreateRound(t, model.ModeDotVoting, model.RoundConfig{TotalPoints: 10})
	ctx := context.Background()

	f.env.voting.SubmitDotVotes(ctx, "tok-1", round.ID, []model.DotVote{
		{PostItID: f.ideas[0].ID, Points: 1},
		{PostItID: f.ideas[1].ID, Points: 4},
	})
	f.env.voting.SubmitDotVotes(ctx, "tok-2", round.ID, []model.DotVote{
		{PostItID: f.ideas[0].ID, Points: 2},
		{PostItID: f.ideas[2].ID, Points: 3},
	})

	results, err := f.env.voting.AggregateDot(ctx, round.ID)
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	want := []struct {
		id    string
		total float64
	}{
		{f.ideas[1].ID, 4},
		{f.ideas[0].ID, 3},
		{f.ideas[2].ID, 3},
	}
	if len(results) != len(want) {
		t.Fatalf("results = %d entries, want %d", len(results), len(want))
	}
	for i, w := range want {
		if results[i].PostItID != w.id || results[i].Total != w.total {
			t.Errorf("results[%d] = %+v, want {%s %v}", i, results[i], w.id, w.total)
		}
	}
}

func TestAggregateStockRank(t *testing.T) {
	f := newVotingFixture(t)
	round := f.mustCreateRound(t, model.ModeStockRank, model.RoundConfig{TopN: 3})
	ctx := context.Background()

	f.env.voting.SubmitRankVotes(ctx, "tok-1", round.ID, []model.RankVote{
		{PostItID: f.ideas[0].ID, Rank: 1},
		{PostItID: f.ideas[1].ID, Rank: 2},
	})
	f.env.voting.SubmitRankVotes(ctx, "tok-2", round.ID, []model.RankVote{
		{PostItID: f.ideas[0].ID, Rank: 3},
		{PostItID: f.ideas[1].ID, Rank: 1},
	})

	results, err := f.env.voting.AggregateStockRank(ctx, round.ID)
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("results = %d entries, want 2", len(results))
	}
	// idea[1] averages 1.5, idea[0] averages 2.0; ascending average wins.
	if results[0].PostItID != f.ideas[1].ID || results[0].AvgRank != 1.5 || results[0].TimesRanked != 2 {
		t.Errorf("results[0] = %+v", results[0])
	}
	if results[1].PostItID != f.ideas[0].ID || results[1].AvgRank != 2.0 {
		t.Errorf("results[1] = %+v", results[1])
	}
}

func TestAggregateMatrix(t *testing.T) {
	f := newVotingFixture(t)
	round := f.mustCreateRound(t, model.ModeMatrix2x2, model.RoundConfig{XAxisLabel: "Effort", YAxisLabel: "Impact"})
	ctx := context.Background()

	f.env.voting.SubmitMatrixVotes(ctx, "tok-1", round.ID, []model.MatrixVote{
		{PostItID: f.ideas[0].ID, X: 0.2, Y: 0.8},
	})
	f.env.voting.SubmitMatrixVotes(ctx, "tok-2", round.ID, []model.MatrixVote{
		{PostItID: f.ideas[0].ID, X: 0.4, Y: 0.6},
		{PostItID: f.ideas[1].ID, X: 0.9, Y: 0.1},
	})

	results, err := f.env.voting.AggregateMatrix(ctx, round.ID)
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("results = %d entries, want 2", len(results))
	}
	top := results[0]
	if top.PostItID != f.ideas[0].ID || top.Count != 2 {
		t.Fatalf("results[0] = %+v, want the twice-placed idea", top)
	}
	if !closeTo(top.AvgX, 0.3) || !closeTo(top.AvgY, 0.7) {
		t.Errorf("averages = (%v,%v), want (0.3,0.7)", top.AvgX, top.AvgY)
	}
}

func closeTo(got, want float64) bool {
	diff := got - want
	return diff < 1e-9 && diff > -1e-9
}

func TestVotingProgressCountsDistinctVoters(t *testing.T) {
	f := newVotingFixture(t)
	round := f.mustCreateRound(t, model.ModeDotVoting, model.RoundConfig{TotalPoints: 5})
	ctx := context.Background()

	f.env.voting.SubmitDotVotes(ctx, "tok-1", round.ID, []model.DotVote{
		{PostItID: f.ideas[0].ID, Points: 2},
		{PostItID: f.ideas[1].ID, Points: 3},
	})

	progress, err := f.env.voting.Progress(ctx, round.ID)
	if err != nil {
		t.Fatalf("progress: %v", err)
	}
	if progress.Total != 2 || progress.Voted != 1 {
		t.Fatalf("progress = %+v, want 1 of 2", progress)
	}
}

func TestParticipantVoteStatus(t *testing.T) {
	f := newVotingFixture(t)
	round := f.mustCreateRound(t, model.ModeDotVoting, model.RoundConfig{TotalPoints: 5})
	ctx := context.Background()

	status, err := f.env.voting.ParticipantVoteStatus(ctx, "tok-1", round.ID)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if status.HasVoted {
		t.Fatal("fresh participant should not have voted")
	}

	f.env.voting.SubmitDotVotes(ctx, "tok-1", round.ID, []model.DotVote{
		{PostItID: f.ideas[0].ID, Points: 1},
	})
	status, _ = f.env.voting.ParticipantVoteStatus(ctx, "tok-1", round.ID)
	if !status.HasVoted || len(status.Votes) != 1 {
		t.Fatalf("status = %+v, want one vote", status)
	}
}

func TestSubmitRejectsForeignToken(t *testing.T) {
	f := newVotingFixture(t)
	round := f.mustCreateRound(t, model.ModeDotVoting, model.RoundConfig{TotalPoints: 5})
	ctx := context.Background()

	other := f.env.mustCreateSession(t)
	f.env.mustJoin(t, other.ID, "tok-other")

	err := f.env.voting.SubmitDotVotes(ctx, "tok-other", round.ID, []model.DotVote{
		{PostItID: f.ideas[0].ID, Points: 1},
	})
	if !errors.Is(err, ErrParticipantNotFound) {
		t.Fatalf("err = %v, want ErrParticipantNotFound", err)
	}
}

func TestSubmitRequiresVotePhase(t *testing.T) {
	f := newVotingFixture(t)
	round := f.mustCreateRound(t, model.ModeDotVoting, model.RoundConfig{TotalPoints: 5})
	ctx := context.Background()

	f.env.mustAdvanceTo(t, f.session.ID, model.PhaseResults)
	err := f.env.voting.SubmitDotVotes(ctx, "tok-1", round.ID, []model.DotVote{
		{PostItID: f.ideas[0].ID, Points: 1},
	})
	if !errors.Is(err, ErrPhaseNotVote) {
		t.Fatalf("err = %v, want ErrPhaseNotVote", err)
	}
}

func TestReveal(t *testing.T) {
	f := newVotingFixture(t)
	round := f.mustCreateRound(t, model.ModeDotVoting, model.RoundConfig{TotalPoints: 5})
	ctx := context.Background()

	if err := f.env.voting.Reveal(ctx, ownerCred(), round.ID); err != nil {
		t.Fatalf("reveal: %v", err)
	}
	got, _ := f.env.voting.GetRound(ctx, round.ID)
	if !got.IsRevealed {
		t.Fatal("round should be revealed")
	}

	// Second reveal is a no-op success.
	if err := f.env.voting.Reveal(ctx, ownerCred(), round.ID); err != nil {
		t.Fatalf("second reveal: %v", err)
	}

	if err := f.env.voting.Reveal(ctx, ownerCred(), "missing"); !errors.Is(err, ErrRoundNotFound) {
		t.Fatalf("missing round err = %v, want ErrRoundNotFound", err)
	}
}
