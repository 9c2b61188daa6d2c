package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"stormboard/internal/model"
	"stormboard/internal/service"
)

// VotingHandler handles voting round and vote endpoints.
type VotingHandler struct {
	votingSvc *service.VotingService
}

// NewVotingHandler creates a new voting handler.
func NewVotingHandler(votingSvc *service.VotingService) *VotingHandler {
	return &VotingHandler{votingSvc: votingSvc}
}

// CreateRoundRequest is the request body for opening a voting round.
type CreateRoundRequest struct {
	Mode   model.VoteMode    `json:"mode"`
	Config model.RoundConfig `json:"config"`
}

// CreateRound handles POST /v1/sessions/{sessionId}/rounds
func (h *VotingHandler) CreateRound(w http.ResponseWriter, r *http.Request) {
	var req CreateRoundRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	round, err := h.votingSvc.CreateRound(r.Context(), credentialFrom(r), mux.Vars(r)["sessionId"], req.Mode, req.Config)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, round)
}

// ListRounds handles GET /v1/sessions/{sessionId}/rounds
func (h *VotingHandler) ListRounds(w http.ResponseWriter, r *http.Request) {
	rounds, err := h.votingSvc.RoundsBySession(r.Context(), mux.Vars(r)["sessionId"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"rounds": rounds})
}

// ActiveRound handles GET /v1/sessions/{sessionId}/rounds/active
func (h *VotingHandler) ActiveRound(w http.ResponseWriter, r *http.Request) {
	round, err := h.votingSvc.GetActiveRound(r.Context(), mux.Vars(r)["sessionId"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"round": round})
}

// Reveal handles POST /v1/rounds/{roundId}/reveal
func (h *VotingHandler) Reveal(w http.ResponseWriter, r *http.Request) {
	if err := h.votingSvc.Reveal(r.Context(), credentialFrom(r), mux.Vars(r)["roundId"]); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "revealed"})
}

// SubmitVotesRequest carries a full ballot for one round. Only the list
// matching the round's mode is read.
type SubmitVotesRequest struct {
	DotVotes    []model.DotVote    `json:"dotVotes,omitempty"`
	RankVotes   []model.RankVote   `json:"rankVotes,omitempty"`
	MatrixVotes []model.MatrixVote `json:"matrixVotes,omitempty"`
}

// SubmitVotes handles POST /v1/rounds/{roundId}/votes
func (h *VotingHandler) SubmitVotes(w http.ResponseWriter, r *http.Request) {
	token := r.Header.Get("X-Participant-Token")
	if token == "" {
		writeError(w, http.StatusBadRequest, "missing participant token")
		return
	}

	var req SubmitVotesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	roundID := mux.Vars(r)["roundId"]
	round, err := h.votingSvc.GetRound(r.Context(), roundID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if round == nil {
		writeError(w, http.StatusNotFound, "round not found")
		return
	}

	switch round.Mode {
	case model.ModeDotVoting:
		err = h.votingSvc.SubmitDotVotes(r.Context(), token, roundID, req.DotVotes)
	case model.ModeStockRank:
		err = h.votingSvc.SubmitRankVotes(r.Context(), token, roundID, req.RankVotes)
	case model.ModeMatrix2x2:
		err = h.votingSvc.SubmitMatrixVotes(r.Context(), token, roundID, req.MatrixVotes)
	default:
		writeError(w, http.StatusBadRequest, "unknown vote mode")
		return
	}
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "submitted"})
}

// Results handles GET /v1/rounds/{roundId}/results
func (h *VotingHandler) Results(w http.ResponseWriter, r *http.Request) {
	roundID := mux.Vars(r)["roundId"]
	round, err := h.votingSvc.GetRound(r.Context(), roundID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if round == nil {
		writeError(w, http.StatusNotFound, "round not found")
		return
	}

	var results interface{}
	switch round.Mode {
	case model.ModeDotVoting:
		results, err = h.votingSvc.AggregateDot(r.Context(), roundID)
	case model.ModeStockRank:
		results, err = h.votingSvc.AggregateStockRank(r.Context(), roundID)
	case model.ModeMatrix2x2:
		results, err = h.votingSvc.AggregateMatrix(r.Context(), roundID)
	default:
		writeError(w, http.StatusBadRequest, "unknown vote mode")
		return
	}
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"mode":    round.Mode,
		"results": results,
	})
}

// Progress handles GET /v1/rounds/{roundId}/progress
func (h *VotingHandler) Progress(w http.ResponseWriter, r *http.Request) {
	progress, err := h.votingSvc.Progress(r.Context(), mux.Vars(r)["roundId"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, progress)
}

// VoteStatus handles GET /v1/rounds/{roundId}/votes/me
func (h *VotingHandler) VoteStatus(w http.ResponseWriter, r *http.Request) {
	token := r.Header.Get("X-Participant-Token")
	if token == "" {
		writeError(w, http.StatusBadRequest, "missing participant token")
		return
	}

	status, err := h.votingSvc.ParticipantVoteStatus(r.Context(), token, mux.Vars(r)["roundId"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}
