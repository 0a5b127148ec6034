package httpapi

import (
	"net/http"

	"github.com/eudaimonia-labs/eudaimonia/internal/server/models"
)

type createProposalRequest struct {
	WorldID     string `json:"world_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (s *Server) handleCreateProposal(w http.ResponseWriter, r *http.Request) {
	var req createProposalRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := requireID("world_id", req.WorldID); err != nil {
		writeError(w, err)
		return
	}

	proposal, err := s.governance.CreateProposal(r.Context(), userID(r), req.WorldID, req.Title, req.Description)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toProposalDTO(proposal))
}

func (s *Server) handleListProposals(w http.ResponseWriter, r *http.Request) {
	worldID := r.URL.Query().Get("world_id")
	if err := optionalID("world_id", worldID); err != nil {
		writeError(w, err)
		return
	}

	proposals, err := s.governance.ListProposals(r.Context(), worldID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toProposalDTOs(proposals))
}

type castVoteRequest struct {
	ProposalID string `json:"proposal_id"`
	Choice     string `json:"choice"`
}

func (s *Server) handleCastVote(w http.ResponseWriter, r *http.Request) {
	var req castVoteRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := requireID("proposal_id", req.ProposalID); err != nil {
		writeError(w, err)
		return
	}

	vote, err := s.governance.CastVote(r.Context(), userID(r), req.ProposalID, models.VoteChoice(req.Choice))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toVoteDTO(vote))
}

func (s *Server) handleListVotes(w http.ResponseWriter, r *http.Request) {
	votes, err := s.governance.ListOwnVotes(r.Context(), userID(r))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toVoteDTOs(votes))
}

func (s *Server) handleProposalVotes(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	votes, err := s.governance.ListVotes(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toVoteDTOs(votes))
}

type tallyResponse struct {
	ProposalID string `json:"proposal_id"`
	Agree      int    `json:"agree"`
	Disagree   int    `json:"disagree"`
	Abstain    int    `json:"abstain"`
}

func (s *Server) handleProposalTally(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	tally, err := s.governance.Tally(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, tallyResponse{
		ProposalID: id,
		Agree:      tally.Agree,
		Disagree:   tally.Disagree,
		Abstain:    tally.Abstain,
	})
}
