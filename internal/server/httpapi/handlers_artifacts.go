package httpapi

import (
	"encoding/base64"
	"fmt"
	"net/http"

	"github.com/eudaimonia-labs/eudaimonia/internal/common"
	"github.com/eudaimonia-labs/eudaimonia/internal/server/models"
)

type publishArtifactRequest struct {
	WorldID      string `json:"world_id"`
	Title        string `json:"title"`
	Abstract     string `json:"abstract"`
	ArtifactType string `json:"artifact_type"`
	Content      string `json:"content"` // base64
}

func (s *Server) handlePublishArtifact(w http.ResponseWriter, r *http.Request) {
	var req publishArtifactRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	if err := requireID("world_id", req.WorldID); err != nil {
		writeError(w, err)
		return
	}

	content, err := base64.StdEncoding.DecodeString(req.Content)
	if err != nil {
		writeError(w, fmt.Errorf("%w: content must be base64", common.ErrorValidation))
		return
	}

	artifact, err := s.artifacts.Publish(r.Context(), userID(r), req.WorldID, req.Title, req.Abstract,
		models.ArtifactType(req.ArtifactType), content)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toArtifactDTO(artifact))
}

func (s *Server) handleListArtifacts(w http.ResponseWriter, r *http.Request) {
	worldID := r.URL.Query().Get("world_id")
	if err := optionalID("world_id", worldID); err != nil {
		writeError(w, err)
		return
	}

	artifacts, err := s.artifacts.List(r.Context(), worldID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toArtifactDTOs(artifacts))
}

func (s *Server) handleArtifactContent(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	content, artifact, err := s.artifacts.FetchContent(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("X-Content-CID", artifact.CID)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(content)
}
