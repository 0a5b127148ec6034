package httpapi

import (
	"net/http"

	"github.com/eudaimonia-labs/eudaimonia/internal/server/models"
)

type createWorldRequest struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Category    string         `json:"category"`
	ThemeData   map[string]any `json:"theme_data"`
}

func (s *Server) handleCreateWorld(w http.ResponseWriter, r *http.Request) {
	var req createWorldRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	world, err := s.worlds.CreateWorld(r.Context(), userID(r), req.Name, req.Description,
		models.WorldCategory(req.Category), req.ThemeData)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toWorldDTO(world))
}

func (s *Server) handleListWorlds(w http.ResponseWriter, r *http.Request) {
	category := models.WorldCategory(r.URL.Query().Get("category"))

	worlds, err := s.worlds.ListWorlds(r.Context(), category)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toWorldDTOs(worlds))
}

func (s *Server) handleGetWorld(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	world, err := s.worlds.GetWorld(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toWorldDTO(world))
}

type updateWorldRequest struct {
	Description *string        `json:"description"`
	ThemeData   map[string]any `json:"theme_data"`
}

func (s *Server) handleUpdateWorld(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req updateWorldRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	world, err := s.worlds.UpdateWorld(r.Context(), userID(r), id, req.Description, req.ThemeData)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toWorldDTO(world))
}

func (s *Server) handleDeleteWorld(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := s.worlds.DeleteWorld(r.Context(), userID(r), id); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleJoinWorld(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	membership, err := s.memberships.Join(r.Context(), userID(r), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toMembershipDTO(membership))
}

func (s *Server) handleWorldMembers(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	members, err := s.memberships.ListMembers(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toMembershipDTOs(members))
}

func (s *Server) handleWorldPosts(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	posts, err := s.posts.ListPosts(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toPostDTOs(posts))
}
