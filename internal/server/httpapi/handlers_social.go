package httpapi

import "net/http"

type createPostRequest struct {
	WorldID string `json:"world_id"`
	Content string `json:"content"`
}

func (s *Server) handleCreatePost(w http.ResponseWriter, r *http.Request) {
	var req createPostRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := requireID("world_id", req.WorldID); err != nil {
		writeError(w, err)
		return
	}

	post, err := s.posts.CreatePost(r.Context(), userID(r), req.WorldID, req.Content)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toPostDTO(post))
}

func (s *Server) handleListPosts(w http.ResponseWriter, r *http.Request) {
	worldID := r.URL.Query().Get("world_id")
	if err := optionalID("world_id", worldID); err != nil {
		writeError(w, err)
		return
	}

	posts, err := s.posts.ListPosts(r.Context(), worldID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toPostDTOs(posts))
}

type createFriendshipRequest struct {
	Username string `json:"username"`
}

func (s *Server) handleCreateFriendship(w http.ResponseWriter, r *http.Request) {
	var req createFriendshipRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	friendship, err := s.friendships.Request(r.Context(), userID(r), req.Username)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toFriendshipDTO(friendship))
}

func (s *Server) handleListFriendships(w http.ResponseWriter, r *http.Request) {
	friendships, err := s.friendships.List(r.Context(), userID(r))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toFriendshipDTOs(friendships))
}

func (s *Server) handlePendingFriendships(w http.ResponseWriter, r *http.Request) {
	friendships, err := s.friendships.ListPending(r.Context(), userID(r))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toFriendshipDTOs(friendships))
}

func (s *Server) handleAcceptFriendship(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	friendship, err := s.friendships.Accept(r.Context(), userID(r), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toFriendshipDTO(friendship))
}

func (s *Server) handleRejectFriendship(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	friendship, err := s.friendships.Reject(r.Context(), userID(r), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toFriendshipDTO(friendship))
}

func (s *Server) handleListFriends(w http.ResponseWriter, r *http.Request) {
	friends, err := s.friendships.ListFriends(r.Context(), userID(r))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toUserDTOs(friends))
}
