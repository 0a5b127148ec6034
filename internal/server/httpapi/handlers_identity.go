package httpapi

import "net/http"

type createProfileRequest struct {
	Name string `json:"name"`
	DID  string `json:"did"`
}

func (s *Server) handleCreateProfile(w http.ResponseWriter, r *http.Request) {
	var req createProfileRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	profile, err := s.profiles.CreateProfile(r.Context(), userID(r), req.Name, req.DID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toProfileDTO(profile))
}

func (s *Server) handleListProfiles(w http.ResponseWriter, r *http.Request) {
	profiles, err := s.profiles.ListProfiles(r.Context(), userID(r))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toProfileDTOs(profiles))
}

type attachCredentialRequest struct {
	ProfileID string         `json:"profile_id"`
	Payload   map[string]any `json:"payload"`
	Issuer    string         `json:"issuer"`
}

func (s *Server) handleAttachCredential(w http.ResponseWriter, r *http.Request) {
	var req attachCredentialRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := requireID("profile_id", req.ProfileID); err != nil {
		writeError(w, err)
		return
	}

	credential, err := s.profiles.AttachCredential(r.Context(), userID(r), req.ProfileID, req.Payload, req.Issuer)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toCredentialDTO(credential))
}

func (s *Server) handleListCredentials(w http.ResponseWriter, r *http.Request) {
	credentials, err := s.profiles.ListCredentials(r.Context(), userID(r))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toCredentialDTOs(credentials))
}

func (s *Server) handleFacetedProfile(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	profile, err := s.memberships.FacetedProfile(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toFacetedProfileDTO(profile))
}
