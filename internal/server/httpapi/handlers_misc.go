package httpapi

import "net/http"

func (s *Server) handleRequestExport(w http.ResponseWriter, r *http.Request) {
	export, err := s.exports.Request(r.Context(), userID(r))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toExportDTO(export))
}

func (s *Server) handleListExports(w http.ResponseWriter, r *http.Request) {
	exports, err := s.exports.List(r.Context(), userID(r))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toExportDTOs(exports))
}

type companionQueryRequest struct {
	Query string `json:"query"`
}

type companionQueryResponse struct {
	Answer string `json:"answer"`
}

func (s *Server) handleCompanionQuery(w http.ResponseWriter, r *http.Request) {
	var req companionQueryRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	answer, err := s.companion.Query(r.Context(), userID(r), req.Query)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, companionQueryResponse{Answer: answer})
}
