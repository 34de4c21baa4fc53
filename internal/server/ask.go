package server

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rotisserie/eris"

	"github.com/sells-group/procure-cli/internal/ask"
)

type askRequest struct {
	Query string `json:"query" validate:"required"`
}

func (r *askRequest) normalize() {
	r.Query = strings.TrimSpace(r.Query)
}

type askResponse struct {
	Answer string `json:"answer"`
}

// handleAsk serves POST /api/ask and POST /api/ask/{profile}.
func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	profile := chi.URLParam(r, "profile")
	if profile == "" {
		profile = ask.DefaultProfile
	}
	if _, ok := s.asker.Profiles()[profile]; !ok {
		writeError(w, http.StatusNotFound, "unknown profile: "+profile)
		return
	}

	var req askRequest
	if msg, ok := s.decode(w, r, &req); !ok {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	ans, err := s.asker.Ask(r.Context(), profile, req.Query)
	if err != nil {
		if eris.Is(err, ask.ErrUnknownProfile) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, askResponse{Answer: ans.Text})
}

func (s *Server) handleProfiles(w http.ResponseWriter, _ *http.Request) {
	profiles := s.asker.Profiles()
	type profileInfo struct {
		Name    string   `json:"name"`
		Sources []string `json:"sources"`
	}
	out := make([]profileInfo, 0, len(profiles))
	for _, name := range profiles.Names() {
		out = append(out, profileInfo{Name: name, Sources: profiles[name].Sources})
	}
	writeJSON(w, http.StatusOK, map[string]any{"profiles": out})
}
