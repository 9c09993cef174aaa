package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/dmitrijs2005/idregistry/internal/identity"
	"github.com/dmitrijs2005/idregistry/internal/server/models"
	"github.com/go-chi/chi/v5"
)

type profileRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	PublicKey string `json:"public_key"`
}

type loginResponse struct {
	LastLogin time.Time `json:"last_login"`
}

type eventsResponse struct {
	Events []models.Event `json:"events"`
}

func decode(r *http.Request, v any) error {
	if r.Body == nil || r.ContentLength == 0 {
		return nil
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errBadRequest
	}
	return nil
}

func pathIdentity(r *http.Request) (string, error) {
	return identity.Normalize(chi.URLParam(r, "identity"))
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var req profileRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	p, err := s.registry.Register(r.Context(), callerFromContext(r.Context()), req.Username, req.Email, req.PublicKey)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	at, err := s.registry.Login(r.Context(), callerFromContext(r.Context()))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, loginResponse{LastLogin: at})
}

func (s *Server) updateProfile(w http.ResponseWriter, r *http.Request) {
	var req profileRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	p, err := s.registry.UpdateProfile(r.Context(), callerFromContext(r.Context()), req.Username, req.Email, req.PublicKey)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) deactivate(w http.ResponseWriter, r *http.Request) {
	id, err := pathIdentity(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.registry.Deactivate(r.Context(), id, callerFromContext(r.Context())); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) reactivate(w http.ResponseWriter, r *http.Request) {
	id, err := pathIdentity(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.registry.Reactivate(r.Context(), id, callerFromContext(r.Context())); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) getProfile(w http.ResponseWriter, r *http.Request) {
	id, err := pathIdentity(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	p, err := s.registry.GetProfile(id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) isRegistered(w http.ResponseWriter, r *http.Request) {
	id, err := pathIdentity(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"registered": s.registry.IsRegistered(id)})
}

func (s *Server) isActive(w http.ResponseWriter, r *http.Request) {
	id, err := pathIdentity(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"active": s.registry.IsActive(id)})
}

func (s *Server) listEvents(w http.ResponseWriter, r *http.Request) {
	var (
		since int64
		limit int
		err   error
	)
	q := r.URL.Query()
	if v := q.Get("since"); v != "" {
		if since, err = strconv.ParseInt(v, 10, 64); err != nil {
			s.writeError(w, r, errBadRequest)
			return
		}
	}
	if v := q.Get("limit"); v != "" {
		if limit, err = strconv.Atoi(v); err != nil {
			s.writeError(w, r, errBadRequest)
			return
		}
	}

	events, err := s.registry.Events(r.Context(), since, limit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, eventsResponse{Events: events})
}
