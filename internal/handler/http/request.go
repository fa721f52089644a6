package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/squadhr-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/squadhr-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/squadhr-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/squadhr-backend-go/internal/pkg/pagination"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// principal resolves the caller and writes the error response when it cannot.
func principal(w http.ResponseWriter, r *http.Request) (user.Principal, bool) {
	p, err := jwt.PrincipalFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return user.Principal{}, false
	}
	return p, true
}

// employeePrincipal is principal for self-service routes that need an employee profile.
func employeePrincipal(w http.ResponseWriter, r *http.Request) (user.Principal, bool) {
	p, ok := principal(w, r)
	if !ok {
		return user.Principal{}, false
	}
	if !p.HasEmployee() {
		response.HandleError(w, user.ErrEmployeeProfileRequired)
		return user.Principal{}, false
	}
	return p, true
}

// pathID reads a UUID path parameter.
func pathID(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	id := chi.URLParam(r, name)
	if _, err := uuid.Parse(id); err != nil {
		response.BadRequest(w, "Invalid "+name, map[string]string{name: "must be a valid UUID"})
		return "", false
	}
	return id, true
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		slog.Debug("request decode error", "path", r.URL.Path, "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return false
	}
	return true
}

func queryString(r *http.Request, key string) *string {
	if v := r.URL.Query().Get(key); v != "" {
		return &v
	}
	return nil
}

// queryInt returns nil for a missing parameter and writes a 400 for a malformed one.
func queryInt(w http.ResponseWriter, r *http.Request, key string) (*int, bool) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return nil, true
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		response.BadRequest(w, "Invalid query parameter", map[string]string{key: "must be a number"})
		return nil, false
	}
	return &n, true
}

func pageParams(w http.ResponseWriter, r *http.Request) (pagination.Params, bool) {
	var p pagination.Params

	page, ok := queryInt(w, r, "page")
	if !ok {
		return p, false
	}
	limit, ok := queryInt(w, r, "limit")
	if !ok {
		return p, false
	}

	if page != nil {
		p.Page = *page
	}
	if limit != nil {
		p.Limit = *limit
	}
	return p, true
}
