// Package request holds helpers shared by the HTTP handlers: role-header
// parsing, request tokens and JSON writing.
package request

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/tawsil-ops/ops-atlas/pkg/models/domain"
)

// RolesHeader carries the caller's role set, comma separated. Authentication
// itself is owned by the gateway in front of this service.
const RolesHeader = "X-Roles"

// TokenHeader carries the SPA's per-request token. It is echoed back in the
// response so a reply that arrives after a newer request can be discarded.
const TokenHeader = "X-Request-Token"

func ParseRoles(r *http.Request) []domain.Role {
	header := r.Header.Get(RolesHeader)
	if header == "" {
		return nil
	}

	var roles []domain.Role
	for _, part := range strings.Split(header, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			roles = append(roles, domain.Role(part))
		}
	}
	return roles
}

// Token returns the caller's request token, minting one when the caller sent
// none.
func Token(r *http.Request) string {
	if token := r.Header.Get(TokenHeader); token != "" {
		return token
	}
	return uuid.NewString()
}

func WriteJSON(w http.ResponseWriter, r *http.Request, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to encode response")
	}
}

type errorPayload struct {
	Error string `json:"error"`
}

func WriteError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	WriteJSON(w, r, status, errorPayload{Error: msg})
}
