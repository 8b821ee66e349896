package users

import (
	"net/http"

	"orgadmin-service/internal/middleware"
	"orgadmin-service/internal/models/entities"
	"orgadmin-service/pkg/errors"
	"orgadmin-service/pkg/roles"

	"orgadmin-service/internal/services"
)

// Handler owns the organization user endpoints. Every mutation runs the same
// pipeline: validate, resolve the actor, apply the authorization policy, call
// the provider, translate the outcome into the uniform envelope.
type Handler struct {
	provider    *services.ProviderService
	idempotency services.IdempotencyStore
	orgID       string
}

func New(provider *services.ProviderService, idempotency services.IdempotencyStore, orgID string) *Handler {
	return &Handler{
		provider:    provider,
		idempotency: idempotency,
		orgID:       orgID,
	}
}

// requireOrg fails closed when no organization is configured; no provider
// call is attempted in that case.
func (h *Handler) requireOrg(w http.ResponseWriter) bool {
	if h.orgID == "" {
		errors.WriteError(w, errors.BadRequest(
			"Organization ID not configured. Please set ORGANIZATION_ID in your environment variables."))
		return false
	}
	return true
}

// resolveActor derives the acting user from the verified session and
// re-resolves their role from the membership list. Token role claims are
// never trusted for authorization.
func (h *Handler) resolveActor(w http.ResponseWriter, r *http.Request) *entities.Actor {
	claims := middleware.GetClaims(r)
	if claims == nil {
		errors.WriteError(w, errors.Unauthorized("missing session"))
		return nil
	}

	role, err := h.provider.ResolveMemberRole(r.Context(), h.orgID, claims.Subject)
	if err != nil {
		appErr := errors.AsAppError(err)
		if appErr.Code == http.StatusNotFound {
			errors.WriteError(w, errors.Forbidden("requesting user is not a member of the organization"))
			return nil
		}
		errors.WriteError(w, appErr)
		return nil
	}

	return &entities.Actor{UserID: claims.Subject, Role: role}
}

// claimIdempotencyKey enforces the optional Idempotency-Key header. A second
// use of a live key is rejected as a duplicate submission.
func (h *Handler) claimIdempotencyKey(w http.ResponseWriter, r *http.Request) bool {
	key := r.Header.Get("Idempotency-Key")
	if key == "" || h.idempotency == nil {
		return true
	}
	claimed, err := h.idempotency.Claim(r.Context(), key)
	if err != nil {
		errors.WriteError(w, errors.InternalServerError("failed to check idempotency key", err))
		return false
	}
	if !claimed {
		errors.WriteError(w, errors.Conflict("duplicate request: idempotency key already used"))
		return false
	}
	return true
}

// writeDenial emits a 403 naming the violated rule.
func writeDenial(w http.ResponseWriter, message string, decision roles.Decision) {
	errors.WriteError(w, errors.Forbidden(message).WithField("reason", decision.Reason))
}
