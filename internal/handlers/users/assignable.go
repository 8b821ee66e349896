package users

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"orgadmin-service/internal/models/responses"
	"orgadmin-service/pkg/errors"
	"orgadmin-service/pkg/roles"
)

// HandleAssignableRoles returns the roles the edit form may offer for the
// target user. Advisory only: the update endpoint re-checks every change, so
// this can never widen what the policy allows.
func (h *Handler) HandleAssignableRoles(w http.ResponseWriter, r *http.Request) {
	targetID := chi.URLParam(r, "id")
	if targetID == "" {
		errors.WriteError(w, errors.BadRequest("missing user id"))
		return
	}

	if !h.requireOrg(w) {
		return
	}

	actor := h.resolveActor(w, r)
	if actor == nil {
		return
	}

	targetRole, err := h.provider.ResolveMemberRole(r.Context(), h.orgID, targetID)
	if err != nil {
		errors.WriteError(w, errors.AsAppError(err))
		return
	}

	self := actor.UserID == targetID
	responses.WriteSuccess(w, http.StatusOK, "", responses.AssignableRolesData{
		UserID: targetID,
		Roles:  roles.AssignableRoles(actor.Role, targetRole, self),
	})
}
