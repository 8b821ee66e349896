package users

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"orgadmin-service/internal/middleware"
	"orgadmin-service/internal/models/responses"
	"orgadmin-service/pkg/errors"
	"orgadmin-service/pkg/roles"
)

// HandleDelete removes an account from the provider. The provider cascades
// the membership removal. Anyone may delete themself; deleting someone else
// goes through the hierarchy policy.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	targetID := chi.URLParam(r, "id")
	if targetID == "" {
		errors.WriteError(w, errors.BadRequest("missing user id"))
		return
	}

	if !h.requireOrg(w) {
		return
	}

	claims := middleware.GetClaims(r)
	if claims == nil {
		errors.WriteError(w, errors.Unauthorized("missing session"))
		return
	}
	self := claims.Subject == targetID

	if !self {
		actor := h.resolveActor(w, r)
		if actor == nil {
			return
		}

		targetRole, err := h.provider.ResolveMemberRole(r.Context(), h.orgID, targetID)
		if err != nil {
			errors.WriteError(w, errors.AsAppError(err))
			return
		}

		if decision := roles.CanDelete(actor.Role, targetRole, false); !decision.Allowed {
			switch decision.Reason {
			case roles.ReasonInsufficientPrivilegeClass:
				writeDenial(w, fmt.Sprintf("%s role can only delete their own account", actor.Role), decision)
			default:
				writeDenial(w, fmt.Sprintf("You cannot delete a user with equal or higher role (%s)", targetRole), decision)
			}
			return
		}
	}

	if !h.claimIdempotencyKey(w, r) {
		return
	}

	if err := h.provider.DeleteUser(r.Context(), targetID); err != nil {
		slog.Error("failed to delete user", "user_id", targetID, "error", err)
		errors.WriteError(w, errors.AsAppError(err))
		return
	}

	slog.Info("user deleted", "user_id", targetID, "actor_id", claims.Subject, "self", self)

	responses.WriteSuccess(w, http.StatusOK, "User deleted successfully", responses.DeleteUserData{
		UserID: targetID,
	})
}
