package users

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"orgadmin-service/internal/middleware"
	"orgadmin-service/internal/models/entities"
	"orgadmin-service/internal/models/requests"
	"orgadmin-service/internal/models/responses"
	"orgadmin-service/pkg/errors"
	"orgadmin-service/pkg/roles"
)

// HandleUpdate applies a partial update: role change through the membership,
// basic fields and email through the account, password with a forced global
// sign-out, address through public metadata.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	targetID := chi.URLParam(r, "id")
	if targetID == "" {
		errors.WriteError(w, errors.BadRequest("missing user id"))
		return
	}

	var req requests.UpdateUserRequest
	if err := requests.ParseAndValidateJSON(r, &req); err != nil {
		errors.WriteError(w, errors.BadRequest(err.Error()))
		return
	}

	claims := middleware.GetClaims(r)
	if claims == nil {
		errors.WriteError(w, errors.Unauthorized("missing session"))
		return
	}
	self := claims.Subject == targetID

	ctx := r.Context()
	var fields responses.UpdatedFields
	data := responses.UpdateUserData{UserID: targetID}

	roleChange := req.Role != nil
	touchesProfile := req.FirstName != nil || req.LastName != nil || req.Email != nil ||
		req.Username != nil || req.Password != nil || req.Address != nil

	// Every policy check on the request must pass before the first provider
	// mutation, so a denial never leaves partial state behind.
	var actor *entities.Actor
	if roleChange || (touchesProfile && !self) {
		if !h.requireOrg(w) {
			return
		}
		if actor = h.resolveActor(w, r); actor == nil {
			return
		}
	}

	// Role change goes through the hierarchy policy against the target's
	// current membership role.
	if roleChange {
		targetRole, err := h.provider.ResolveMemberRole(ctx, h.orgID, targetID)
		if err != nil {
			errors.WriteError(w, errors.AsAppError(err))
			return
		}

		if decision := roles.CanChangeRole(actor.Role, targetRole, *req.Role, self); !decision.Allowed {
			switch decision.Reason {
			case roles.ReasonSelfRoleChange:
				writeDenial(w, "You cannot change your own role", decision)
			case roles.ReasonInsufficientRank:
				writeDenial(w, fmt.Sprintf("You cannot modify a user with equal or higher role (%s)", targetRole), decision)
			default:
				writeDenial(w, "You cannot assign a role equal to or higher than your own", decision)
			}
			return
		}
	}

	// Basic account data is gated by the profile rule: self-edit or the top
	// administrative rank.
	if touchesProfile && !self {
		if decision := roles.CanEditProfile(actor.Role, false); !decision.Allowed {
			writeDenial(w, "Only administrators can edit another user's account details", decision)
			return
		}
	}

	if !h.claimIdempotencyKey(w, r) {
		return
	}

	if roleChange {
		if err := h.provider.UpdateMembershipRole(ctx, h.orgID, targetID, *req.Role); err != nil {
			errors.WriteError(w, errors.AsAppError(err))
			return
		}
		fields.Role = true
	}

	update := map[string]interface{}{}
	if req.FirstName != nil {
		update["first_name"] = *req.FirstName
		fields.FirstName = true
	}
	if req.LastName != nil {
		update["last_name"] = *req.LastName
		fields.LastName = true
	}
	if req.Username != nil {
		update["username"] = *req.Username
		fields.Username = true
	}

	// Email change: register the new address as verified, then promote it to
	// primary alongside any pending basic-field update.
	if req.Email != nil {
		emailID, err := h.provider.CreateEmailAddress(ctx, targetID, *req.Email)
		if err != nil {
			appErr := errors.AsAppError(err)
			if appErr.Code == http.StatusConflict {
				errors.WriteError(w, errors.Conflict("This email address is already in use"))
				return
			}
			errors.WriteError(w, appErr)
			return
		}
		update["primary_email_address_id"] = emailID
		fields.Email = true
	}

	if len(update) > 0 {
		if err := h.provider.UpdateUser(ctx, targetID, update); err != nil {
			errors.WriteError(w, errors.AsAppError(err))
			return
		}
	}

	// Password change forces a global sign-out. Individual revoke failures
	// are logged and counted, never fatal.
	if req.Password != nil {
		if err := h.provider.UpdateUser(ctx, targetID, map[string]interface{}{
			"password": *req.Password,
		}); err != nil {
			errors.WriteError(w, errors.AsAppError(err))
			return
		}
		fields.Password = true

		revoked, failed := h.revokeAllSessions(r, targetID)
		data.SessionsRevoked = revoked
		data.SessionsRevokeFailed = failed
	}

	if req.Address != nil {
		err := h.provider.UpdateUserMetadata(ctx, targetID, map[string]string{
			entities.MetadataAddressKey: *req.Address,
		})
		if err != nil {
			errors.WriteError(w, errors.AsAppError(err))
			return
		}
		fields.Address = true
	}

	slog.Info("user updated", "user_id", targetID, "actor_id", claims.Subject, "self", self)

	data.UpdatedFields = fields
	responses.WriteSuccess(w, http.StatusOK, "User updated successfully", data)
}

// revokeAllSessions enumerates the target's active sessions and revokes each
// one sequentially, continuing past individual failures.
func (h *Handler) revokeAllSessions(r *http.Request, userID string) (revoked, failed int) {
	ctx := r.Context()

	sessions, err := h.provider.ListSessions(ctx, userID)
	if err != nil {
		slog.Error("failed to list sessions for revocation", "user_id", userID, "error", err)
		return 0, 0
	}

	for _, session := range sessions {
		if err := h.provider.RevokeSession(ctx, session.ID); err != nil {
			slog.Error("failed to revoke session", "user_id", userID, "session_id", session.ID, "error", err)
			failed++
			continue
		}
		revoked++
	}
	return revoked, failed
}
