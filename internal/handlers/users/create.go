package users

import (
	"fmt"
	"log/slog"
	"net/http"

	"orgadmin-service/internal/models/requests"
	"orgadmin-service/internal/models/responses"
	"orgadmin-service/internal/services"
	"orgadmin-service/pkg/errors"
	"orgadmin-service/pkg/roles"
)

// HandleCreate creates a new account at the provider and adds it to the
// organization with the requested role.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req requests.CreateUserRequest
	if err := requests.ParseAndValidateJSON(r, &req); err != nil {
		errors.WriteError(w, errors.BadRequest(err.Error()))
		return
	}

	if !h.requireOrg(w) {
		return
	}

	actor := h.resolveActor(w, r)
	if actor == nil {
		return
	}

	if decision := roles.CanCreate(actor.Role, req.Role); !decision.Allowed {
		switch decision.Reason {
		case roles.ReasonInsufficientPrivilegeClass:
			writeDenial(w, fmt.Sprintf("%s role cannot create accounts", actor.Role), decision)
		default:
			writeDenial(w, "You cannot create a user with a role equal to or higher than your own", decision)
		}
		return
	}

	ctx := r.Context()

	// Uniqueness pre-checks fail closed: a lookup error aborts the create.
	// The provider's own constraint remains the final authority either way.
	existingByEmail, err := h.provider.ListUsersByEmail(ctx, req.Email)
	if err != nil {
		errors.WriteError(w, errors.AsAppError(err))
		return
	}
	if len(existingByEmail) > 0 {
		errors.WriteError(w, errors.Conflict("Email already exists").
			WithField("error", fmt.Sprintf("A user with email %q already exists in the system.", req.Email)))
		return
	}

	existingByUsername, err := h.provider.ListUsersByUsername(ctx, req.Username)
	if err != nil {
		errors.WriteError(w, errors.AsAppError(err))
		return
	}
	if len(existingByUsername) > 0 {
		errors.WriteError(w, errors.Conflict("Username already exists").
			WithField("error", fmt.Sprintf("Username %q is already taken. Please choose a different username.", req.Username)))
		return
	}

	if !h.claimIdempotencyKey(w, r) {
		return
	}

	account, err := h.provider.CreateUser(ctx, services.CreateAccountParams{
		Email:     req.Email,
		Username:  req.Username,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Address:   req.Address,
	})
	if err != nil {
		errors.WriteError(w, errors.AsAppError(err))
		return
	}

	membership, err := h.provider.CreateMembership(ctx, h.orgID, account.ID, req.Role)
	if err != nil {
		slog.Error("account created but membership failed", "user_id", account.ID, "error", err)
		errors.WriteError(w, errors.AsAppError(err))
		return
	}

	slog.Info("user created", "user_id", account.ID, "email", account.Email, "role", membership.BareRole(), "actor_id", actor.UserID)

	responses.WriteSuccess(w, http.StatusCreated, "User created successfully", responses.CreateUserData{
		UserID:   account.ID,
		Email:    account.Email,
		Username: account.Username,
		FullName: account.FullName(),
		Role:     membership.BareRole(),
	})
}
