package users

import (
	"net/http"

	"orgadmin-service/internal/models/responses"
	"orgadmin-service/pkg/errors"
)

// HandleList returns every organization member as the dashboard's table
// consumes them. Always fetched fresh from the provider.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	if !h.requireOrg(w) {
		return
	}

	members, total, err := h.provider.ListAllMembers(r.Context(), h.orgID)
	if err != nil {
		errors.WriteError(w, errors.AsAppError(err))
		return
	}

	responses.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"data":       members,
		"totalCount": total,
	})
}
