package roles

import "strings"

// Deny reasons returned by the policy functions. Handlers surface these in
// error responses so a denial always names the violated rule.
const (
	ReasonInsufficientPrivilegeClass = "insufficient-privilege-class"
	ReasonInsufficientRank           = "insufficient-rank"
	ReasonSelfRoleChange             = "self-role-change"
	ReasonRequestedRankTooHigh       = "requested-rank-too-high"
)

// Decision is the result of a policy check.
type Decision struct {
	Allowed bool
	Reason  string
}

func allow() Decision {
	return Decision{Allowed: true}
}

func deny(reason string) Decision {
	return Decision{Reason: reason}
}

// CanDelete decides whether an actor may delete the target account.
// Anyone may delete their own account. Deleting someone else requires the
// management class (manajer and above) and a rank strictly above the target's.
func CanDelete(actorRole, targetRole string, self bool) Decision {
	if self {
		return allow()
	}
	if Rank(actorRole) < managementRank {
		return deny(ReasonInsufficientPrivilegeClass)
	}
	if Rank(actorRole) <= Rank(targetRole) {
		return deny(ReasonInsufficientRank)
	}
	return allow()
}

// CanCreate decides whether an actor may create a new account with the
// requested role. Creation grants a role, so the same constraints apply as
// granting one: management class only, and the granted rank must stay
// strictly below the actor's own.
func CanCreate(actorRole, requestedRole string) Decision {
	if Rank(actorRole) < managementRank {
		return deny(ReasonInsufficientPrivilegeClass)
	}
	if Rank(actorRole) <= Rank(requestedRole) {
		return deny(ReasonRequestedRankTooHigh)
	}
	return allow()
}

// CanChangeRole decides whether an actor may change the target's role from
// targetRole to requestedRole. Self role-change is never permitted. The actor
// must outrank both the target's current role and the requested one, which
// permits promotion and demotion of strictly lower-ranked targets as long as
// the result stays strictly below the actor's own rank.
func CanChangeRole(actorRole, targetRole, requestedRole string, self bool) Decision {
	if self {
		return deny(ReasonSelfRoleChange)
	}
	if Rank(actorRole) <= Rank(targetRole) {
		return deny(ReasonInsufficientRank)
	}
	if Rank(actorRole) <= Rank(requestedRole) {
		return deny(ReasonRequestedRankTooHigh)
	}
	return allow()
}

// CanEditProfile decides whether an actor may update the target's basic
// account fields (names, email, username, password, address). Allowed for
// self-edits and for the top administrative rank.
func CanEditProfile(actorRole string, self bool) Decision {
	if self {
		return allow()
	}
	if strings.ToLower(actorRole) != Admin {
		return deny(ReasonInsufficientRank)
	}
	return allow()
}

// AssignableRoles returns the roles an edit form should offer for the target,
// ordered from lowest to highest rank. It mirrors CanChangeRole: every role it
// offers (other than the target's current one) passes that check.
//
//   - Self-edit: only the current role, no change possible.
//   - Actors at or below supervisor: only the current role.
//   - Actors at or below the target: only the current role.
//   - Otherwise: the current role, every role strictly below the target's
//     rank, and the single role one rank above the target provided it is
//     still strictly below the actor's own rank.
func AssignableRoles(actorRole, targetRole string, self bool) []string {
	current := strings.ToLower(targetRole)
	actorRank := Rank(actorRole)
	targetRank := Rank(targetRole)

	if self || actorRank <= Rank(Supervisor) || actorRank <= targetRank {
		return []string{current}
	}

	var available []string
	for _, role := range All() {
		if roleHierarchy[role] <= targetRank {
			available = append(available, role)
		}
	}
	if up := atRank(targetRank + 1); up != "" && targetRank+1 < actorRank {
		available = append(available, up)
	}
	return available
}
