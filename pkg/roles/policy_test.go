package roles

import (
	"reflect"
	"testing"
)

func TestCanDelete(t *testing.T) {
	tests := []struct {
		name       string
		actorRole  string
		targetRole string
		self       bool
		allowed    bool
		reason     string
	}{
		{"self-delete always allowed for lowest rank", Karyawan, Karyawan, true, true, ""},
		{"self-delete allowed for supervisor", Supervisor, Supervisor, true, true, ""},
		{"karyawan cannot delete others", Karyawan, Karyawan, false, false, ReasonInsufficientPrivilegeClass},
		{"supervisor cannot delete others", Supervisor, Karyawan, false, false, ReasonInsufficientPrivilegeClass},
		{"manajer deletes karyawan", Manajer, Karyawan, false, true, ""},
		{"manajer deletes supervisor", Manajer, Supervisor, false, true, ""},
		{"manajer cannot delete manajer", Manajer, Manajer, false, false, ReasonInsufficientRank},
		{"manajer cannot delete direktur", Manajer, Direktur, false, false, ReasonInsufficientRank},
		{"direktur deletes manajer", Direktur, Manajer, false, true, ""},
		{"eksekutif deletes direktur", Eksekutif, Direktur, false, true, ""},
		{"admin deletes eksekutif", Admin, Eksekutif, false, true, ""},
		{"admin cannot delete admin", Admin, Admin, false, false, ReasonInsufficientRank},
		{"unknown actor role is ranked lowest", "ghost", Karyawan, false, false, ReasonInsufficientPrivilegeClass},
		{"unknown target role loses to manajer", Manajer, "ghost", false, true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := CanDelete(tt.actorRole, tt.targetRole, tt.self)
			if d.Allowed != tt.allowed {
				t.Fatalf("CanDelete(%s, %s, %t).Allowed = %t, want %t",
					tt.actorRole, tt.targetRole, tt.self, d.Allowed, tt.allowed)
			}
			if d.Reason != tt.reason {
				t.Fatalf("CanDelete(%s, %s, %t).Reason = %q, want %q",
					tt.actorRole, tt.targetRole, tt.self, d.Reason, tt.reason)
			}
		})
	}
}

// Deleting is never symmetric: if A outranks B, A in the management class can
// delete B and B can never delete A.
func TestDeleteAsymmetry(t *testing.T) {
	all := All()
	for i, lower := range all {
		for _, higher := range all[i+1:] {
			if CanDelete(lower, higher, false).Allowed {
				t.Errorf("%s should never be able to delete %s", lower, higher)
			}
			if Rank(higher) >= 3 && !CanDelete(higher, lower, false).Allowed {
				t.Errorf("%s should be able to delete %s", higher, lower)
			}
		}
	}
}

func TestCanCreate(t *testing.T) {
	tests := []struct {
		actorRole     string
		requestedRole string
		allowed       bool
	}{
		{Admin, Eksekutif, true},
		{Admin, Karyawan, true},
		{Admin, Admin, false},
		{Eksekutif, Direktur, true},
		{Manajer, Supervisor, true},
		{Manajer, Manajer, false},
		{Supervisor, Karyawan, false}, // below management class
		{Karyawan, Karyawan, false},
	}

	for _, tt := range tests {
		if d := CanCreate(tt.actorRole, tt.requestedRole); d.Allowed != tt.allowed {
			t.Errorf("CanCreate(%s, %s) = %t, want %t",
				tt.actorRole, tt.requestedRole, d.Allowed, tt.allowed)
		}
	}
}

func TestCanChangeRole(t *testing.T) {
	tests := []struct {
		name          string
		actorRole     string
		targetRole    string
		requestedRole string
		self          bool
		allowed       bool
		reason        string
	}{
		{"self role-change denied even for admin", Admin, Admin, Karyawan, true, false, ReasonSelfRoleChange},
		{"cannot modify equal peer", Manajer, Manajer, Karyawan, false, false, ReasonInsufficientRank},
		{"cannot modify higher peer", Manajer, Eksekutif, Karyawan, false, false, ReasonInsufficientRank},
		{"cannot grant own rank", Manajer, Karyawan, Manajer, false, false, ReasonRequestedRankTooHigh},
		{"cannot grant above own rank", Manajer, Karyawan, Admin, false, false, ReasonRequestedRankTooHigh},
		{"one-step promotion below own rank", Manajer, Karyawan, Supervisor, false, true, ""},
		{"demotion of lower target", Admin, Eksekutif, Karyawan, false, true, ""},
		{"multi-step promotion stays below actor", Admin, Karyawan, Eksekutif, false, true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := CanChangeRole(tt.actorRole, tt.targetRole, tt.requestedRole, tt.self)
			if d.Allowed != tt.allowed || d.Reason != tt.reason {
				t.Fatalf("CanChangeRole(%s, %s, %s, %t) = (%t, %q), want (%t, %q)",
					tt.actorRole, tt.targetRole, tt.requestedRole, tt.self,
					d.Allowed, d.Reason, tt.allowed, tt.reason)
			}
		})
	}
}

func TestCanEditProfile(t *testing.T) {
	if !CanEditProfile(Karyawan, true).Allowed {
		t.Error("self-edit should always be allowed")
	}
	if !CanEditProfile(Admin, false).Allowed {
		t.Error("admin should be able to edit anyone")
	}
	for _, role := range []string{Karyawan, Supervisor, Manajer, Direktur, Eksekutif} {
		if CanEditProfile(role, false).Allowed {
			t.Errorf("%s should not be able to edit another user's profile", role)
		}
	}
}

func TestAssignableRoles(t *testing.T) {
	tests := []struct {
		name       string
		actorRole  string
		targetRole string
		self       bool
		expected   []string
	}{
		{"self-edit offers only current role", Admin, Admin, true, []string{Admin}},
		{"karyawan actor offers only current role", Karyawan, Karyawan, false, []string{Karyawan}},
		{"supervisor actor offers only current role", Supervisor, Karyawan, false, []string{Karyawan}},
		{"actor at target rank offers only current role", Manajer, Manajer, false, []string{Manajer}},
		{"manajer editing karyawan offers one step up", Manajer, Karyawan, false, []string{Karyawan, Supervisor}},
		{"manajer editing supervisor cannot promote to own rank", Manajer, Supervisor, false, []string{Karyawan, Supervisor}},
		{"admin editing karyawan offers one step up only", Admin, Karyawan, false, []string{Karyawan, Supervisor}},
		{"admin editing eksekutif offers everything below plus current", Admin, Eksekutif, false,
			[]string{Karyawan, Supervisor, Manajer, Direktur, Eksekutif}},
		{"eksekutif editing direktur cannot promote to own rank", Eksekutif, Direktur, false,
			[]string{Karyawan, Supervisor, Manajer, Direktur}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AssignableRoles(tt.actorRole, tt.targetRole, tt.self)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Fatalf("AssignableRoles(%s, %s, %t) = %v, want %v",
					tt.actorRole, tt.targetRole, tt.self, got, tt.expected)
			}
		})
	}
}

// Every role the offer rule suggests (other than keeping the current one)
// must pass the change policy, so the form can never offer a forbidden move.
func TestAssignableRolesConsistentWithChangePolicy(t *testing.T) {
	for _, actor := range All() {
		for _, target := range All() {
			for _, offered := range AssignableRoles(actor, target, false) {
				if offered == target {
					continue
				}
				if d := CanChangeRole(actor, target, offered, false); !d.Allowed {
					t.Errorf("offer rule suggests %s -> %s for actor %s but change policy denies: %s",
						target, offered, actor, d.Reason)
				}
			}
		}
	}
}
