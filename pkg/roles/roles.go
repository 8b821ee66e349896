package roles

import "strings"

// Role constants defining the hierarchy
const (
	Karyawan   = "karyawan"   // Staff member, lowest tier
	Supervisor = "supervisor" // Team supervisor
	Manajer    = "manajer"    // Department manager
	Direktur   = "direktur"   // Director
	Eksekutif  = "eksekutif"  // Executive
	Admin      = "admin"      // Full system administrator
)

// roleHierarchy defines the role hierarchy levels (higher number = more privileges).
// This is the single ranking table; no other package may declare one.
var roleHierarchy = map[string]int{
	Karyawan:   1,
	Supervisor: 2,
	Manajer:    3,
	Direktur:   4,
	Eksekutif:  5,
	Admin:      6,
}

// managementRank is the lowest rank allowed to delete or create other users.
const managementRank = 3 // manajer and above

// All returns every valid role ordered from lowest to highest rank.
func All() []string {
	return []string{Karyawan, Supervisor, Manajer, Direktur, Eksekutif, Admin}
}

// IsValid checks if a role is valid. Lookup is case-insensitive.
func IsValid(role string) bool {
	_, exists := roleHierarchy[strings.ToLower(role)]
	return exists
}

// Rank returns the hierarchy level for a role. Unknown roles rank 0,
// below every valid role, so they fail every "greater than" comparison.
func Rank(role string) int {
	if level, exists := roleHierarchy[strings.ToLower(role)]; exists {
		return level
	}
	return 0
}

// atRank returns the role name holding the given rank, or "" if none does.
func atRank(level int) string {
	for _, role := range All() {
		if roleHierarchy[role] == level {
			return role
		}
	}
	return ""
}
