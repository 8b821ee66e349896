package responses

type CreateUserData struct {
	UserID   string `json:"userId"`
	Email    string `json:"email"`
	Username string `json:"username"`
	FullName string `json:"fullName"`
	Role     string `json:"role"`
}

// UpdatedFields reports which fields a PATCH actually touched.
type UpdatedFields struct {
	FirstName bool `json:"firstName"`
	LastName  bool `json:"lastName"`
	Email     bool `json:"email"`
	Username  bool `json:"username"`
	Password  bool `json:"password"`
	Address   bool `json:"address"`
	Role      bool `json:"role"`
}

type UpdateUserData struct {
	UserID        string        `json:"userId"`
	UpdatedFields UpdatedFields `json:"updatedFields"`
	// Session revocation outcome of a password change. Individual revoke
	// failures do not fail the update; callers see the counts instead.
	SessionsRevoked      int `json:"sessionsRevoked,omitempty"`
	SessionsRevokeFailed int `json:"sessionsRevokeFailed,omitempty"`
}

type DeleteUserData struct {
	UserID string `json:"userId"`
}

type AssignableRolesData struct {
	UserID string   `json:"userId"`
	Roles  []string `json:"roles"`
}
