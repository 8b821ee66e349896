package entities

import "time"

// Account is the provider-owned user record. It is never stored locally;
// every read goes back to the provider.
type Account struct {
	ID        string            `json:"id"`
	Username  string            `json:"username"`
	FirstName string            `json:"first_name"`
	LastName  string            `json:"last_name"`
	Email     string            `json:"email"`
	ImageURL  string            `json:"image_url,omitempty"`
	Metadata  map[string]string `json:"public_metadata,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// FullName joins the name parts the way the dashboard displays them.
func (a Account) FullName() string {
	if a.FirstName == "" {
		return a.LastName
	}
	if a.LastName == "" {
		return a.FirstName
	}
	return a.FirstName + " " + a.LastName
}

// Address is stored as provider-side public metadata under this key.
const MetadataAddressKey = "address"

// Member is one organization membership row as the dashboard consumes it:
// the membership role plus the embedded public account data.
type Member struct {
	UserID    string    `json:"userId"`
	Username  string    `json:"username,omitempty"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	FullName  string    `json:"fullName"`
	Email     string    `json:"email"`
	ImageURL  string    `json:"imageUrl,omitempty"`
	Address   string    `json:"address,omitempty"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Actor is the session-derived identity of the user initiating a mutation.
// Role is resolved server-side from the organization membership list; it is
// never taken from the request body.
type Actor struct {
	UserID string
	Role   string
}
