package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"orgadmin-service/internal/config"
	"orgadmin-service/internal/models/entities"
	"orgadmin-service/pkg/errors"
)

// membershipRolePrefix is how the provider namespaces organization roles.
const membershipRolePrefix = "org:"

// ProviderService is the HTTP client for the hosted identity provider's
// management API. The provider is the system of record; nothing it returns
// is cached here.
type ProviderService struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewProviderService(cfg *config.Config) *ProviderService {
	s := &ProviderService{
		baseURL:    strings.TrimRight(cfg.ProviderAPIURL, "/"),
		apiKey:     cfg.ProviderAPIKey,
		httpClient: &http.Client{Timeout: cfg.ProviderTimeout},
	}

	// Prefer OAuth2 client credentials for the management API when
	// configured; a static API key is the fallback (and the test path).
	if cfg.ProviderTokenURL != "" {
		cc := clientcredentials.Config{
			ClientID:     cfg.ProviderClientID,
			ClientSecret: cfg.ProviderClientSecret,
			TokenURL:     cfg.ProviderTokenURL,
		}
		ctx := context.WithValue(context.Background(), oauth2.HTTPClient, s.httpClient)
		s.httpClient = cc.Client(ctx)
		s.httpClient.Timeout = cfg.ProviderTimeout
	}

	return s
}

// --- wire types ---

type providerEmail struct {
	ID           string `json:"id"`
	EmailAddress string `json:"email_address"`
	Verified     bool   `json:"verified"`
}

type providerUser struct {
	ID                    string            `json:"id"`
	Username              string            `json:"username"`
	FirstName             string            `json:"first_name"`
	LastName              string            `json:"last_name"`
	ImageURL              string            `json:"image_url"`
	EmailAddresses        []providerEmail   `json:"email_addresses"`
	PrimaryEmailAddressID string            `json:"primary_email_address_id"`
	PublicMetadata        map[string]string `json:"public_metadata"`
	CreatedAt             time.Time         `json:"created_at"`
	UpdatedAt             time.Time         `json:"updated_at"`
}

func (u providerUser) primaryEmail() string {
	for _, e := range u.EmailAddresses {
		if e.ID == u.PrimaryEmailAddressID {
			return e.EmailAddress
		}
	}
	if len(u.EmailAddresses) > 0 {
		return u.EmailAddresses[0].EmailAddress
	}
	return ""
}

func (u providerUser) toAccount() *entities.Account {
	return &entities.Account{
		ID:        u.ID,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.primaryEmail(),
		ImageURL:  u.ImageURL,
		Metadata:  u.PublicMetadata,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

type publicUserData struct {
	UserID     string `json:"user_id"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Identifier string `json:"identifier"`
	ImageURL   string `json:"image_url"`
}

// Membership relates one account to the organization with exactly one role.
type Membership struct {
	ID             string         `json:"id"`
	Role           string         `json:"role"`
	PublicUserData publicUserData `json:"public_user_data"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// BareRole strips the provider's role namespace, e.g. "org:manajer" -> "manajer".
func (m Membership) BareRole() string {
	return strings.TrimPrefix(m.Role, membershipRolePrefix)
}

type Session struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type listResponse[T any] struct {
	Data       []T   `json:"data"`
	TotalCount int64 `json:"total_count"`
}

type providerErrorBody struct {
	Errors []struct {
		Message string `json:"message"`
		Code    string `json:"code"`
	} `json:"errors"`
	Message string `json:"message"`
}

// --- user operations ---

type CreateAccountParams struct {
	Email     string
	Username  string
	Password  string
	FirstName string
	LastName  string
	Address   string
}

func (s *ProviderService) CreateUser(ctx context.Context, p CreateAccountParams) (*entities.Account, error) {
	body := map[string]interface{}{
		"email_address": []string{p.Email},
		"username":      p.Username,
		"password":      p.Password,
		"first_name":    p.FirstName,
		"last_name":     p.LastName,
		"public_metadata": map[string]string{
			entities.MetadataAddressKey: p.Address,
		},
	}

	var user providerUser
	if err := s.do(ctx, http.MethodPost, "/users", body, &user); err != nil {
		return nil, err
	}
	return user.toAccount(), nil
}

func (s *ProviderService) GetUser(ctx context.Context, userID string) (*entities.Account, error) {
	var user providerUser
	if err := s.do(ctx, http.MethodGet, "/users/"+userID, nil, &user); err != nil {
		return nil, err
	}
	return user.toAccount(), nil
}

// UpdateUser applies a partial update; the caller builds the field map so one
// method serves name, username, password and primary-email updates.
func (s *ProviderService) UpdateUser(ctx context.Context, userID string, fields map[string]interface{}) error {
	return s.do(ctx, http.MethodPatch, "/users/"+userID, fields, nil)
}

func (s *ProviderService) DeleteUser(ctx context.Context, userID string) error {
	return s.do(ctx, http.MethodDelete, "/users/"+userID, nil, nil)
}

func (s *ProviderService) ListUsersByEmail(ctx context.Context, email string) ([]entities.Account, error) {
	return s.listUsers(ctx, url.Values{"email_address": {email}})
}

func (s *ProviderService) ListUsersByUsername(ctx context.Context, username string) ([]entities.Account, error) {
	return s.listUsers(ctx, url.Values{"username": {username}})
}

func (s *ProviderService) listUsers(ctx context.Context, query url.Values) ([]entities.Account, error) {
	var out listResponse[providerUser]
	if err := s.do(ctx, http.MethodGet, "/users?"+query.Encode(), nil, &out); err != nil {
		return nil, err
	}
	accounts := make([]entities.Account, 0, len(out.Data))
	for _, u := range out.Data {
		accounts = append(accounts, *u.toAccount())
	}
	return accounts, nil
}

// CreateEmailAddress registers a new verified address for the user and
// returns its identifier so it can be promoted to primary.
func (s *ProviderService) CreateEmailAddress(ctx context.Context, userID, email string) (string, error) {
	body := map[string]interface{}{
		"user_id":       userID,
		"email_address": email,
		"verified":      true,
	}
	var created providerEmail
	if err := s.do(ctx, http.MethodPost, "/email_addresses", body, &created); err != nil {
		return "", err
	}
	return created.ID, nil
}

func (s *ProviderService) UpdateUserMetadata(ctx context.Context, userID string, metadata map[string]string) error {
	body := map[string]interface{}{
		"public_metadata": metadata,
	}
	return s.do(ctx, http.MethodPatch, "/users/"+userID+"/metadata", body, nil)
}

// --- membership operations ---

func (s *ProviderService) ListMemberships(ctx context.Context, orgID string, limit, offset int) ([]Membership, int, error) {
	query := url.Values{
		"limit":  {fmt.Sprint(limit)},
		"offset": {fmt.Sprint(offset)},
	}
	var out listResponse[Membership]
	path := "/organizations/" + orgID + "/memberships?" + query.Encode()
	if err := s.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, 0, err
	}
	return out.Data, int(out.TotalCount), nil
}

func (s *ProviderService) CreateMembership(ctx context.Context, orgID, userID, role string) (*Membership, error) {
	body := map[string]interface{}{
		"user_id": userID,
		"role":    membershipRolePrefix + role,
	}
	var m Membership
	if err := s.do(ctx, http.MethodPost, "/organizations/"+orgID+"/memberships", body, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *ProviderService) UpdateMembershipRole(ctx context.Context, orgID, userID, role string) error {
	body := map[string]interface{}{
		"role": membershipRolePrefix + role,
	}
	return s.do(ctx, http.MethodPatch, "/organizations/"+orgID+"/memberships/"+userID, body, nil)
}

// --- session operations ---

func (s *ProviderService) ListSessions(ctx context.Context, userID string) ([]Session, error) {
	query := url.Values{"user_id": {userID}, "status": {"active"}}
	var out listResponse[Session]
	if err := s.do(ctx, http.MethodGet, "/sessions?"+query.Encode(), nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (s *ProviderService) RevokeSession(ctx context.Context, sessionID string) error {
	return s.do(ctx, http.MethodPost, "/sessions/"+sessionID+"/revoke", nil, nil)
}

// --- transport ---

func (s *ProviderService) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return errors.InternalServerError("failed to marshal provider request", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, reqBody)
	if err != nil {
		return errors.InternalServerError("failed to build provider request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return errors.BadGateway("identity provider unreachable", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil {
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return errors.BadGateway("failed to decode provider response", err)
		}
		return nil
	}

	return s.mapError(resp)
}

// mapError translates provider failures into the local error taxonomy.
// The provider's message is passed through when one is present.
func (s *ProviderService) mapError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))

	message := ""
	var parsed providerErrorBody
	if err := json.Unmarshal(raw, &parsed); err == nil {
		if len(parsed.Errors) > 0 {
			message = parsed.Errors[0].Message
		} else {
			message = parsed.Message
		}
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		if message == "" {
			message = "resource not found at identity provider"
		}
		return errors.NotFound(message)
	case resp.StatusCode == http.StatusConflict,
		resp.StatusCode == http.StatusUnprocessableEntity && strings.Contains(strings.ToLower(message), "taken"),
		resp.StatusCode == http.StatusUnprocessableEntity && strings.Contains(strings.ToLower(message), "already exists"):
		if message == "" {
			message = "resource already exists at identity provider"
		}
		return errors.Conflict(message)
	case resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnprocessableEntity:
		if message == "" {
			message = "identity provider rejected the request"
		}
		return errors.BadRequest(message)
	default:
		if message == "" {
			message = fmt.Sprintf("identity provider returned status %d", resp.StatusCode)
		}
		return errors.BadGateway(message, nil)
	}
}
