package services

import (
	"context"

	"orgadmin-service/internal/models/entities"
	"orgadmin-service/pkg/errors"
)

// membershipPageSize bounds each provider page when walking the membership
// list. The provider caps list sizes, so resolution pages instead of
// assuming one page covers the whole organization.
const membershipPageSize = 100

// ResolveMemberRole walks the organization's membership list and returns the
// bare role of the member whose embedded public user data matches userID.
func (s *ProviderService) ResolveMemberRole(ctx context.Context, orgID, userID string) (string, error) {
	offset := 0
	for {
		page, total, err := s.ListMemberships(ctx, orgID, membershipPageSize, offset)
		if err != nil {
			return "", err
		}
		for _, m := range page {
			if m.PublicUserData.UserID == userID {
				return m.BareRole(), nil
			}
		}
		offset += len(page)
		if len(page) == 0 || offset >= total {
			return "", errors.NotFound("target user not found in organization")
		}
	}
}

// ListAllMembers pages through every membership and flattens the rows into
// the shape the dashboard's data table renders.
func (s *ProviderService) ListAllMembers(ctx context.Context, orgID string) ([]entities.Member, int, error) {
	var members []entities.Member
	offset := 0
	total := 0
	for {
		page, pageTotal, err := s.ListMemberships(ctx, orgID, membershipPageSize, offset)
		if err != nil {
			return nil, 0, err
		}
		total = pageTotal
		for _, m := range page {
			members = append(members, memberRow(m))
		}
		offset += len(page)
		if len(page) == 0 || offset >= total {
			return members, total, nil
		}
	}
}

func memberRow(m Membership) entities.Member {
	fullName := m.PublicUserData.FirstName
	if m.PublicUserData.LastName != "" {
		if fullName != "" {
			fullName += " "
		}
		fullName += m.PublicUserData.LastName
	}
	return entities.Member{
		UserID:    m.PublicUserData.UserID,
		FirstName: m.PublicUserData.FirstName,
		LastName:  m.PublicUserData.LastName,
		FullName:  fullName,
		Email:     m.PublicUserData.Identifier,
		ImageURL:  m.PublicUserData.ImageURL,
		Role:      m.BareRole(),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
