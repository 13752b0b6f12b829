package access

import (
	"context"
	"errors"
	"strings"

	"voltledger/internal/models"
)

// OwnerChecker reports whether an identity has an owner profile.
type OwnerChecker interface {
	OwnerExists(ctx context.Context, id string) (bool, error)
}

// StationChecker reports whether an identity has a station profile.
type StationChecker interface {
	StationExists(ctx context.Context, id string) (bool, error)
}

// Guard resolves a caller identity to a role before mutating operations.
// The provider identity is fixed at construction time.
type Guard struct {
	providerID string
	owners     OwnerChecker
	stations   StationChecker
}

// NewGuard builds the access guard.
func NewGuard(providerID string, owners OwnerChecker, stations StationChecker) (*Guard, error) {
	providerID = strings.TrimSpace(providerID)
	if providerID == "" {
		return nil, errors.New("access: provider id required")
	}
	return &Guard{providerID: providerID, owners: owners, stations: stations}, nil
}

// ProviderID returns the privileged identity.
func (g *Guard) ProviderID() string {
	return g.providerID
}

// RequireProvider fails unless caller is the provider identity.
func (g *Guard) RequireProvider(caller string) error {
	if caller != g.providerID {
		return models.ErrForbidden
	}
	return nil
}

// RequireOwner fails unless caller has a registered owner profile.
func (g *Guard) RequireOwner(ctx context.Context, caller string) error {
	if caller == "" {
		return models.ErrForbidden
	}
	ok, err := g.owners.OwnerExists(ctx, caller)
	if err != nil {
		return err
	}
	if !ok {
		return models.ErrForbidden
	}
	return nil
}

// RequireStation fails unless caller has a registered station profile.
func (g *Guard) RequireStation(ctx context.Context, caller string) error {
	if caller == "" {
		return models.ErrForbidden
	}
	ok, err := g.stations.StationExists(ctx, caller)
	if err != nil {
		return err
	}
	if !ok {
		return models.ErrForbidden
	}
	return nil
}
