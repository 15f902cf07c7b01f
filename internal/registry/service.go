package registry

import (
	"context"
	"errors"
	"fmt"

	"rideescrow/internal/shared/logger"
)

// Service is the Participant Registry: two independent role memberships
// keyed by an opaque identity.
type Service struct {
	repo Repository
	log  *logger.Logger
}

func NewService(repo Repository, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// Register adds the role to the identity. Registering the same role twice
// fails; registering the second role for an existing identity succeeds.
func (s *Service) Register(ctx context.Context, id string, role Role) error {
	if err := s.repo.Register(ctx, id, role); err != nil {
		if errors.Is(err, ErrAlreadyRegistered) {
			return fmt.Errorf("%w: %s", ErrAlreadyRegistered, role)
		}
		return fmt.Errorf("register participant: %w", err)
	}

	s.log.Info(logger.Entry{
		Action:  "participant_registered",
		Message: string(role),
		Additional: map[string]any{
			"participant_id": id,
		},
	})
	return nil
}

// IsRider reports rider membership. Unknown identities are simply not riders.
func (s *Service) IsRider(ctx context.Context, id string) (bool, error) {
	return s.hasRole(ctx, id, RoleRider)
}

// IsDriver reports driver membership.
func (s *Service) IsDriver(ctx context.Context, id string) (bool, error) {
	return s.hasRole(ctx, id, RoleDriver)
}

func (s *Service) hasRole(ctx context.Context, id string, role Role) (bool, error) {
	p, err := s.repo.Find(ctx, id)
	if err != nil {
		if errors.Is(err, ErrParticipantNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("find participant: %w", err)
	}
	return p.HasRole(role), nil
}
