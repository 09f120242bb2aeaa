package registration

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Notifier raises the notifications driven by the registration workflow.
// The pending notification is broadcast to administrators; decision
// notifications target the requesting user.
type Notifier interface {
	RegistrationSubmitted(ctx context.Context, registrationID uuid.UUID, name, email string) error
	RegistrationApproved(ctx context.Context, registrationID uuid.UUID, targetUserID, name, role string) error
	RegistrationRejected(ctx context.Context, registrationID uuid.UUID, targetUserID, name string) error
}

// SubmitInput is the access-request submission shape.
type SubmitInput struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

type Service struct {
	repo     Repository
	notifier Notifier
	logger   zerolog.Logger
}

func NewService(repo Repository, notifier Notifier, logger zerolog.Logger) *Service {
	return &Service{repo: repo, notifier: notifier, logger: logger}
}

// Submit records a new access request and alerts administrators.
func (s *Service) Submit(ctx context.Context, in SubmitInput) (*PendingRegistration, error) {
	if in.UserID == "" {
		return nil, fmt.Errorf("user_id is required")
	}
	if in.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if in.Email == "" {
		return nil, fmt.Errorf("email is required")
	}

	reg := &PendingRegistration{
		UserID: in.UserID,
		Name:   in.Name,
		Email:  in.Email,
		Status: StatusPending,
	}
	if err := s.repo.Create(ctx, reg); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		if err := s.notifier.RegistrationSubmitted(ctx, reg.ID, reg.Name, reg.Email); err != nil {
			s.logger.Warn().Err(err).
				Str("registration_id", reg.ID.String()).
				Msg("pending-registration notification failed")
		}
	}
	return reg, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*PendingRegistration, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, status Status, limit, offset int) ([]*PendingRegistration, int, error) {
	return s.repo.List(ctx, status, limit, offset)
}

// Approve grants access; an empty role falls back to the default. A
// registration already out of pending cannot be decided again.
func (s *Service) Approve(ctx context.Context, id uuid.UUID, role, decidedBy string) (*PendingRegistration, error) {
	reg, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if reg.Status != StatusPending {
		return nil, fmt.Errorf("registration already %s", reg.Status)
	}
	if role == "" {
		role = DefaultRole
	}

	now := time.Now()
	reg.Status = StatusApproved
	reg.GrantedRole = &role
	reg.DecidedBy = &decidedBy
	reg.DecidedAt = &now
	if err := s.repo.UpdateDecision(ctx, reg); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		if err := s.notifier.RegistrationApproved(ctx, reg.ID, reg.UserID, reg.Name, role); err != nil {
			s.logger.Warn().Err(err).
				Str("registration_id", reg.ID.String()).
				Msg("approval notification failed")
		}
	}
	return reg, nil
}

// Reject declines the request and notifies the requester.
func (s *Service) Reject(ctx context.Context, id uuid.UUID, decidedBy string) (*PendingRegistration, error) {
	reg, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if reg.Status != StatusPending {
		return nil, fmt.Errorf("registration already %s", reg.Status)
	}

	now := time.Now()
	reg.Status = StatusRejected
	reg.DecidedBy = &decidedBy
	reg.DecidedAt = &now
	if err := s.repo.UpdateDecision(ctx, reg); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		if err := s.notifier.RegistrationRejected(ctx, reg.ID, reg.UserID, reg.Name); err != nil {
			s.logger.Warn().Err(err).
				Str("registration_id", reg.ID.String()).
				Msg("rejection notification failed")
		}
	}
	return reg, nil
}
