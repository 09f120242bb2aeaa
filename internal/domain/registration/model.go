package registration

import (
	"time"

	"github.com/google/uuid"
)

// Status tracks the registration workflow.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// DefaultRole is granted on approval when the approver does not pick one.
const DefaultRole = "caregiver"

// PendingRegistration is an access request awaiting an administrator's
// decision. UserID is the requester's identity-provider subject, used to
// target the decision notification.
type PendingRegistration struct {
	ID          uuid.UUID  `json:"id"`
	UserID      string     `json:"user_id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Status      Status     `json:"status"`
	GrantedRole *string    `json:"granted_role,omitempty"`
	DecidedBy   *string    `json:"decided_by,omitempty"`
	DecidedAt   *time.Time `json:"decided_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}
