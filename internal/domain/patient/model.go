package patient

import (
	"time"

	"github.com/google/uuid"
)

// CareCategory distinguishes how a patient receives care.
type CareCategory string

const (
	CareHome      CareCategory = "home"
	CareHospital  CareCategory = "hospital"
	CareFreelance CareCategory = "freelance"
)

// ValidCareCategories enumerates the accepted care categories.
var ValidCareCategories = map[CareCategory]bool{
	CareHome:      true,
	CareHospital:  true,
	CareFreelance: true,
}

// Patient is a person under care.
type Patient struct {
	ID        uuid.UUID    `json:"id"`
	Name      string       `json:"name"`
	Age       *int         `json:"age,omitempty"`
	Phone     string       `json:"phone"`
	Address   *string      `json:"address,omitempty"`
	Insurance *string      `json:"insurance,omitempty"`
	Category  CareCategory `json:"category"`
	Notes     *string      `json:"notes,omitempty"`
	CreatedBy string       `json:"created_by"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}
