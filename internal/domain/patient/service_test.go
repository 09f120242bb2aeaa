package patient

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
)

type mockRepo struct {
	patients map[uuid.UUID]*Patient
}

func newMockRepo() *mockRepo {
	return &mockRepo{patients: make(map[uuid.UUID]*Patient)}
}

func (m *mockRepo) Create(_ context.Context, p *Patient) error {
	p.ID = uuid.New()
	m.patients[p.ID] = p
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*Patient, error) {
	p, ok := m.patients[id]
	if !ok {
		return nil, fmt.Errorf("patient not found")
	}
	return p, nil
}

func (m *mockRepo) Update(_ context.Context, p *Patient) error {
	if _, ok := m.patients[p.ID]; !ok {
		return fmt.Errorf("patient not found")
	}
	m.patients[p.ID] = p
	return nil
}

func (m *mockRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.patients, id)
	return nil
}

func (m *mockRepo) List(_ context.Context, limit, offset int) ([]*Patient, int, error) {
	var items []*Patient
	for _, p := range m.patients {
		items = append(items, p)
	}
	return items, len(m.patients), nil
}

func TestService_CreateValidation(t *testing.T) {
	svc := NewService(newMockRepo())
	ctx := context.Background()

	cases := []struct {
		name    string
		patient Patient
		wantErr bool
	}{
		{"valid home patient", Patient{Name: "Maria Silva", Phone: "555-0101", Category: CareHome}, false},
		{"valid hospital patient", Patient{Name: "Jose Santos", Phone: "555-0102", Category: CareHospital}, false},
		{"valid freelance patient", Patient{Name: "Ana Costa", Phone: "555-0103", Category: CareFreelance}, false},
		{"missing name", Patient{Phone: "555-0104", Category: CareHome}, true},
		{"missing phone", Patient{Name: "No Phone", Category: CareHome}, true},
		{"invalid category", Patient{Name: "Bad Cat", Phone: "555-0105", Category: "clinic"}, true},
	}

	for _, tc := range cases {
		p := tc.patient
		err := svc.Create(ctx, &p, "user-1")
		if tc.wantErr && err == nil {
			t.Errorf("%s: expected error", tc.name)
		}
		if !tc.wantErr && err != nil {
			t.Errorf("%s: unexpected error: %v", tc.name, err)
		}
	}
}

func TestService_CreateStampsCreator(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)

	p := Patient{Name: "Maria Silva", Phone: "555-0101", Category: CareHome}
	if err := svc.Create(context.Background(), &p, "nurse-7"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.CreatedBy != "nurse-7" {
		t.Errorf("expected created_by nurse-7, got %q", p.CreatedBy)
	}
	if p.ID == uuid.Nil {
		t.Error("expected a generated id")
	}
}

func TestService_PatientName(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)

	p := Patient{Name: "Jose Santos", Phone: "555-0102", Category: CareHospital}
	if err := svc.Create(context.Background(), &p, "user-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	name, err := svc.PatientName(context.Background(), p.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if name != "Jose Santos" {
		t.Errorf("expected Jose Santos, got %q", name)
	}

	if _, err := svc.PatientName(context.Background(), uuid.New()); err == nil {
		t.Error("expected error for unknown patient")
	}
}
