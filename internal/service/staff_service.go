package service

import (
	"context"
	"fmt"

	"github.com/anish435/Hotel-Inventory-management-system/internal/dto"
	"github.com/anish435/Hotel-Inventory-management-system/internal/model"
	"github.com/anish435/Hotel-Inventory-management-system/internal/notify"
	"github.com/anish435/Hotel-Inventory-management-system/internal/repository"

	"github.com/google/uuid"
)

type StaffService interface {
	ListStaff(ctx context.Context) ([]dto.StaffResponse, error)
	CreateStaff(ctx context.Context, req dto.CreateStaffRequest) (*dto.StaffResponse, error)
	UpdateStaff(ctx context.Context, id uuid.UUID, req dto.UpdateStaffRequest) (*dto.StaffResponse, error)
	DeleteStaff(ctx context.Context, id uuid.UUID) error
}

type staffService struct {
	repo   repository.StaffRepository
	events *notify.Publisher
}

func NewStaffService(repo repository.StaffRepository, events *notify.Publisher) StaffService {
	return &staffService{repo: repo, events: events}
}

func (s *staffService) ListStaff(ctx context.Context) ([]dto.StaffResponse, error) {
	staff, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.StaffResponse, len(staff))
	for i := range staff {
		resp[i] = staffToResponse(&staff[i])
	}
	return resp, nil
}

func (s *staffService) CreateStaff(ctx context.Context, req dto.CreateStaffRequest) (*dto.StaffResponse, error) {
	member := &model.StaffMember{Name: req.Name, Role: req.Role}
	if err := s.repo.Create(ctx, member); err != nil {
		return nil, err
	}
	s.events.Publish(ctx, notify.CollectionStaff)
	resp := staffToResponse(member)
	return &resp, nil
}

func (s *staffService) UpdateStaff(ctx context.Context, id uuid.UUID, req dto.UpdateStaffRequest) (*dto.StaffResponse, error) {
	member, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrStaffNotFound, id)
	}
	if req.Name != "" {
		member.Name = req.Name
	}
	if req.Role != "" {
		member.Role = req.Role
	}
	if err := s.repo.Update(ctx, member); err != nil {
		return nil, err
	}
	s.events.Publish(ctx, notify.CollectionStaff)
	resp := staffToResponse(member)
	return &resp, nil
}

func (s *staffService) DeleteStaff(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return fmt.Errorf("%w: %s", ErrStaffNotFound, id)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.events.Publish(ctx, notify.CollectionStaff)
	return nil
}

func staffToResponse(m *model.StaffMember) dto.StaffResponse {
	return dto.StaffResponse{ID: m.ID.String(), Name: m.Name, Role: m.Role}
}
