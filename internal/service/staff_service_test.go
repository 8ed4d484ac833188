package service_test

import (
	"context"
	"testing"

	"github.com/anish435/Hotel-Inventory-management-system/internal/dto"
	"github.com/anish435/Hotel-Inventory-management-system/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaffService_CRUD(t *testing.T) {
	svc := service.NewStaffService(newStubStaffRepo(), nil)
	ctx := context.Background()

	created, err := svc.CreateStaff(ctx, dto.CreateStaffRequest{Name: "Ravi", Role: "runner"})
	require.NoError(t, err)
	assert.Equal(t, "Ravi", created.Name)

	_, err = svc.CreateStaff(ctx, dto.CreateStaffRequest{Name: "Anita", Role: "frontDesk"})
	require.NoError(t, err)

	staff, err := svc.ListStaff(ctx)
	require.NoError(t, err)
	require.Len(t, staff, 2)
	assert.Equal(t, "Anita", staff[0].Name) // name order

	updated, err := svc.UpdateStaff(ctx, uuid.MustParse(created.ID), dto.UpdateStaffRequest{Role: "frontDesk"})
	require.NoError(t, err)
	assert.Equal(t, "Ravi", updated.Name)
	assert.Equal(t, "frontDesk", updated.Role)

	require.NoError(t, svc.DeleteStaff(ctx, uuid.MustParse(created.ID)))
	staff, err = svc.ListStaff(ctx)
	require.NoError(t, err)
	assert.Len(t, staff, 1)
}

func TestStaffService_NotFound(t *testing.T) {
	svc := service.NewStaffService(newStubStaffRepo(), nil)
	ctx := context.Background()

	_, err := svc.UpdateStaff(ctx, uuid.New(), dto.UpdateStaffRequest{Name: "Ghost"})
	assert.ErrorIs(t, err, service.ErrStaffNotFound)

	err = svc.DeleteStaff(ctx, uuid.New())
	assert.ErrorIs(t, err, service.ErrStaffNotFound)
}
