package registry

import (
	"context"
	"io"
	"testing"

	"rideescrow/internal/shared/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() *Service {
	log := logger.NewLoggerWithWriters("test", io.Discard, io.Discard)
	return NewService(NewMemRepository(), log)
}

func TestRegister(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, "alice", RoleRider))

	isRider, err := svc.IsRider(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, isRider)

	isDriver, err := svc.IsDriver(ctx, "alice")
	require.NoError(t, err)
	assert.False(t, isDriver)
}

func TestRegisterDuplicateRole(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, "alice", RoleRider))
	err := svc.Register(ctx, "alice", RoleRider)
	assert.ErrorIs(t, err, ErrAlreadyRegistered)
}

func TestRegisterBothRoles(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	// The same identity may hold both roles independently.
	require.NoError(t, svc.Register(ctx, "alice", RoleRider))
	require.NoError(t, svc.Register(ctx, "alice", RoleDriver))

	isRider, err := svc.IsRider(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, isRider)

	isDriver, err := svc.IsDriver(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, isDriver)
}

func TestUnknownIdentityHasNoRoles(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	isRider, err := svc.IsRider(ctx, "nobody")
	require.NoError(t, err)
	assert.False(t, isRider)

	isDriver, err := svc.IsDriver(ctx, "nobody")
	require.NoError(t, err)
	assert.False(t, isDriver)
}

func TestParseRole(t *testing.T) {
	role, err := ParseRole("RIDER")
	require.NoError(t, err)
	assert.Equal(t, RoleRider, role)

	role, err = ParseRole("DRIVER")
	require.NoError(t, err)
	assert.Equal(t, RoleDriver, role)

	_, err = ParseRole("admin")
	assert.ErrorIs(t, err, ErrUnknownRole)
}
