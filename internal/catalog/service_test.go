package catalog

import (
	"context"
	"io"
	"testing"

	"rideescrow/internal/registry"
	"rideescrow/internal/shared/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	log := logger.NewLoggerWithWriters("test", io.Discard, io.Discard)

	reg := registry.NewService(registry.NewMemRepository(), log)
	require.NoError(t, reg.Register(context.Background(), "driver-1", registry.RoleDriver))

	return NewService(NewMemRepository(), reg, nil, log)
}

func TestAddDestination(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	dest, err := svc.AddDestination(ctx, "driver-1", "Airport", 1000)
	require.NoError(t, err)
	assert.Equal(t, int64(0), dest.ID)
	assert.Equal(t, "driver-1", dest.DriverID)
	assert.Equal(t, "Airport", dest.Location)
	assert.Equal(t, int64(1000), dest.Fare)
	assert.True(t, dest.Available)

	// Ids are sequential from 0.
	second, err := svc.AddDestination(ctx, "driver-1", "Harbor", 500)
	require.NoError(t, err)
	assert.Equal(t, int64(1), second.ID)
}

func TestAddDestinationNotDriver(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.AddDestination(context.Background(), "stranger", "Airport", 1000)
	assert.ErrorIs(t, err, ErrNotDriver)
}

func TestAddDestinationInvalidFare(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	for _, fare := range []int64{0, -1} {
		_, err := svc.AddDestination(ctx, "driver-1", "Airport", fare)
		assert.ErrorIs(t, err, ErrInvalidFare, "fare %d", fare)
	}
}

func TestGetDestination(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.AddDestination(ctx, "driver-1", "Airport", 1000)
	require.NoError(t, err)

	found, err := svc.GetDestination(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Location, found.Location)

	_, err = svc.GetDestination(ctx, 42)
	assert.ErrorIs(t, err, ErrDestinationNotFound)
}

func TestGetFare(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.AddDestination(ctx, "driver-1", "Airport", 1000)
	require.NoError(t, err)

	fare, err := svc.GetFare(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), fare)
}
