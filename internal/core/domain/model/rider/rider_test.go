package rider_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gochop/internal/core/domain/model/kernel"
	"gochop/internal/core/domain/model/rider"
	"gochop/internal/pkg/errs"
)

func newTestRider(t *testing.T) *rider.Rider {
	t.Helper()
	r, err := rider.NewRider(kernel.NewUUID(), kernel.NewUUID())
	require.NoError(t, err)
	return r
}

func onlineRider(t *testing.T) *rider.Rider {
	t.Helper()
	r := newTestRider(t)
	online := rider.StatusOnline
	available := true
	require.NoError(t, r.ChangeAvailability(&online, &available))
	return r
}

func TestNewRider(t *testing.T) {
	t.Run("starts offline and unavailable", func(t *testing.T) {
		r := newTestRider(t)

		require.NoError(t, r.Validate())
		assert.Equal(t, rider.StatusOffline, r.Status())
		assert.False(t, r.IsAvailable())
		assert.Nil(t, r.CurrentOrderID())
		assert.Zero(t, r.TotalEarnings())
		assert.Zero(t, r.AverageRating())
		assert.Zero(t, r.RatingCount())
		assert.Equal(t, 1, r.Version())
	})

	t.Run("rejects unconstructed ids", func(t *testing.T) {
		_, err := rider.NewRider(kernel.UUID{}, kernel.NewUUID())

		require.Error(t, err)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var r rider.Rider

		require.ErrorIs(t, r.Validate(), rider.ErrRiderIsNotConstructed)
	})
}

func TestRider_Reserve(t *testing.T) {
	t.Run("online available rider is reserved", func(t *testing.T) {
		r := onlineRider(t)
		orderID := kernel.NewUUID()

		require.NoError(t, r.Reserve(orderID))

		assert.Equal(t, rider.StatusBusy, r.Status())
		assert.False(t, r.IsAvailable())
		require.NotNil(t, r.CurrentOrderID())
		assert.True(t, orderID.IsEqual(*r.CurrentOrderID()))
	})

	t.Run("offline rider cannot be reserved", func(t *testing.T) {
		r := newTestRider(t)

		err := r.Reserve(kernel.NewUUID())

		require.ErrorIs(t, err, rider.ErrRiderUnavailable)
	})

	t.Run("busy rider cannot be reserved again", func(t *testing.T) {
		r := onlineRider(t)
		require.NoError(t, r.Reserve(kernel.NewUUID()))

		err := r.Reserve(kernel.NewUUID())

		require.ErrorIs(t, err, rider.ErrRiderUnavailable)
	})

	t.Run("exactly one of N concurrent reservations wins", func(t *testing.T) {
		r := onlineRider(t)

		const attempts = 50
		var wg sync.WaitGroup
		results := make(chan error, attempts)
		for range attempts {
			wg.Add(1)
			go func() {
				defer wg.Done()
				results <- r.Reserve(kernel.NewUUID())
			}()
		}
		wg.Wait()
		close(results)

		var wins, losses int
		for err := range results {
			if err == nil {
				wins++
			} else {
				require.ErrorIs(t, err, rider.ErrRiderUnavailable)
				losses++
			}
		}

		assert.Equal(t, 1, wins)
		assert.Equal(t, attempts-1, losses)
		assert.NotNil(t, r.CurrentOrderID())
	})
}

func TestRider_Release(t *testing.T) {
	t.Run("frees a busy rider", func(t *testing.T) {
		r := onlineRider(t)
		require.NoError(t, r.Reserve(kernel.NewUUID()))

		r.Release()

		assert.Equal(t, rider.StatusOnline, r.Status())
		assert.True(t, r.IsAvailable())
		assert.Nil(t, r.CurrentOrderID())
	})

	t.Run("is idempotent", func(t *testing.T) {
		r := onlineRider(t)
		require.NoError(t, r.Reserve(kernel.NewUUID()))

		r.Release()
		r.Release()

		assert.Equal(t, rider.StatusOnline, r.Status())
		assert.True(t, r.IsAvailable())
		assert.Nil(t, r.CurrentOrderID())
	})
}

func TestRider_CreditEarnings(t *testing.T) {
	t.Run("accumulates", func(t *testing.T) {
		r := newTestRider(t)

		require.NoError(t, r.CreditEarnings(5.00))
		require.NoError(t, r.CreditEarnings(3.50))

		assert.InDelta(t, 8.50, r.TotalEarnings(), 1e-9)
	})

	t.Run("rejects negative amount", func(t *testing.T) {
		r := newTestRider(t)

		err := r.CreditEarnings(-1)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Zero(t, r.TotalEarnings())
	})

	t.Run("zero amount is allowed", func(t *testing.T) {
		r := newTestRider(t)

		require.NoError(t, r.CreditEarnings(0))
	})
}

func TestRider_AddRating(t *testing.T) {
	t.Run("incremental mean", func(t *testing.T) {
		r := newTestRider(t)

		require.NoError(t, r.AddRating(4))
		assert.InDelta(t, 4.0, r.AverageRating(), 1e-9)
		assert.Equal(t, 1, r.RatingCount())

		require.NoError(t, r.AddRating(2))
		assert.InDelta(t, 3.0, r.AverageRating(), 1e-9)
		assert.Equal(t, 2, r.RatingCount())
	})

	t.Run("rejects out of range scores", func(t *testing.T) {
		r := newTestRider(t)

		for _, score := range []int{0, 6} {
			err := r.AddRating(score)

			require.Error(t, err)
			assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		}
		assert.Zero(t, r.RatingCount())
	})
}

func TestRider_ChangeAvailability(t *testing.T) {
	t.Run("goes online and available", func(t *testing.T) {
		r := newTestRider(t)
		online := rider.StatusOnline
		available := true

		require.NoError(t, r.ChangeAvailability(&online, &available))

		assert.Equal(t, rider.StatusOnline, r.Status())
		assert.True(t, r.IsAvailable())
	})

	t.Run("cannot become available with an active order", func(t *testing.T) {
		r := onlineRider(t)
		require.NoError(t, r.Reserve(kernel.NewUUID()))
		available := true

		err := r.ChangeAvailability(nil, &available)

		require.ErrorIs(t, err, rider.ErrRiderHasActiveOrder)
		assert.False(t, r.IsAvailable())
	})

	t.Run("going offline forces unavailable", func(t *testing.T) {
		r := onlineRider(t)
		offline := rider.StatusOffline

		require.NoError(t, r.ChangeAvailability(&offline, nil))

		assert.Equal(t, rider.StatusOffline, r.Status())
		assert.False(t, r.IsAvailable())
	})

	t.Run("nil arguments leave fields untouched", func(t *testing.T) {
		r := onlineRider(t)

		require.NoError(t, r.ChangeAvailability(nil, nil))

		assert.Equal(t, rider.StatusOnline, r.Status())
		assert.True(t, r.IsAvailable())
	})

	t.Run("rejects invalid status", func(t *testing.T) {
		r := newTestRider(t)
		bad := rider.StatusUnknown

		err := r.ChangeAvailability(&bad, nil)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestRider_MoveTo(t *testing.T) {
	r := newTestRider(t)
	point, err := kernel.NewGeoPoint(3.3792, 6.5244)
	require.NoError(t, err)
	now := time.Now()

	require.NoError(t, r.MoveTo(point, now))

	require.NotNil(t, r.Location())
	equal, err := r.Location().IsEqual(point)
	require.NoError(t, err)
	assert.True(t, equal)
	require.NotNil(t, r.LocationUpdatedAt())
	assert.Equal(t, now, *r.LocationUpdatedAt())
}

func TestRestoreRider(t *testing.T) {
	t.Run("round trip preserves state", func(t *testing.T) {
		r := onlineRider(t)
		orderID := kernel.NewUUID()
		require.NoError(t, r.Reserve(orderID))
		require.NoError(t, r.CreditEarnings(12.00))
		require.NoError(t, r.AddRating(5))

		restored, err := rider.RestoreRider(rider.RestoreRiderParams{
			ID:             r.ID(),
			UserID:         r.UserID(),
			Status:         r.Status(),
			IsAvailable:    r.IsAvailable(),
			CurrentOrderID: r.CurrentOrderID(),
			AverageRating:  r.AverageRating(),
			RatingCount:    r.RatingCount(),
			TotalEarnings:  r.TotalEarnings(),
			Version:        7,
		})

		require.NoError(t, err)
		require.NoError(t, restored.Validate())
		assert.True(t, restored.IsEqual(r))
		assert.Equal(t, rider.StatusBusy, restored.Status())
		require.NotNil(t, restored.CurrentOrderID())
		assert.True(t, orderID.IsEqual(*restored.CurrentOrderID()))
		assert.InDelta(t, 12.00, restored.TotalEarnings(), 1e-9)
		assert.Equal(t, 7, restored.Version())
	})

	t.Run("rejects invalid status", func(t *testing.T) {
		_, err := rider.RestoreRider(rider.RestoreRiderParams{
			ID:     kernel.NewUUID(),
			UserID: kernel.NewUUID(),
			Status: rider.StatusUnknown,
		})

		require.Error(t, err)
	})
}
