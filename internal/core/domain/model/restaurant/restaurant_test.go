package restaurant_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gochop/internal/core/domain/model/kernel"
	"gochop/internal/core/domain/model/restaurant"
	"gochop/internal/pkg/errs"
)

func testPolicy() restaurant.PricingPolicy {
	return restaurant.PricingPolicy{
		MinimumOrder:          20.00,
		DeliveryFee:           5.00,
		FreeDeliveryThreshold: 50.00,
		TaxPercentage:         7.5,
		PreparationMinutes:    30,
	}
}

func newTestRestaurant(t *testing.T) *restaurant.Restaurant {
	t.Helper()
	r, err := restaurant.NewRestaurant(kernel.NewUUID(), kernel.NewUUID(), "Mama Put Kitchen", testPolicy())
	require.NoError(t, err)
	return r
}

func TestNewRestaurant(t *testing.T) {
	t.Run("starts open with an empty menu", func(t *testing.T) {
		r := newTestRestaurant(t)

		require.NoError(t, r.Validate())
		assert.Equal(t, restaurant.StatusOpen, r.Status())
		assert.True(t, r.IsOpen())
		assert.Empty(t, r.Menu())
		assert.Zero(t, r.AverageRating())
		assert.Zero(t, r.RatingCount())
		assert.Equal(t, 1, r.Version())
	})

	t.Run("requires a name", func(t *testing.T) {
		_, err := restaurant.NewRestaurant(kernel.NewUUID(), kernel.NewUUID(), "", testPolicy())

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("rejects negative policy parameters", func(t *testing.T) {
		policy := testPolicy()
		policy.TaxPercentage = -1

		_, err := restaurant.NewRestaurant(kernel.NewUUID(), kernel.NewUUID(), "Mama Put Kitchen", policy)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var r restaurant.Restaurant

		require.ErrorIs(t, r.Validate(), restaurant.ErrRestaurantIsNotConstructed)
	})
}

func TestRestaurant_Menu(t *testing.T) {
	t.Run("add and find item", func(t *testing.T) {
		r := newTestRestaurant(t)
		item, err := restaurant.NewMenuItem(kernel.NewUUID(), "Jollof Rice", 12.50, nil, true, nil)
		require.NoError(t, err)

		require.NoError(t, r.AddMenuItem(item))

		found, ok := r.FindMenuItem(item.ID())
		require.True(t, ok)
		assert.Equal(t, "Jollof Rice", found.Name())
	})

	t.Run("duplicate item id rejected", func(t *testing.T) {
		r := newTestRestaurant(t)
		item, err := restaurant.NewMenuItem(kernel.NewUUID(), "Jollof Rice", 12.50, nil, true, nil)
		require.NoError(t, err)
		require.NoError(t, r.AddMenuItem(item))

		err = r.AddMenuItem(item)

		require.Error(t, err)
	})

	t.Run("missing item is not found", func(t *testing.T) {
		r := newTestRestaurant(t)

		_, ok := r.FindMenuItem(kernel.NewUUID())

		assert.False(t, ok)
	})
}

func TestMenuItem_EffectivePrice(t *testing.T) {
	t.Run("discounted price wins when present", func(t *testing.T) {
		discounted := 9.99
		item, err := restaurant.NewMenuItem(kernel.NewUUID(), "Suya Wrap", 12.00, &discounted, true, nil)

		require.NoError(t, err)
		assert.InDelta(t, 9.99, item.EffectivePrice(), 1e-9)
	})

	t.Run("regular price otherwise", func(t *testing.T) {
		item, err := restaurant.NewMenuItem(kernel.NewUUID(), "Suya Wrap", 12.00, nil, true, nil)

		require.NoError(t, err)
		assert.InDelta(t, 12.00, item.EffectivePrice(), 1e-9)
	})

	t.Run("discounted price must be below regular price", func(t *testing.T) {
		discounted := 12.00
		_, err := restaurant.NewMenuItem(kernel.NewUUID(), "Suya Wrap", 12.00, &discounted, true, nil)

		require.Error(t, err)
	})
}

func TestMenuItem_Customizations(t *testing.T) {
	mild, err := restaurant.NewOption("Mild", 0)
	require.NoError(t, err)
	extraHot, err := restaurant.NewOption("Extra hot", 0.50)
	require.NoError(t, err)
	spice, err := restaurant.NewCustomization("Spice level", []restaurant.Option{mild, extraHot})
	require.NoError(t, err)

	item, err := restaurant.NewMenuItem(
		kernel.NewUUID(), "Pepper Soup", 15.00, nil, true,
		[]restaurant.Customization{spice},
	)
	require.NoError(t, err)

	t.Run("find customization and option", func(t *testing.T) {
		group, ok := item.FindCustomization("Spice level")
		require.True(t, ok)

		option, ok := group.FindOption("Extra hot")
		require.True(t, ok)
		assert.InDelta(t, 0.50, option.Price(), 1e-9)
	})

	t.Run("missing names are not found", func(t *testing.T) {
		_, ok := item.FindCustomization("Toppings")
		assert.False(t, ok)

		group, ok := item.FindCustomization("Spice level")
		require.True(t, ok)
		_, ok = group.FindOption("Nuclear")
		assert.False(t, ok)
	})
}

func TestRestaurant_AddRating(t *testing.T) {
	t.Run("incremental mean from zero", func(t *testing.T) {
		r := newTestRestaurant(t)

		require.NoError(t, r.AddRating(4))
		assert.InDelta(t, 4.0, r.AverageRating(), 1e-9)
		assert.Equal(t, 1, r.RatingCount())

		require.NoError(t, r.AddRating(2))
		assert.InDelta(t, 3.0, r.AverageRating(), 1e-9)
		assert.Equal(t, 2, r.RatingCount())
	})

	t.Run("rejects out of range scores", func(t *testing.T) {
		r := newTestRestaurant(t)

		require.Error(t, r.AddRating(0))
		require.Error(t, r.AddRating(6))
		assert.Zero(t, r.RatingCount())
	})
}

func TestRestaurant_ChangeStatus(t *testing.T) {
	r := newTestRestaurant(t)

	require.NoError(t, r.ChangeStatus(restaurant.StatusClosed))
	assert.False(t, r.IsOpen())

	require.Error(t, r.ChangeStatus(restaurant.StatusUnknown))
	assert.Equal(t, restaurant.StatusClosed, r.Status())
}

func TestRestoreRestaurant(t *testing.T) {
	r := newTestRestaurant(t)
	item, err := restaurant.NewMenuItem(kernel.NewUUID(), "Jollof Rice", 12.50, nil, true, nil)
	require.NoError(t, err)
	require.NoError(t, r.AddMenuItem(item))
	require.NoError(t, r.AddRating(5))

	restored, err := restaurant.RestoreRestaurant(restaurant.RestoreRestaurantParams{
		ID:            r.ID(),
		OwnerID:       r.OwnerID(),
		Name:          r.Name(),
		Status:        restaurant.StatusBusy,
		Policy:        r.Policy(),
		Menu:          r.Menu(),
		AverageRating: r.AverageRating(),
		RatingCount:   r.RatingCount(),
		Version:       4,
	})

	require.NoError(t, err)
	require.NoError(t, restored.Validate())
	assert.True(t, restored.IsEqual(r))
	assert.Equal(t, restaurant.StatusBusy, restored.Status())
	assert.Len(t, restored.Menu(), 1)
	assert.Equal(t, 4, restored.Version())
}
