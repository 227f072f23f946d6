package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRewards_Accrue(t *testing.T) {
	t.Run("ninth point turns into a free wash", func(t *testing.T) {
		r := &Rewards{LoyaltyPoints: 9, FreeWashes: 2}

		earned := r.Accrue()

		assert.True(t, earned)
		assert.Equal(t, 0, r.LoyaltyPoints)
		assert.Equal(t, 3, r.FreeWashes)
	})

	t.Run("points stay within range over many bookings", func(t *testing.T) {
		r := NewRewards("u1", "loc1")
		for i := 0; i < 25; i++ {
			r.Accrue()
			assert.GreaterOrEqual(t, r.LoyaltyPoints, 0)
			assert.Less(t, r.LoyaltyPoints, PointsPerFreeWash)
		}
		assert.Equal(t, 5, r.LoyaltyPoints)
		assert.Equal(t, 2, r.FreeWashes)
	})
}

func TestRewards_DebitFreeWash(t *testing.T) {
	r := &Rewards{FreeWashes: 1}

	assert.NoError(t, r.DebitFreeWash())
	assert.Equal(t, 0, r.FreeWashes)

	assert.ErrorIs(t, r.DebitFreeWash(), ErrNoFreeWash)
	assert.Equal(t, 0, r.FreeWashes)
}
