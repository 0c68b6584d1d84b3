package models

import (
	"math/rand"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "licibit/pkg/domain"
	dErrors "licibit/pkg/domain-errors"
)

func newTestTender(t *testing.T, active bool, deadline time.Time) *Tender {
	t.Helper()
	return &Tender{
		ID:              id.TenderID(uuid.New()),
		OwnerID:         id.UserID(uuid.New()),
		Name:            "Torre Norte - acabados",
		Category:        "Pintura en muros",
		Active:          active,
		ClosingDeadline: deadline,
	}
}

func TestIsOpen(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	t.Run("active with future deadline is open", func(t *testing.T) {
		assert.True(t, newTestTender(t, true, now.Add(time.Hour)).IsOpen(now))
	})

	t.Run("deactivated tender is closed even before deadline", func(t *testing.T) {
		assert.False(t, newTestTender(t, false, now.Add(time.Hour)).IsOpen(now))
	})

	t.Run("active tender past deadline is closed", func(t *testing.T) {
		assert.False(t, newTestTender(t, true, now.Add(-time.Hour)).IsOpen(now))
	})

	t.Run("exact deadline instant is closed", func(t *testing.T) {
		assert.False(t, newTestTender(t, true, now).IsOpen(now))
	})
}

// TestIsOpen_Conjunction pins the canonical formula on randomized triples:
// open == active && now < deadline, nothing less and nothing more.
func TestIsOpen_Conjunction(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	base := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 1000; i++ {
		active := rng.Intn(2) == 0
		now := base.Add(time.Duration(rng.Int63n(int64(96*time.Hour))) - 48*time.Hour)
		deadline := base.Add(time.Duration(rng.Int63n(int64(96*time.Hour))) - 48*time.Hour)

		tender := newTestTender(t, active, deadline)
		assert.Equal(t, active && now.Before(deadline), tender.IsOpen(now))
	}
}

func TestNewTender(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	issuer := id.UserID(uuid.New())

	t.Run("constructs active tender", func(t *testing.T) {
		tender, err := NewTender(id.TenderID(uuid.New()), issuer, " Torre Sur ", "desc", "Enchapes", now.Add(time.Hour), now)
		require.NoError(t, err)
		assert.True(t, tender.Active)
		assert.Equal(t, "Torre Sur", tender.Name)
		assert.True(t, tender.IsOpen(now))
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewTender(id.TenderID(uuid.New()), issuer, "  ", "", "Enchapes", now.Add(time.Hour), now)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
	})

	t.Run("rejects past deadline", func(t *testing.T) {
		_, err := NewTender(id.TenderID(uuid.New()), issuer, "x", "", "Enchapes", now.Add(-time.Minute), now)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
	})

	t.Run("rejects missing category", func(t *testing.T) {
		_, err := NewTender(id.TenderID(uuid.New()), issuer, "x", "", " ", now.Add(time.Hour), now)
		require.Error(t, err)
	})
}

func TestStatusFilter(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	open := newTestTender(t, true, now.Add(time.Hour))
	closed := newTestTender(t, true, now.Add(-time.Hour))

	assert.True(t, StatusAll.Matches(open, now))
	assert.True(t, StatusAll.Matches(closed, now))
	assert.True(t, StatusActive.Matches(open, now))
	assert.False(t, StatusActive.Matches(closed, now))
	assert.False(t, StatusInactive.Matches(open, now))
	assert.True(t, StatusInactive.Matches(closed, now))

	assert.True(t, StatusFilter("active").Valid())
	assert.False(t, StatusFilter("open").Valid())
}

func TestSetActive(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	tender := newTestTender(t, true, now.Add(time.Hour))

	tender.SetActive(false, now)
	assert.False(t, tender.IsOpen(now))

	// Reactivation before the deadline reopens the tender.
	tender.SetActive(true, now)
	assert.True(t, tender.IsOpen(now))
}
