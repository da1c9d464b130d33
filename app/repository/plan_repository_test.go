package repository

import (
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ManuelReschke/CallPlanner/app/models"
	"github.com/ManuelReschke/CallPlanner/internal/pkg/database"
)

// steppingClock returns a clock that advances by step on every call.
func steppingClock(start time.Time, step time.Duration) func() time.Time {
	current := start
	return func() time.Time {
		t := current
		current = current.Add(step)
		return t
	}
}

func newTestPlanRepository(t *testing.T, opts ...PlanRepositoryOption) PlanRepository {
	t.Helper()
	db, err := database.OpenMemory(t.Name())
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return NewPlanRepository(db, opts...)
}

func strPtr(s string) *string { return &s }

func TestPlanRepositoryCreateAndGet(t *testing.T) {
	repo := newTestPlanRepository(t)

	in := &models.PlanInput{
		ClientName:   "Dr. A",
		SocialStyle:  models.StyleDriving,
		SpinS:        strPtr("Q1"),
		Storytelling: strPtr(""),
	}
	created, err := repo.Create(in)
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.True(t, created.CreatedAt.Equal(created.UpdatedAt))

	got, err := repo.GetByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "Dr. A", got.ClientName)
	assert.Equal(t, models.StyleDriving, got.SocialStyle)
	require.NotNil(t, got.SpinS)
	assert.Equal(t, "Q1", *got.SpinS)
	assert.Nil(t, got.SpinP)
	assert.Nil(t, got.Storytelling)
	assert.True(t, got.CreatedAt.Equal(created.CreatedAt))
	assert.True(t, got.UpdatedAt.Equal(created.UpdatedAt))
}

func TestPlanRepositoryCreateAssignsUniqueIDs(t *testing.T) {
	repo := newTestPlanRepository(t)

	seen := make(map[string]struct{})
	for i := 0; i < 20; i++ {
		p, err := repo.Create(&models.PlanInput{ClientName: "X", SocialStyle: models.StyleAmiable})
		require.NoError(t, err)
		_, dup := seen[p.ID]
		require.False(t, dup, "duplicate id %s", p.ID)
		seen[p.ID] = struct{}{}
	}
}

func TestPlanRepositoryGetUnknown(t *testing.T) {
	repo := newTestPlanRepository(t)

	_, err := repo.GetByID("does-not-exist")
	assert.ErrorIs(t, err, ErrPlanNotFound)
}

func TestPlanRepositoryUpdate(t *testing.T) {
	start := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	repo := newTestPlanRepository(t, WithClock(steppingClock(start, time.Minute)))

	created, err := repo.Create(&models.PlanInput{
		ClientName:  "Dr. A",
		SocialStyle: models.StyleDriving,
		SpinS:       strPtr("Q1"),
		Objection:   strPtr("too pricey"),
	})
	require.NoError(t, err)

	updated, err := repo.Update(created.ID, &models.PlanInput{
		ID:          "ignored",
		ClientName:  "Dr. B",
		SocialStyle: models.StyleExpressive,
		SpinP:       strPtr("P1"),
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.True(t, updated.CreatedAt.Equal(created.CreatedAt))
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))
	assert.Equal(t, "Dr. B", updated.ClientName)
	assert.Equal(t, models.StyleExpressive, updated.SocialStyle)

	got, err := repo.GetByID(created.ID)
	require.NoError(t, err)
	assert.Nil(t, got.SpinS, "absent optional fields are cleared")
	assert.Nil(t, got.Objection)
	require.NotNil(t, got.SpinP)
	assert.Equal(t, "P1", *got.SpinP)
	assert.True(t, got.UpdatedAt.Equal(updated.UpdatedAt))
	assert.True(t, got.CreatedAt.Equal(created.CreatedAt))
}

func TestPlanRepositoryUpdateAdvancesWithFrozenClock(t *testing.T) {
	frozen := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	repo := newTestPlanRepository(t, WithClock(func() time.Time { return frozen }))

	p, err := repo.Create(&models.PlanInput{ClientName: "A", SocialStyle: models.StyleAmiable})
	require.NoError(t, err)

	last := p.UpdatedAt
	for i := 0; i < 3; i++ {
		u, err := repo.Update(p.ID, &models.PlanInput{ClientName: "A", SocialStyle: models.StyleAmiable})
		require.NoError(t, err)
		assert.True(t, u.UpdatedAt.After(last))
		assert.False(t, u.UpdatedAt.Before(u.CreatedAt))
		last = u.UpdatedAt
	}
}

func TestPlanRepositoryUpdateUnknown(t *testing.T) {
	repo := newTestPlanRepository(t)

	_, err := repo.Update("missing", &models.PlanInput{ClientName: "A", SocialStyle: models.StyleAmiable})
	assert.ErrorIs(t, err, ErrPlanNotFound)
}

func TestPlanRepositoryListOrder(t *testing.T) {
	start := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	repo := newTestPlanRepository(t, WithClock(steppingClock(start, time.Second)))

	empty, err := repo.List()
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	a, err := repo.Create(&models.PlanInput{ClientName: "A", SocialStyle: models.StyleDriving})
	require.NoError(t, err)
	b, err := repo.Create(&models.PlanInput{ClientName: "B", SocialStyle: models.StyleAnalytical})
	require.NoError(t, err)
	c, err := repo.Create(&models.PlanInput{ClientName: "C", SocialStyle: models.StyleAmiable})
	require.NoError(t, err)

	_, err = repo.Update(a.ID, &models.PlanInput{ClientName: "A2", SocialStyle: models.StyleDriving})
	require.NoError(t, err)

	plans, err := repo.List()
	require.NoError(t, err)
	require.Len(t, plans, 3)
	assert.Equal(t, []string{a.ID, c.ID, b.ID}, []string{plans[0].ID, plans[1].ID, plans[2].ID})
	assert.True(t, sort.SliceIsSorted(plans, func(i, j int) bool {
		return plans[i].UpdatedAt.After(plans[j].UpdatedAt)
	}))
}

func TestPlanRepositoryDelete(t *testing.T) {
	repo := newTestPlanRepository(t)

	p, err := repo.Create(&models.PlanInput{ClientName: "A", SocialStyle: models.StyleDriving})
	require.NoError(t, err)

	require.NoError(t, repo.Delete(p.ID))

	_, err = repo.GetByID(p.ID)
	assert.ErrorIs(t, err, ErrPlanNotFound)
	assert.ErrorIs(t, repo.Delete(p.ID), ErrPlanNotFound)

	plans, err := repo.List()
	require.NoError(t, err)
	assert.Empty(t, plans)
}
