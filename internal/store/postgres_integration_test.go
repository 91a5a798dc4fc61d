//go:build integration

package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/donaldgifford/chitai-gorod-qa/internal/store"
	domain "github.com/donaldgifford/chitai-gorod-qa/pkg/types"
)

func setupPostgres(t *testing.T) *store.PostgresStore {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("chitai_qa_test"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		require.NoError(t, pgContainer.Terminate(ctx))
	})

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	s, err := store.NewPostgresStore(ctx, connStr)
	require.NoError(t, err)
	t.Cleanup(s.Close)

	require.NoError(t, s.Migrate(ctx))

	return s
}

func testRun(trigger string, startedAt time.Time) *domain.SmokeRun {
	return &domain.SmokeRun{
		ID:        uuid.NewString(),
		StartedAt: startedAt.Truncate(time.Microsecond),
		Trigger:   trigger,
	}
}

func TestPostgresStore_Ping(t *testing.T) {
	s := setupPostgres(t)
	require.NoError(t, s.Ping(context.Background()))
}

func TestPostgresStore_MigrateIsIdempotent(t *testing.T) {
	s := setupPostgres(t)
	require.NoError(t, s.Migrate(context.Background()))
}

func TestPostgresStore_RunLifecycle(t *testing.T) {
	s := setupPostgres(t)
	ctx := context.Background()

	run := testRun("manual", time.Now())
	require.NoError(t, s.InsertRun(ctx, run))

	results := []domain.CheckResult{
		{
			RunID:      run.ID,
			Name:       "search_tolstoy",
			Status:     domain.CheckPassed,
			Message:    "found 20 of 120 books",
			Details:    map[string]any{"total": float64(120), "first_author": "Толстой Лев"},
			DurationMS: 412,
		},
		{
			RunID:      run.ID,
			Name:       "popular_searches",
			Status:     domain.CheckErrored,
			Message:    "context deadline exceeded",
			DurationMS: 30000,
		},
	}
	for i := range results {
		require.NoError(t, s.InsertCheckResult(ctx, &results[i]))
	}

	completed := run.StartedAt.Add(31 * time.Second)
	run.CompletedAt = &completed
	run.Passed = false
	require.NoError(t, s.CompleteRun(ctx, run))

	got, err := s.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, run.ID, got.ID)
	assert.Equal(t, "manual", got.Trigger)
	assert.False(t, got.Passed)
	require.NotNil(t, got.CompletedAt)
	assert.True(t, completed.Equal(*got.CompletedAt))

	require.Len(t, got.Results, 2)
	assert.Equal(t, "search_tolstoy", got.Results[0].Name)
	assert.Equal(t, "Толстой Лев", got.Results[0].Details["first_author"])
	assert.Equal(t, domain.CheckErrored, got.Results[1].Status)
	assert.Empty(t, got.Results[1].Details)
}

func TestPostgresStore_GetRun_NotFound(t *testing.T) {
	s := setupPostgres(t)

	_, err := s.GetRun(context.Background(), uuid.NewString())
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestPostgresStore_CompleteRun_Unknown(t *testing.T) {
	s := setupPostgres(t)

	now := time.Now()
	run := testRun("manual", now)
	run.CompletedAt = &now
	require.ErrorIs(t, s.CompleteRun(context.Background(), run), store.ErrNotFound)
}

func TestPostgresStore_ListRuns(t *testing.T) {
	s := setupPostgres(t)
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	for i, trigger := range []string{"manual", "schedule", "schedule"} {
		run := testRun(trigger, base.Add(time.Duration(i)*time.Minute))
		require.NoError(t, s.InsertRun(ctx, run))
		done := run.StartedAt.Add(time.Second)
		run.CompletedAt = &done
		run.Passed = i != 1
		require.NoError(t, s.CompleteRun(ctx, run))
	}

	t.Run("newest first", func(t *testing.T) {
		runs, total, err := s.ListRuns(ctx, nil)
		require.NoError(t, err)
		assert.Equal(t, 3, total)
		require.Len(t, runs, 3)
		assert.True(t, runs[0].StartedAt.After(runs[2].StartedAt))
	})

	t.Run("filtered", func(t *testing.T) {
		trigger := "schedule"
		passed := false
		runs, total, err := s.ListRuns(ctx, &store.RunQuery{Trigger: &trigger, Passed: &passed})
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		require.Len(t, runs, 1)
		assert.False(t, runs[0].Passed)
	})

	t.Run("limit keeps total", func(t *testing.T) {
		runs, total, err := s.ListRuns(ctx, &store.RunQuery{Limit: 1})
		require.NoError(t, err)
		assert.Equal(t, 3, total)
		assert.Len(t, runs, 1)
	})
}

func TestPostgresStore_PruneRuns(t *testing.T) {
	s := setupPostgres(t)
	ctx := context.Background()

	old := testRun("schedule", time.Now().Add(-48*time.Hour))
	fresh := testRun("schedule", time.Now())
	require.NoError(t, s.InsertRun(ctx, old))
	require.NoError(t, s.InsertRun(ctx, fresh))
	require.NoError(t, s.InsertCheckResult(ctx, &domain.CheckResult{
		RunID: old.ID, Name: "search_books", Status: domain.CheckPassed,
	}))

	n, err := s.PruneRuns(ctx, 24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = s.GetRun(ctx, old.ID)
	require.ErrorIs(t, err, store.ErrNotFound)

	results, err := s.ListCheckResults(ctx, old.ID)
	require.NoError(t, err)
	assert.Empty(t, results)

	_, err = s.GetRun(ctx, fresh.ID)
	require.NoError(t, err)
}
