//go:build integration_test || all_tests

package test

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/2beens/workoutlog/internal/tracker"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) TestTrackerRequiresLogin() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	for _, path := range []string{"/categories", "/workouts", "/sessions", "/stats", "/settings"} {
		status, _ := doRequest(ctx, t, "GET", path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, status, path)
	}
}

func (s *IntegrationTestSuite) TestTrackerFlow() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	token := doLogin(ctx, t)

	// seeded on first read
	status, body := doRequest(ctx, t, "GET", "/categories", token, nil)
	require.Equal(t, http.StatusOK, status)
	var categories tracker.CategoriesListResponse
	require.NoError(t, json.Unmarshal(body, &categories))
	require.GreaterOrEqual(t, categories.Total, 1)

	status, body = doRequest(ctx, t, "POST", "/categories", token, tracker.NewCategory{Title: "Climbing"})
	require.Equal(t, http.StatusCreated, status)
	var category tracker.Category
	require.NoError(t, json.Unmarshal(body, &category))
	require.NotEmpty(t, category.ID)

	status, body = doRequest(ctx, t, "POST", "/workouts", token, tracker.NewWorkout{
		CategoryID: category.ID,
		Title:      "Bouldering",
	})
	require.Equal(t, http.StatusCreated, status)
	var workout tracker.Workout
	require.NoError(t, json.Unmarshal(body, &workout))

	status, body = doRequest(ctx, t, "POST", "/sessions", token, tracker.NewSession{
		WorkoutID: workout.ID,
		Sets:      []tracker.Set{{Reps: 10}, {Reps: 20}},
	})
	require.Equal(t, http.StatusCreated, status)
	var session tracker.Session
	require.NoError(t, json.Unmarshal(body, &session))

	status, body = doRequest(ctx, t, "GET", "/stats/categories/"+category.ID, token, nil)
	require.Equal(t, http.StatusOK, status)
	var categoryStats tracker.CategoryStats
	require.NoError(t, json.Unmarshal(body, &categoryStats))
	assert.Equal(t, 1, categoryStats.WorkoutCount)
	assert.Equal(t, 1, categoryStats.SessionCount)
	assert.Equal(t, 30, categoryStats.TotalReps)

	status, body = doRequest(ctx, t, "DELETE", "/categories/"+category.ID, token, nil)
	require.Equal(t, http.StatusOK, status)
	var deleted tracker.DeleteResponse
	require.NoError(t, json.Unmarshal(body, &deleted))
	assert.Equal(t, category.ID, deleted.DeletedID)
	assert.Equal(t, 1, deleted.DeletedWorkouts)
	assert.Equal(t, 1, deleted.DeletedSessions)

	status, _ = doRequest(ctx, t, "GET", "/workouts/"+workout.ID, token, nil)
	assert.Equal(t, http.StatusNotFound, status)
	status, _ = doRequest(ctx, t, "GET", "/sessions/"+session.ID, token, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func (s *IntegrationTestSuite) TestTrackerPersistsInPostgres() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	token := doLogin(ctx, t)
	status, _ := doRequest(ctx, t, "PUT", "/settings", token, tracker.UserSettings{PreferredUnit: tracker.UnitLbs})
	require.Equal(t, http.StatusOK, status)

	var raw []byte
	require.NoError(t, s.DB.QueryRowContext(ctx,
		`SELECT value FROM kv_store WHERE key = $1`, tracker.KeySettings,
	).Scan(&raw))

	var stored tracker.UserSettings
	require.NoError(t, json.Unmarshal(raw, &stored))
	assert.Equal(t, tracker.UnitLbs, stored.PreferredUnit)
}
