package handler_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/sajjad-mugdho/frontend/internal/models"
)

func TestSubmissionHandlerLatest(t *testing.T) {
	app := setupApp(t, fakeContent{})

	resp, env := app.do(t, http.MethodGet, "/api/v1/submission/latest", "", nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Equal(t, "repo_name parameter is required", env.Message)

	resp, _ = app.do(t, http.MethodGet, "/api/v1/submission/latest?repo_name=learner%2Fintro-rust", "", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	now := time.Now().UTC()
	require.NoError(t, app.db.Create(&models.Submission{RepoName: "learner/intro-rust", LogstreamID: "old", CreatedAt: now.Add(-time.Hour)}).Error)
	require.NoError(t, app.db.Create(&models.Submission{RepoName: "learner/intro-rust", LogstreamID: "new", CreatedAt: now}).Error)

	resp, env = app.do(t, http.MethodGet, "/api/v1/submission/latest?repo_name=learner%2Fintro-rust", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.JSONEq(t, `{"logstream_id":"new"}`, string(env.Data))
}
