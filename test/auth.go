//go:build integration_test || all_tests

package test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"

	"github.com/2beens/workoutlog/internal/auth"
	"github.com/2beens/workoutlog/internal/misc"

	"github.com/stretchr/testify/require"
)

func httpGet(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, err
	}
	return http.DefaultClient.Do(req)
}

// doRequest sends body (when not nil) as JSON and returns the status and the
// raw response body.
func doRequest(ctx context.Context, t *testing.T, method, path, token string, body any) (int, []byte) {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		bodyJson, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewReader(bodyJson)
	}

	req, err := http.NewRequestWithContext(ctx, method, serverEndpoint+path, reqBody)
	require.NoError(t, err)
	req.Header.Set("User-Agent", "test-agent")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp.StatusCode, respBytes
}

func doLogin(ctx context.Context, t *testing.T) string {
	t.Helper()

	status, respBytes := doRequest(ctx, t, "POST", "/a/login", "", auth.Credentials{
		Username: testUsername,
		Password: testPassword,
	})
	require.Equal(t, http.StatusOK, status, fmt.Sprintf("login: %s", respBytes))

	var loginResp misc.LoginResponse
	require.NoError(t, json.Unmarshal(respBytes, &loginResp))
	require.NotEmpty(t, loginResp.Token)

	return loginResp.Token
}
