package client

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/friendr/quiz-session/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testPayload() models.SubmissionPayload {
	answers := models.NewAnswerSet()
	dog := models.DogIntroSlow
	cat := models.CatBehaviorCalm
	kids := models.KidsBehaviorGentle
	strangers := models.StrangersShy
	answers.DogIntroduction = &dog
	answers.CatBehavior = &cat
	answers.KidsBehavior = &kids
	answers.StrangersBehavior = &strangers
	answers.CatsImportance = 4
	answers.StrangersImportance = 3
	return models.NewSubmissionPayload(answers)
}

func TestHTTPMatchClient_Submit(t *testing.T) {
	var gotBody []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, QuickMatchPath, r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))

		gotBody, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"matches":[{"name":"Rex"}]}`))
	}))
	defer server.Close()

	c := NewHTTPMatchClient(HTTPClientConfig{BaseURL: server.URL + "/", Timeout: time.Second, Logger: testLogger()})

	resp, err := c.Submit(context.Background(), testPayload())
	require.NoError(t, err)
	assert.JSONEq(t, `{"matches":[{"name":"Rex"}]}`, string(resp))

	assert.JSONEq(t, `{
		"dogs": "slow",
		"cats": "calm",
		"kids": "gentle",
		"energy": 3,
		"affection": 3,
		"training": 3,
		"meta": {"dogsImportance": 2, "catsImportance": 4, "kidsImportance": 2, "strangersImportance": 3}
	}`, string(gotBody))
}

func TestHTTPMatchClient_Errors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		check   func(t *testing.T, err error)
	}{
		{
			name: "non 2xx status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "backend down", http.StatusServiceUnavailable)
			},
			check: func(t *testing.T, err error) {
				var statusErr *StatusError
				require.ErrorAs(t, err, &statusErr)
				assert.Equal(t, http.StatusServiceUnavailable, statusErr.StatusCode)
				assert.Equal(t, "backend down", statusErr.Body)
			},
		},
		{
			name: "invalid JSON body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("<html>oops</html>"))
			},
			check: func(t *testing.T, err error) {
				assert.ErrorContains(t, err, "invalid JSON")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			c := NewHTTPMatchClient(HTTPClientConfig{BaseURL: server.URL, Timeout: time.Second, Logger: testLogger()})
			resp, err := c.Submit(context.Background(), testPayload())

			assert.Nil(t, resp)
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func TestHTTPMatchClient_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	c := NewHTTPMatchClient(HTTPClientConfig{BaseURL: url, Timeout: time.Second, Logger: testLogger()})
	_, err := c.Submit(context.Background(), testPayload())

	assert.ErrorContains(t, err, "failed to reach matching backend")
}

func TestSimulatedMatchClient_Submit(t *testing.T) {
	c := NewSimulatedMatchClient(10*time.Millisecond, testLogger())

	resp, err := c.Submit(context.Background(), testPayload())
	require.NoError(t, err)

	var decoded struct {
		Simulated   bool                     `json:"simulated"`
		Preferences models.SubmissionPayload `json:"preferences"`
	}
	require.NoError(t, json.Unmarshal(resp, &decoded))
	assert.True(t, decoded.Simulated)
	assert.Equal(t, testPayload(), decoded.Preferences)
}

func TestSimulatedMatchClient_Cancelled(t *testing.T) {
	c := NewSimulatedMatchClient(time.Hour, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Submit(ctx, testPayload())
	assert.ErrorIs(t, err, context.Canceled)
}
