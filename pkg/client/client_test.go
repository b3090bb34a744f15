package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/yigyaps/yigyaps/internal/apierr"
	"github.com/yigyaps/yigyaps/internal/types"
)

func TestLoginAdoptsToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/auth/login":
			require.Equal(t, http.MethodPost, r.Method)
			json.NewEncoder(w).Encode(map[string]any{
				"token":  "session-token",
				"apiKey": "yy_key",
				"user":   map[string]any{"username": "tester"},
			})
		case "/v1/auth/me":
			require.Equal(t, "Bearer session-token", r.Header.Get("Authorization"))
			json.NewEncoder(w).Encode(map[string]any{"username": "tester"})
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	c := New(srv.URL)
	result, err := c.Login(context.Background(), LoginInput{Username: "tester", Password: "hunter2hunter2"})
	require.NoError(t, err)
	require.Equal(t, "yy_key", result.ApiKey)

	me, err := c.GetMe(context.Background())
	require.NoError(t, err)
	require.Equal(t, "tester", me.Username)
}

func TestErrorEnvelopeDecodesToKinds(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]any{
			"error": "echo@1.0.0 is already published",
			"code":  "CONFLICT",
		})
	}))
	defer srv.Close()

	c := New(srv.URL, WithCredential("yy_key"))
	_, err := c.Publish(context.Background(), PublishInput{PackageID: "echo"})
	require.Error(t, err)
	require.True(t, apierr.IsKind(err, apierr.KindConflict))
	require.Contains(t, err.Error(), "already published")
}

func TestNetworkFailureIsNetworkKind(t *testing.T) {
	c := New("http://127.0.0.1:1") // nothing listens here
	_, err := c.GetMe(context.Background())
	require.Error(t, err)
	require.True(t, apierr.IsKind(err, apierr.KindNetwork))
	require.Equal(t, 3, apierr.ExitCode(err))
}

func TestSearchDecodesPageEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/packages", r.URL.Path)
		require.Equal(t, "echo", r.URL.Query().Get("q"))
		require.Equal(t, "music", r.URL.Query().Get("category"))
		json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{
				{"packageId": "echo", "version": "1.0.0", "priceUsd": "5.0000"},
			},
			"total":  1,
			"limit":  20,
			"offset": 0,
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	results, total, err := c.Search(context.Background(), SearchParams{Query: "echo", Category: "music"})
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Len(t, results, 1)
	require.Equal(t, "echo", results[0].PackageID)
	require.NotNil(t, results[0].PriceUSD)
	require.Equal(t, types.USD(50000), *results[0].PriceUSD)
}

func TestInstallReportsCreation(t *testing.T) {
	pkgID := uuid.New()
	instID := uuid.New()
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/installations", r.URL.Path)
		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, pkgID.String(), req["packageId"])
		require.Equal(t, "agent-1", req["agentId"])

		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusCreated)
		}
		json.NewEncoder(w).Encode(map[string]any{"id": instID, "agentId": "agent-1", "status": "active"})
	}))
	defer srv.Close()

	c := New(srv.URL, WithCredential("yy_key"))
	inst, created, err := c.Install(context.Background(), pkgID, "agent-1")
	require.NoError(t, err)
	require.True(t, created)
	require.Equal(t, instID, inst.ID)

	_, created, err = c.Install(context.Background(), pkgID, "agent-1")
	require.NoError(t, err)
	require.False(t, created)
}
