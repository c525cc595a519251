package gateway_test

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"github.com/alovak/nts-userdata/gateway"
	"github.com/alovak/nts-userdata/gateway/models"
)

func TestApp(t *testing.T) {
	config := gateway.DefaultConfig()
	config.HTTPAddr = "127.0.0.1:0"

	app := gateway.NewApp(slog.New(slog.NewTextHandler(io.Discard, nil)), config)
	require.NoError(t, app.Start())
	defer app.Shutdown()

	base := "http://" + app.Addr

	for _, path := range []string{"/-/live", "/-/ready"} {
		resp, err := http.Get(base + path)
		require.NoError(t, err)
		resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode, path)
	}

	body := `{"transaction":{"card_type":"Discover","transaction_type":"Balance","message_code":"AuthorizationOrBalanceInquiry"}}`
	resp, err := http.Post(base+"/userdata/bankcard", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out models.UserDataResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Equal(t, `02\01\01\02\2`, out.UserData)

	metrics, err := http.Get(base + "/metrics")
	require.NoError(t, err)
	defer metrics.Body.Close()
	text, err := io.ReadAll(metrics.Body)
	require.NoError(t, err)
	require.Contains(t, string(text), `nts_userdata_encoded_total{card_type="Discover",kind="bankcard",result="ok"} 1`)
}

func TestApp_UnsupportedBackend(t *testing.T) {
	config := gateway.DefaultConfig()
	config.RepoBackend = "redis"

	app := gateway.NewApp(slog.New(slog.NewTextHandler(io.Discard, nil)), config)
	require.ErrorContains(t, app.Start(), "unsupported REPO_BACKEND")

	config.RepoBackend = "pg"
	require.ErrorContains(t, app.Start(), "DB_DSN is required")
}
