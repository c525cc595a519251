package gateway

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/alovak/nts-userdata/gateway/models"
	"github.com/alovak/nts-userdata/internal/metrics"
	"github.com/alovak/nts-userdata/nts"
	ntsmodels "github.com/alovak/nts-userdata/nts/models"
)

func TestService_AcceptorDefaults(t *testing.T) {
	config := DefaultConfig()
	config.Acceptor.PostalCode = "30301"
	svc := NewService(NewRepository(), nil, nil, config)

	req := models.UserDataRequest{Request: ntsmodels.Request{
		Transaction: ntsmodels.TransactionContext{
			CardType:        ntsmodels.Visa,
			TransactionType: ntsmodels.Sale,
			MessageCode:     ntsmodels.DataCollectOrSale,
		},
	}}

	resp, err := svc.BankcardUserData(context.Background(), req)
	require.NoError(t, err)
	require.Contains(t, resp.UserData, `\02\2\`)
	require.Contains(t, resp.UserData, `\07\30301    `)

	// values of the request win over the configuration
	req.Acceptor.PostalCode = "10001"
	resp, err = svc.BankcardUserData(context.Background(), req)
	require.NoError(t, err)
	require.Contains(t, resp.UserData, `\07\10001    `)
}

func TestService_ClockAndExplicitTimestamp(t *testing.T) {
	svc := NewService(NewRepository(), nil, nil, DefaultConfig())
	svc.now = func() time.Time { return time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC) }

	req := models.UserDataRequest{Request: ntsmodels.Request{
		Transaction: ntsmodels.TransactionContext{
			CardType:        ntsmodels.FleetWide,
			TransactionType: ntsmodels.DataCollect,
			MessageCode:     ntsmodels.CreditAdjustment,
		},
		DataCollect: &ntsmodels.DataCollectRequest{ApprovalCode: "1", BatchNumber: 1, SequenceNumber: 1},
	}}

	resp, err := svc.NonBankcardUserData(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, "000001"+"01"+"001"+"010230"+"030405", resp.UserData)

	at := time.Date(2029, 12, 5, 21, 7, 9, 0, time.UTC)
	req.At = &at
	resp, err = svc.NonBankcardUserData(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, "000001"+"01"+"001"+"120529"+"210709", resp.UserData)
}

func TestService_Metrics(t *testing.T) {
	reg := metrics.NewRegistry()
	svc := NewService(NewRepository(), nts.NewEncoder(nil, nil), reg, DefaultConfig())
	ctx := context.Background()

	ok := models.UserDataRequest{Request: ntsmodels.Request{
		Transaction: ntsmodels.TransactionContext{
			CardType:        ntsmodels.Discover,
			TransactionType: ntsmodels.Balance,
			MessageCode:     ntsmodels.AuthorizationOrBalanceInquiry,
		},
	}}
	_, err := svc.BankcardUserData(ctx, ok)
	require.NoError(t, err)

	bad := models.UserDataRequest{Request: ntsmodels.Request{
		Transaction: ntsmodels.TransactionContext{
			CardType:        ntsmodels.VisaFleet,
			TransactionType: ntsmodels.DataCollect,
			MessageCode:     ntsmodels.DataCollectOrSale,
		},
	}}
	_, err = svc.ProductData(ctx, bad)
	require.ErrorIs(t, err, nts.ErrMissingRequiredData)

	_, err = svc.NonBankcardUserData(ctx, models.UserDataRequest{ReferenceID: "nope"})
	require.ErrorIs(t, err, ErrNotFound)

	require.Equal(t, 1.0, testutil.ToFloat64(reg.Encoded.WithLabelValues("bankcard", "Discover", metrics.ResultOK)))
	require.Equal(t, 1.0, testutil.ToFloat64(reg.Encoded.WithLabelValues("product", "VisaFleet", metrics.ResultError)))
	require.Equal(t, 1.0, testutil.ToFloat64(reg.Failures.WithLabelValues("missing_required_data")))
	require.Equal(t, 1.0, testutil.ToFloat64(reg.ReferencesMissing))
}

func TestService_CreateReference(t *testing.T) {
	repo := NewRepository()
	svc := NewService(repo, nil, nil, DefaultConfig())

	ref, err := svc.CreateReference(context.Background(), models.CreateReference{OriginalMessageCode: "01"})
	require.NoError(t, err)
	require.NotNil(t, ref.UserDataTags)
	require.Len(t, repo.References, 1)

	got, err := svc.GetReference(context.Background(), ref.ID)
	require.NoError(t, err)
	require.Same(t, ref, got)

	// a duplicated id is refused by the memory backend
	err = repo.CreateReference(context.Background(), ref)
	require.ErrorIs(t, err, ErrConflict)
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("HTTP_ADDR", "127.0.0.1:0")
	t.Setenv("NTS_TZ", "America/Chicago")
	t.Setenv("POSTAL_CODE", "60601")

	c := ConfigFromEnv()
	require.Equal(t, "127.0.0.1:0", c.HTTPAddr)
	require.Equal(t, "America/Chicago", c.TimeZone)
	require.Equal(t, "60601", c.Acceptor.PostalCode)
	require.Equal(t, "mem", c.RepoBackend)
	require.Equal(t, "2", c.Acceptor.TerminalCapability)
}
