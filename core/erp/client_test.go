package erp_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"ar-sync/core/apierror"
	"ar-sync/core/erp"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testConfig(baseURL string) erp.Config {
	return erp.Config{
		AccountID:      "7882010_SB1",
		ConsumerKey:    "ck",
		ConsumerSecret: "cs",
		TokenID:        "tk",
		TokenSecret:    "ts",
		BaseURL:        baseURL,
		TimeoutSeconds: 5,
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*erp.Config)
		field  string
	}{
		{"AccountID", func(c *erp.Config) { c.AccountID = "" }, "account_id"},
		{"ConsumerKey", func(c *erp.Config) { c.ConsumerKey = "" }, "consumer_key"},
		{"ConsumerSecret", func(c *erp.Config) { c.ConsumerSecret = " " }, "consumer_secret"},
		{"TokenID", func(c *erp.Config) { c.TokenID = "" }, "token_id"},
		{"TokenSecret", func(c *erp.Config) { c.TokenSecret = "" }, "token_secret"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig("")
			tt.mutate(&cfg)

			err := cfg.Validate()
			var authErr *apierror.AuthConfigError
			require.ErrorAs(t, err, &authErr)
			assert.Equal(t, tt.field, authErr.Field)
			assert.Equal(t, "netsuite", authErr.Service)
		})
	}

	assert.NoError(t, testConfig("").Validate())
}

func TestConfig_Derived(t *testing.T) {
	cfg := testConfig("")
	assert.Equal(t, "7882010_SB1", cfg.Realm())
	assert.Equal(t, "https://7882010-sb1.suitetalk.api.netsuite.com", cfg.APIBaseURL())

	cfg.AccountID = "7882010"
	assert.Equal(t, "https://7882010.suitetalk.api.netsuite.com", cfg.APIBaseURL())

	cfg.BaseURL = "http://localhost:9999/"
	assert.Equal(t, "http://localhost:9999", cfg.APIBaseURL())
}

func TestNewClient_MissingCredentials(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.TokenSecret = ""

	client, err := erp.NewClient(cfg, zap.NewNop())
	assert.Nil(t, client)
	var authErr *apierror.AuthConfigError
	assert.ErrorAs(t, err, &authErr)
	assert.Zero(t, atomic.LoadInt32(&hits))
}

func TestQuery_SendsSignedRequest(t *testing.T) {
	var (
		gotAuth   string
		gotPrefer string
		gotPath   string
		gotMethod string
		gotBody   map[string]string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPrefer = r.Header.Get("Prefer")
		gotPath = r.URL.Path
		gotMethod = r.Method
		_ = json.NewDecoder(r.Body).Decode(&gotBody)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"items":[{"customer_id":"293","customer_name":"CALLEJA, S.A DE C.V","total_ar_balance":"82346.00","past_due_amount":82400}],"hasMore":false}`))
	}))
	defer srv.Close()

	client, err := erp.NewClient(testConfig(srv.URL), zap.NewNop())
	require.NoError(t, err)

	rows, err := client.Query(context.Background(), "SELECT 1")
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, erp.SuiteQLPath, gotPath)
	assert.Equal(t, "transient", gotPrefer)
	assert.Equal(t, "SELECT 1", gotBody["q"])
	assert.True(t, strings.HasPrefix(gotAuth, `OAuth realm="7882010_SB1", oauth_consumer_key="ck", oauth_token="tk", oauth_signature_method="HMAC-SHA256"`))
	assert.Contains(t, gotAuth, `oauth_signature="`)

	require.Len(t, rows, 1)
	assert.Equal(t, "293", rows[0]["customer_id"])
	assert.Equal(t, "CALLEJA, S.A DE C.V", rows[0]["customer_name"])
	assert.Equal(t, float64(82400), rows[0]["past_due_amount"])
}

func TestQuery_NoItems(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"count":0}`))
	}))
	defer srv.Close()

	client, err := erp.NewClient(testConfig(srv.URL), zap.NewNop())
	require.NoError(t, err)

	rows, err := client.Query(context.Background(), "SELECT 1")
	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestQuery_ParseError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>maintenance</html>`))
	}))
	defer srv.Close()

	client, err := erp.NewClient(testConfig(srv.URL), zap.NewNop())
	require.NoError(t, err)

	_, err = client.Query(context.Background(), "SELECT 1")
	var parseErr *apierror.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, "<html>maintenance</html>", parseErr.Raw)
}

func TestQuery_RemoteError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"title":"Unauthorized","o:errorDetails":[{"detail":"Invalid login attempt."}]}`))
	}))
	defer srv.Close()

	client, err := erp.NewClient(testConfig(srv.URL), zap.NewNop())
	require.NoError(t, err)

	_, err = client.Query(context.Background(), "SELECT 1")
	var apiErr *apierror.RemoteAPIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "Invalid login attempt.", apiErr.Message)
}

func TestQuery_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	client, err := erp.NewClient(testConfig(srv.URL), zap.NewNop())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err = client.Query(ctx, "SELECT 1")
	var transportErr *apierror.TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestQuery_Non2xxNonJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`<html>502 Bad Gateway</html>`))
	}))
	defer srv.Close()

	client, err := erp.NewClient(testConfig(srv.URL), zap.NewNop())
	require.NoError(t, err)

	_, err = client.Query(context.Background(), "SELECT 1")
	var apiErr *apierror.RemoteAPIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Equal(t, "<html>502 Bad Gateway</html>", apiErr.Body)

	var parseErr *apierror.ParseError
	assert.False(t, errors.As(err, &parseErr))
}

func TestCustomers_SignedGet(t *testing.T) {
	var gotMethod, gotPath, gotLimit, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotLimit = r.URL.Query().Get("limit")
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"items":[{"id":"293","companyName":"CALLEJA, S.A DE C.V"},{"id":"301","entityId":"CUST-301"}],"hasMore":false}`))
	}))
	defer srv.Close()

	client, err := erp.NewClient(testConfig(srv.URL), zap.NewNop())
	require.NoError(t, err)

	customers, err := client.Customers(context.Background(), 0)
	require.NoError(t, err)

	assert.Equal(t, http.MethodGet, gotMethod)
	assert.Equal(t, erp.CustomerRecordPath, gotPath)
	assert.Equal(t, "100", gotLimit)
	assert.True(t, strings.HasPrefix(gotAuth, `OAuth realm="7882010_SB1"`))

	require.Len(t, customers, 2)
	assert.Equal(t, "293", customers[0].ID)
	assert.Equal(t, "CALLEJA, S.A DE C.V", customers[0].DisplayName())
	assert.Equal(t, "CUST-301", customers[1].DisplayName())
}

func TestCustomers_RemoteError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"title":"Forbidden"}`))
	}))
	defer srv.Close()

	client, err := erp.NewClient(testConfig(srv.URL), zap.NewNop())
	require.NoError(t, err)

	_, err = client.Customers(context.Background(), 10)
	var apiErr *apierror.RemoteAPIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusForbidden, apiErr.StatusCode)
	assert.Equal(t, "customers", apiErr.Op)
	assert.Equal(t, "Forbidden", apiErr.Message)
}
