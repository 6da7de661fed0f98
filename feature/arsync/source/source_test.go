package source_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"ar-sync/core/apierror"
	"ar-sync/core/erp"
	"ar-sync/core/storage/mocks"
	"ar-sync/feature/arsync/source"

	"github.com/minio/minio-go/v7"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeQuerier struct {
	rows  []erp.Row
	err   error
	query string
}

func (f *fakeQuerier) Query(_ context.Context, q string) ([]erp.Row, error) {
	f.query = q
	return f.rows, f.err
}

type fakeSnapshot struct {
	rows  []erp.Row
	err   error
	calls int
}

func (f *fakeSnapshot) Load(context.Context) ([]erp.Row, error) {
	f.calls++
	return f.rows, f.err
}

type fakeLister struct {
	customers []erp.Customer
	err       error
	limit     int
	calls     int
}

func (f *fakeLister) Customers(_ context.Context, limit int) ([]erp.Customer, error) {
	f.calls++
	f.limit = limit
	return f.customers, f.err
}

func TestRecordsFromRows(t *testing.T) {
	rows := []erp.Row{
		{"customer_id": float64(293), "customer_name": "CALLEJA, S.A DE C.V", "total_ar_balance": 82346.0, "past_due_amount": "82400.00"},
		{"customer_id": "", "customer_name": "No Id", "total_ar_balance": 1.0},
		{"customer_id": "67", "customer_name": "DIST. LEOPHARMA", "total_ar_balance": "abc"},
		{"customer_id": "68", "customer_name": "Refund", "total_ar_balance": -5.0},
		{"customer_id": "69", "customer_name": "  Grupo Norte ", "total_ar_balance": nil, "past_due_amount": nil},
		{"customer_id": "70", "customer_name": "   ", "total_ar_balance": 3.0},
	}

	records, rejected := source.RecordsFromRows(rows)

	require.Len(t, records, 2)
	assert.Equal(t, "293", records[0].ExternalCustomerID)
	assert.Equal(t, "CALLEJA, S.A DE C.V", records[0].DisplayName)
	assert.True(t, decimal.NewFromInt(82346).Equal(records[0].TotalBalance))
	assert.True(t, decimal.NewFromInt(82400).Equal(records[0].PastDueBalance))
	assert.Equal(t, "Grupo Norte", records[1].DisplayName)
	assert.True(t, records[1].TotalBalance.IsZero())

	require.Len(t, rejected, 4)
	assert.Equal(t, 1, rejected[0].Index)
	assert.Contains(t, rejected[0].Reason, "missing customer_id")
	assert.Equal(t, "67", rejected[1].ExternalCustomerID)
	assert.Contains(t, rejected[1].Reason, "invalid total_ar_balance")
	assert.Contains(t, rejected[2].Reason, "negative total_ar_balance")
	assert.Equal(t, "70", rejected[3].ExternalCustomerID)
	assert.Contains(t, rejected[3].Reason, "missing customer_name")
}

func TestRowsFromCustomers(t *testing.T) {
	rows := source.RowsFromCustomers([]erp.Customer{
		{ID: "293", CompanyName: "CALLEJA, S.A DE C.V", EntityID: "CUST-293"},
		{ID: "301", EntityID: "CUST-301"},
	})

	records, rejected := source.RecordsFromRows(rows)
	assert.Empty(t, rejected)
	require.Len(t, records, 2)
	assert.Equal(t, "CALLEJA, S.A DE C.V", records[0].DisplayName)
	assert.Equal(t, "CUST-301", records[1].DisplayName)
	assert.True(t, records[1].TotalBalance.IsZero())
	assert.True(t, records[1].PastDueBalance.IsZero())
}

func TestERPSource_Fetch(t *testing.T) {
	t.Run("UsesDefaultQuery", func(t *testing.T) {
		q := &fakeQuerier{rows: []erp.Row{{"customer_id": "1", "customer_name": "A", "total_ar_balance": 1.5}}}
		src := source.NewERPSource(q, "", nil, zap.NewNop())

		batch, err := src.Fetch(context.Background())
		require.NoError(t, err)
		assert.Equal(t, source.DefaultQuery, q.query)
		assert.Equal(t, source.OriginNetSuite, batch.Origin)
		assert.Len(t, batch.Records, 1)
	})

	t.Run("SnapshotOnlyWhenEmpty", func(t *testing.T) {
		q := &fakeQuerier{rows: []erp.Row{}}
		snap := &fakeSnapshot{rows: []erp.Row{{"customer_id": "293", "customer_name": "CALLEJA", "total_ar_balance": 10.0}}}
		src := source.NewERPSource(q, "SELECT 1", snap, zap.NewNop())

		batch, err := src.Fetch(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "SELECT 1", q.query)
		assert.Equal(t, source.OriginSnapshot, batch.Origin)
		assert.Equal(t, 1, snap.calls)
		require.Len(t, batch.Records, 1)
		assert.Equal(t, "293", batch.Records[0].ExternalCustomerID)
	})

	t.Run("QueryErrorIsFatal", func(t *testing.T) {
		remote := &apierror.RemoteAPIError{Service: "netsuite", Op: "suiteql", StatusCode: 401}
		q := &fakeQuerier{err: remote}
		snap := &fakeSnapshot{}
		src := source.NewERPSource(q, "", snap, zap.NewNop())

		_, err := src.Fetch(context.Background())
		require.Error(t, err)
		var target *apierror.RemoteAPIError
		assert.ErrorAs(t, err, &target)
		assert.Equal(t, 0, snap.calls)
	})

	t.Run("SnapshotError", func(t *testing.T) {
		src := source.NewERPSource(&fakeQuerier{}, "", &fakeSnapshot{err: errors.New("boom")}, zap.NewNop())

		_, err := src.Fetch(context.Background())
		assert.ErrorContains(t, err, "load snapshot")
	})

	t.Run("CustomerListBeforeSnapshot", func(t *testing.T) {
		lister := &fakeLister{customers: []erp.Customer{{ID: "293", CompanyName: "CALLEJA"}}}
		snap := &fakeSnapshot{rows: []erp.Row{{"customer_id": "1", "customer_name": "A"}}}
		src := source.NewERPSource(&fakeQuerier{rows: []erp.Row{}}, "", snap, zap.NewNop())
		src.SetCustomerList(lister, 100)

		batch, err := src.Fetch(context.Background())
		require.NoError(t, err)
		assert.Equal(t, source.OriginCustomers, batch.Origin)
		assert.Equal(t, 100, lister.limit)
		assert.Equal(t, 0, snap.calls)
		require.Len(t, batch.Records, 1)
		assert.Equal(t, "293", batch.Records[0].ExternalCustomerID)
		assert.True(t, batch.Records[0].TotalBalance.IsZero())
	})

	t.Run("EmptyCustomerListFallsToSnapshot", func(t *testing.T) {
		lister := &fakeLister{customers: []erp.Customer{}}
		snap := &fakeSnapshot{rows: []erp.Row{{"customer_id": "1", "customer_name": "A"}}}
		src := source.NewERPSource(&fakeQuerier{rows: []erp.Row{}}, "", snap, zap.NewNop())
		src.SetCustomerList(lister, 10)

		batch, err := src.Fetch(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 1, lister.calls)
		assert.Equal(t, source.OriginSnapshot, batch.Origin)
	})

	t.Run("CustomerListErrorIsFatal", func(t *testing.T) {
		lister := &fakeLister{err: &apierror.RemoteAPIError{Service: "netsuite", Op: "customers", StatusCode: 403}}
		snap := &fakeSnapshot{}
		src := source.NewERPSource(&fakeQuerier{rows: []erp.Row{}}, "", snap, zap.NewNop())
		src.SetCustomerList(lister, 10)

		_, err := src.Fetch(context.Background())
		var target *apierror.RemoteAPIError
		require.ErrorAs(t, err, &target)
		assert.ErrorContains(t, err, "list customers")
		assert.Equal(t, 0, snap.calls)
	})

	t.Run("QueryRowsSkipCustomerList", func(t *testing.T) {
		lister := &fakeLister{}
		src := source.NewERPSource(&fakeQuerier{rows: []erp.Row{{"customer_id": "1", "customer_name": "A"}}}, "", nil, zap.NewNop())
		src.SetCustomerList(lister, 10)

		batch, err := src.Fetch(context.Background())
		require.NoError(t, err)
		assert.Equal(t, source.OriginNetSuite, batch.Origin)
		assert.Equal(t, 0, lister.calls)
	})

	t.Run("EmptyWithoutSnapshot", func(t *testing.T) {
		src := source.NewERPSource(&fakeQuerier{rows: []erp.Row{}}, "", nil, zap.NewNop())

		batch, err := src.Fetch(context.Background())
		require.NoError(t, err)
		assert.Equal(t, source.OriginNetSuite, batch.Origin)
		assert.Empty(t, batch.Records)
	})
}

func TestStorageSnapshot_Load(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    int
		wantErr bool
	}{
		{name: "Array", body: `[{"customer_id":"1","total_ar_balance":"10.50"},{"customer_id":"2"}]`, want: 2},
		{name: "Items", body: `{"items":[{"customer_id":"1"}],"hasMore":false}`, want: 1},
		{name: "NoItems", body: `{}`, want: 0},
		{name: "Empty", body: ``, want: 0},
		{name: "Invalid", body: `{"items":`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := new(mocks.Client)
			client.On("GetObject", mock.Anything, "ar-sync", "snapshots/ar.json", minio.GetObjectOptions{}).
				Return(io.NopCloser(bytes.NewBufferString(tt.body)), nil)

			snap := source.NewStorageSnapshot(client, "ar-sync", "snapshots/ar.json")
			rows, err := snap.Load(context.Background())

			if tt.wantErr {
				var parseErr *apierror.ParseError
				require.ErrorAs(t, err, &parseErr)
				assert.Equal(t, tt.body, parseErr.Raw)
				return
			}
			require.NoError(t, err)
			assert.Len(t, rows, tt.want)
			client.AssertExpectations(t)
		})
	}
}

func TestStorageSnapshot_NumbersKeepPrecision(t *testing.T) {
	client := new(mocks.Client)
	client.On("GetObject", mock.Anything, "b", "o", mock.Anything).
		Return(io.NopCloser(bytes.NewBufferString(`[{"customer_id":293,"customer_name":"CALLEJA","total_ar_balance":82346.005}]`)), nil)

	rows, err := source.NewStorageSnapshot(client, "b", "o").Load(context.Background())
	require.NoError(t, err)

	records, rejected := source.RecordsFromRows(rows)
	require.Empty(t, rejected)
	assert.Equal(t, "293", records[0].ExternalCustomerID)
	assert.Equal(t, "82346.005", records[0].TotalBalance.String())
}

func TestStorageSnapshot_GetError(t *testing.T) {
	client := new(mocks.Client)
	client.On("GetObject", mock.Anything, "b", "o", mock.Anything).Return(nil, errors.New("no such key"))

	_, err := source.NewStorageSnapshot(client, "b", "o").Load(context.Background())
	assert.ErrorContains(t, err, "b/o")
	assert.ErrorContains(t, err, "no such key")
}
