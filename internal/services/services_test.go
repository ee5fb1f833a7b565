package services

import (
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"subsidy-dashboard/internal/derive"
	"subsidy-dashboard/internal/display"
	"subsidy-dashboard/internal/filter"
	"subsidy-dashboard/internal/mapview"
	"subsidy-dashboard/internal/models"
	"subsidy-dashboard/internal/store"
	mock_store "subsidy-dashboard/internal/store/mocks"
	"subsidy-dashboard/internal/timeutil"
)

func expectList[T any](backend *mock_store.MockBackend, path string, items []T) *gomock.Call {
	return backend.EXPECT().Get(gomock.Any(), path, gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, _ url.Values, out any) error {
			*out.(*[]T) = items
			return nil
		})
}

func f64(v float64) *float64 { return &v }

var testRecipients = []models.Recipient{
	{
		ID: "1", Name: "Budi Santoso", NationalID: "3201010101010001", Address: "Jl. Merdeka 1",
		District: "Cibinong", Classification: models.ClassificationPoor, Status: models.RecipientActive,
		Subsidies: []models.SubsidyEntitlement{{ProductID: "p-1", MonthlyQuota: 10, RemainingQuota: 1}},
	},
	{
		ID: "2", Name: "Siti Aminah", NationalID: "3201010101010002", Address: "Jl. Sudirman 2",
		District: "Bogor", Classification: models.ClassificationMiddle, Status: models.RecipientInactive,
	},
	{
		ID: "3", Name: "Agus", NationalID: "3201010101010003", Address: "Cibinong Raya",
		District: "Cibinong", Classification: models.ClassificationWellOff, Status: models.RecipientActive,
	},
}

func TestListRecipientsFiltersAndDecorates(t *testing.T) {
	ctrl := gomock.NewController(t)
	backend := mock_store.NewMockBackend(ctrl)
	svc := NewRecipientService(store.NewRecipientStore(backend, store.Options{}))

	expectList(backend, "/recipients", testRecipients).Times(2)

	views, err := svc.ListRecipients(context.Background(), RecipientQuery{District: "Cibinong", Status: "active"})
	require.NoError(t, err)
	require.Len(t, views, 2)

	budi := views[0]
	assert.Equal(t, "Miskin", budi.ClassificationDisplay.Label)
	assert.Equal(t, display.ColorRed, budi.ClassificationDisplay.ColorClass)
	assert.Equal(t, "Aktif", budi.StatusDisplay.Label)
	require.Len(t, budi.Subsidies, 1)
	assert.Equal(t, 9, budi.Subsidies[0].UsedQuota)
	assert.Equal(t, derive.TierNear, budi.Subsidies[0].QuotaStatus.Tier)
	assert.InDelta(t, 10.0, budi.Subsidies[0].RemainingPercentage, 1e-9)

	// every list reads the upstream again
	views, err = svc.ListRecipients(context.Background(), RecipientQuery{Search: "  SITI "})
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, models.ID("2"), views[0].ID)
}

func TestListRecipientsSearchMatchesAddressAndNationalID(t *testing.T) {
	ctrl := gomock.NewController(t)
	backend := mock_store.NewMockBackend(ctrl)
	svc := NewRecipientService(store.NewRecipientStore(backend, store.Options{}))
	expectList(backend, "/recipients", testRecipients).Times(2)

	views, err := svc.ListRecipients(context.Background(), RecipientQuery{Search: "cibinong"})
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, models.ID("3"), views[0].ID)

	views, err = svc.ListRecipients(context.Background(), RecipientQuery{Search: "0002"})
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, models.ID("2"), views[0].ID)
}

func TestCreateRecipientValidatesBeforeCallingUpstream(t *testing.T) {
	ctrl := gomock.NewController(t)
	backend := mock_store.NewMockBackend(ctrl)
	svc := NewRecipientService(store.NewRecipientStore(backend, store.Options{}))

	_, err := svc.CreateRecipient(context.Background(), &models.CreateRecipientRequest{Name: "Tanpa NIK"})
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestGetRecipientReadsUpstream(t *testing.T) {
	ctrl := gomock.NewController(t)
	backend := mock_store.NewMockBackend(ctrl)
	svc := NewRecipientService(store.NewRecipientStore(backend, store.Options{}))

	backend.EXPECT().Get(gomock.Any(), "/recipients/9", gomock.Nil(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, _ url.Values, out any) error {
			*out.(*models.Recipient) = models.Recipient{ID: "9", Classification: "unknown"}
			return nil
		})

	view, err := svc.GetRecipient(context.Background(), "9")
	require.NoError(t, err)
	assert.Equal(t, display.FallbackLabel, view.ClassificationDisplay.Label)
	assert.Equal(t, display.ColorGray, view.ClassificationDisplay.ColorClass)
}

var testMerchants = []models.Merchant{
	{
		ID: "m-1", Name: "Kios Tani Makmur", District: "Cibinong", IsActive: true, MaxCapacity: 100,
		Latitude: f64(-6.48), Longitude: f64(106.84),
		Products: []models.StockHolding{{ProductID: "p-1", Stock: 10}, {ProductID: "p-2", Stock: 5}},
	},
	{
		ID: "m-2", Name: "Pangkalan LPG Sejahtera", District: "Bogor", IsActive: false, MaxCapacity: 200,
		Products: []models.StockHolding{{ProductID: "p-3", Stock: 150}},
	},
}

func TestListMerchantsStatusAndSeverity(t *testing.T) {
	ctrl := gomock.NewController(t)
	backend := mock_store.NewMockBackend(ctrl)
	svc := NewMerchantService(store.NewMerchantStore(backend, store.Options{}), nil)
	expectList(backend, "/merchants", testMerchants).Times(3)

	views, err := svc.ListMerchants(context.Background(), MerchantQuery{Status: "active"})
	require.NoError(t, err)
	require.Len(t, views, 1)

	m := views[0]
	assert.Equal(t, 15, m.TotalStock)
	assert.InDelta(t, 15.0, m.UtilizationPercentage, 1e-9)
	assert.Equal(t, derive.TierLow, m.StockStatus.Tier)
	assert.Equal(t, "Aktif", m.ActiveDisplay.Label)
	require.Len(t, m.Products, 2)

	views, err = svc.ListMerchants(context.Background(), MerchantQuery{Status: "inactive"})
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, derive.TierSufficient, views[0].StockStatus.Tier)
	assert.Equal(t, display.ColorRed, views[0].ActiveDisplay.ColorClass)

	views, err = svc.ListMerchants(context.Background(), MerchantQuery{Status: "all"})
	require.NoError(t, err)
	assert.Len(t, views, 2)
}

func TestMapMarkersRendersOnProvider(t *testing.T) {
	ctrl := gomock.NewController(t)
	backend := mock_store.NewMockBackend(ctrl)
	layer := mapview.NewLayer()
	svc := NewMerchantService(store.NewMerchantStore(backend, store.Options{}), layer)
	expectList(backend, "/merchants", testMerchants)

	markers, err := svc.MapMarkers(context.Background(), MerchantQuery{})
	require.NoError(t, err)
	require.Len(t, markers, 1)
	assert.Equal(t, models.ID("m-1"), markers[0].ID)
	assert.Len(t, layer.Snapshot().Markers, 1)
}

func TestMerchantProductsUsesMerchantCapacity(t *testing.T) {
	ctrl := gomock.NewController(t)
	backend := mock_store.NewMockBackend(ctrl)
	svc := NewMerchantService(store.NewMerchantStore(backend, store.Options{}), nil)
	backend.EXPECT().Get(gomock.Any(), "/merchants/m-1", gomock.Nil(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, _ url.Values, out any) error {
			*out.(*models.Merchant) = testMerchants[0]
			return nil
		})

	expectList(backend, "/merchants/m-1/products", []models.StockHolding{{ProductID: "p-1", Stock: 60}})
	lines, err := svc.MerchantProducts(context.Background(), "m-1")
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, derive.TierSufficient, lines[0].StockStatus.Tier)
}

func fixedNow(t *testing.T, now time.Time) {
	t.Helper()
	prev := filter.Now
	filter.Now = func() time.Time { return now }
	t.Cleanup(func() { filter.Now = prev })
}

func TestListTransactionsWindowAndSearch(t *testing.T) {
	now := time.Date(2024, 5, 20, 10, 0, 0, 0, timeutil.WIB)
	fixedNow(t, now)

	ctrl := gomock.NewController(t)
	backend := mock_store.NewMockBackend(ctrl)
	svc := NewTransactionService(store.NewTransactionStore(backend, store.Options{}))
	expectList(backend, "/transactions", []models.Transaction{
		{ID: "1", Number: "TRX-001", Date: now.Add(-2 * time.Hour), Status: models.TransactionPending,
			Recipient: &models.RecipientRef{Name: "Budi"}, Merchant: &models.MerchantRef{Name: "Kios Tani"}},
		{ID: "2", Number: "TRX-002", Date: now.AddDate(0, 0, -3), Status: models.TransactionCompleted,
			Recipient: &models.RecipientRef{Name: "Siti"}},
		{ID: "3", Number: "TRX-003", Date: now.AddDate(0, 0, -20), Status: models.TransactionFailed},
	}).Times(4)

	views, err := svc.ListTransactions(context.Background(), TransactionQuery{Window: "today"})
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "Menunggu", views[0].StatusDisplay.Label)

	views, err = svc.ListTransactions(context.Background(), TransactionQuery{Window: "week"})
	require.NoError(t, err)
	assert.Len(t, views, 2)

	views, err = svc.ListTransactions(context.Background(), TransactionQuery{Window: "bogus"})
	require.NoError(t, err)
	assert.Len(t, views, 3)

	views, err = svc.ListTransactions(context.Background(), TransactionQuery{Search: "kios"})
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "TRX-001", views[0].Number)
}

func TestListTransactionsSeesNewUpstreamRows(t *testing.T) {
	ctrl := gomock.NewController(t)
	backend := mock_store.NewMockBackend(ctrl)
	svc := NewTransactionService(store.NewTransactionStore(backend, store.Options{}))

	first := []models.Transaction{{ID: "1", Number: "TRX-001", Status: models.TransactionPending}}
	second := append(first, models.Transaction{ID: "2", Number: "TRX-002", Status: models.TransactionPending})
	gomock.InOrder(
		expectList(backend, "/transactions", first),
		expectList(backend, "/transactions", second),
	)

	views, err := svc.ListTransactions(context.Background(), TransactionQuery{})
	require.NoError(t, err)
	assert.Len(t, views, 1)

	views, err = svc.ListTransactions(context.Background(), TransactionQuery{})
	require.NoError(t, err)
	assert.Len(t, views, 2)
}

func TestApproveTransactionRequiresNumber(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := NewTransactionService(store.NewTransactionStore(mock_store.NewMockBackend(ctrl), store.Options{}))

	_, err := svc.ApproveTransaction(context.Background(), "  ")
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestDashboardSummary(t *testing.T) {
	now := time.Date(2024, 5, 20, 10, 0, 0, 0, timeutil.WIB)

	ctrl := gomock.NewController(t)
	backend := mock_store.NewMockBackend(ctrl)
	set := store.NewSet(backend, store.Options{})
	recipients := NewRecipientService(set.Recipients)
	merchants := NewMerchantService(set.Merchants, nil)
	transactions := NewTransactionService(set.Transactions)
	dash := NewDashboardService(recipients, merchants, transactions)
	dash.Now = func() time.Time { return now }

	expectList(backend, "/transactions", []models.Transaction{
		{ID: "1", Date: now.Add(-time.Hour), Status: models.TransactionPending},
		{ID: "2", Date: now.Add(-2 * time.Hour), Status: models.TransactionCompleted},
		{ID: "3", Date: now.Add(-3 * time.Hour), Status: models.TransactionCompleted},
		{ID: "4", Date: now.AddDate(0, 0, -1), Status: models.TransactionPending},
		{ID: "5", Date: now.AddDate(0, 0, -1), Status: models.TransactionCompleted},
	})
	expectList(backend, "/recipients", testRecipients)
	expectList(backend, "/merchants", testMerchants)

	summary, err := dash.Summary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, summary.TransactionsToday)
	assert.Equal(t, 2, summary.TransactionsYesterday)
	assert.InDelta(t, 50.0, summary.ChangePercent, 1e-9)
	assert.Equal(t, 2, summary.PendingTransactions)
	assert.Equal(t, map[string]int{"well-off": 1, "middle": 1, "poor": 1}, summary.Classifications)
	require.Len(t, summary.LowStockMerchants, 1)
	assert.Equal(t, models.ID("m-1"), summary.LowStockMerchants[0].ID)
}
