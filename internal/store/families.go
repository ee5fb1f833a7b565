package store

import (
	"context"
	"net/url"

	"subsidy-dashboard/internal/api"
	"subsidy-dashboard/internal/models"
)

type (
	RecipientStore = Store[models.Recipient, models.RecipientStatistics]
	ProductStore   = Store[models.Product, models.ProductStatistics]
)

// Transaction actions, used as in-flight key prefixes.
const (
	OpApprove       = "approve"
	OpReject        = "reject"
	OpFetchProducts = "fetchProducts"
)

var recipientMessages = Messages{
	FetchAll:   "Gagal memuat data penerima",
	FetchOne:   "Gagal memuat detail penerima",
	Create:     "Gagal menambahkan penerima",
	Update:     "Gagal memperbarui penerima",
	Remove:     "Gagal menghapus penerima",
	Statistics: "Gagal memuat statistik penerima",
}

var merchantMessages = Messages{
	FetchAll:   "Gagal memuat data merchant",
	FetchOne:   "Gagal memuat detail merchant",
	Create:     "Gagal menambahkan merchant",
	Update:     "Gagal memperbarui merchant",
	Remove:     "Gagal menghapus merchant",
	Statistics: "Gagal memuat statistik merchant",
}

var productMessages = Messages{
	FetchAll:   "Gagal memuat data produk",
	FetchOne:   "Gagal memuat detail produk",
	Create:     "Gagal menambahkan produk",
	Update:     "Gagal memperbarui produk",
	Remove:     "Gagal menghapus produk",
	Statistics: "Gagal memuat statistik produk",
}

var transactionMessages = Messages{
	FetchAll:   "Gagal memuat data transaksi",
	FetchOne:   "Gagal memuat detail transaksi",
	Create:     "Gagal membuat transaksi",
	Update:     "Gagal memperbarui transaksi",
	Remove:     "Gagal menghapus transaksi",
	Statistics: "Gagal memuat statistik transaksi",
}

const (
	msgFetchProducts = "Gagal memuat produk merchant"
	msgApprove       = "Gagal menyetujui transaksi"
	msgReject        = "Gagal menolak transaksi"
)

func NewRecipientStore(backend Backend, opts Options) *RecipientStore {
	return New[models.Recipient, models.RecipientStatistics](backend, "recipients", "/recipients", recipientMessages, opts)
}

func NewProductStore(backend Backend, opts Options) *ProductStore {
	return New[models.Product, models.ProductStatistics](backend, "products", "/products", productMessages, opts)
}

// MerchantStore adds the per-merchant stock listing.
type MerchantStore struct {
	*Store[models.Merchant, models.MerchantStatistics]
}

func NewMerchantStore(backend Backend, opts Options) *MerchantStore {
	return &MerchantStore{
		Store: New[models.Merchant, models.MerchantStatistics](backend, "merchants", "/merchants", merchantMessages, opts),
	}
}

// FetchProducts returns the stock holdings of merchant id. The cache is not touched.
func (s *MerchantStore) FetchProducts(ctx context.Context, id models.ID) ([]models.StockHolding, error) {
	release, _ := s.inflight.begin(opKey(OpFetchProducts, string(id)), false)
	defer release()

	var holdings []models.StockHolding
	if err := s.backend.Get(ctx, s.entityPath(id)+"/products", nil, &holdings); err != nil {
		return nil, s.fail(OpFetchProducts, err, msgFetchProducts)
	}
	if holdings == nil {
		holdings = []models.StockHolding{}
	}
	return holdings, nil
}

// TransactionStore adds the approve and reject actions, addressed by transaction number.
type TransactionStore struct {
	*Store[models.Transaction, models.TransactionStatistics]
}

func NewTransactionStore(backend Backend, opts Options) *TransactionStore {
	return &TransactionStore{
		Store: New[models.Transaction, models.TransactionStatistics](backend, "transactions", "/transactions", transactionMessages, opts),
	}
}

func (s *TransactionStore) Approve(ctx context.Context, number string) (models.Transaction, error) {
	return s.Action(ctx, OpApprove, number, msgApprove, func(ctx context.Context) (models.Transaction, error) {
		var tx models.Transaction
		err := s.backend.Post(ctx, s.actionPath(number, "approve"), struct{}{}, &tx)
		return tx, err
	})
}

func (s *TransactionStore) Reject(ctx context.Context, number, notes string) (models.Transaction, error) {
	return s.Action(ctx, OpReject, number, msgReject, func(ctx context.Context) (models.Transaction, error) {
		var tx models.Transaction
		err := s.backend.Post(ctx, s.actionPath(number, "reject"), models.RejectTransactionRequest{Notes: notes}, &tx)
		return tx, err
	})
}

// FindByNumber returns the cached transaction with number.
func (s *TransactionStore) FindByNumber(number string) (models.Transaction, bool) {
	for _, tx := range s.Items() {
		if tx.Number == number {
			return tx, true
		}
	}
	return models.Transaction{}, false
}

func (s *TransactionStore) actionPath(number, action string) string {
	return s.resource + "/" + url.PathEscape(number) + "/" + action
}

// Set groups the four family stores.
type Set struct {
	Recipients   *RecipientStore
	Merchants    *MerchantStore
	Products     *ProductStore
	Transactions *TransactionStore
}

func NewSet(backend Backend, opts Options) *Set {
	return &Set{
		Recipients:   NewRecipientStore(backend, opts),
		Merchants:    NewMerchantStore(backend, opts),
		Products:     NewProductStore(backend, opts),
		Transactions: NewTransactionStore(backend, opts),
	}
}

var _ Backend = (*api.Client)(nil)
