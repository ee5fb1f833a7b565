package tui

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"subsidy-dashboard/internal/modal"
	"subsidy-dashboard/internal/models"
	"subsidy-dashboard/internal/services"
)

type fakeSource struct {
	recipients   []services.RecipientView
	merchants    []services.MerchantView
	transactions []services.TransactionView
	listErr      error
	actionErr    error

	recipientQueries   []services.RecipientQuery
	transactionQueries []services.TransactionQuery
	approved           []string
	rejected           map[string]string
}

func (f *fakeSource) ListRecipients(_ context.Context, q services.RecipientQuery) ([]services.RecipientView, error) {
	f.recipientQueries = append(f.recipientQueries, q)
	return f.recipients, f.listErr
}

func (f *fakeSource) ListMerchants(context.Context, services.MerchantQuery) ([]services.MerchantView, error) {
	return f.merchants, f.listErr
}

func (f *fakeSource) ListTransactions(_ context.Context, q services.TransactionQuery) ([]services.TransactionView, error) {
	f.transactionQueries = append(f.transactionQueries, q)
	return f.transactions, f.listErr
}

func (f *fakeSource) ApproveTransaction(_ context.Context, number string) (services.TransactionView, error) {
	f.approved = append(f.approved, number)
	if f.actionErr != nil {
		return services.TransactionView{}, f.actionErr
	}
	return f.settle(number, models.TransactionCompleted, ""), nil
}

func (f *fakeSource) RejectTransaction(_ context.Context, number string, req *models.RejectTransactionRequest) (services.TransactionView, error) {
	if f.rejected == nil {
		f.rejected = map[string]string{}
	}
	f.rejected[number] = req.Notes
	if f.actionErr != nil {
		return services.TransactionView{}, f.actionErr
	}
	return f.settle(number, models.TransactionFailed, req.Notes), nil
}

func (f *fakeSource) settle(number string, status models.TransactionStatus, notes string) services.TransactionView {
	for _, t := range f.transactions {
		if t.Number == number {
			t.Transaction.Status = status
			t.Transaction.Notes = notes
			return services.NewTransactionView(t.Transaction)
		}
	}
	return services.TransactionView{}
}

func newFakeSource() *fakeSource {
	date := time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)
	return &fakeSource{
		recipients: []services.RecipientView{
			services.NewRecipientView(models.Recipient{ID: "r1", Name: "Alice", NationalID: "3201", Classification: models.ClassificationPoor, Status: models.RecipientActive}),
			services.NewRecipientView(models.Recipient{ID: "r2", Name: "Budi", NationalID: "3202", Classification: models.ClassificationMiddle, Status: models.RecipientSuspended}),
		},
		merchants: []services.MerchantView{
			services.NewMerchantView(models.Merchant{ID: "m1", Name: "Toko Tani", IsActive: true, MaxCapacity: 100,
				Products: []models.StockHolding{{ProductID: "p1", Stock: 10}}}),
		},
		transactions: []services.TransactionView{
			services.NewTransactionView(models.Transaction{ID: "t1", Number: "TRX-001", Date: date, Status: models.TransactionPending, TotalAmount: decimal.NewFromInt(45000)}),
			services.NewTransactionView(models.Transaction{ID: "t2", Number: "TRX-002", Date: date, Status: models.TransactionCompleted, TotalAmount: decimal.NewFromInt(9000)}),
		},
	}
}

func press(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// send applies msg and returns the new model with its command.
func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out, cmd
}

// run applies msg and then feeds the resulting command's message back.
func run(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	m, cmd := send(t, m, msg)
	require.NotNil(t, cmd)
	m, _ = send(t, m, cmd())
	return m
}

func loaded(t *testing.T, src *fakeSource) Model {
	t.Helper()
	m := New(context.Background(), src)
	m, _ = send(t, m, m.load(PageRecipients)())
	return m
}

func transactionsPage(t *testing.T, src *fakeSource) Model {
	t.Helper()
	m := loaded(t, src)
	m = run(t, m, press("tab"))
	return run(t, m, press("tab"))
}

func TestRecipientsLoad(t *testing.T) {
	src := newFakeSource()
	m := loaded(t, src)

	assert.False(t, m.loading)
	assert.Len(t, m.table.Rows(), 2)
	assert.Equal(t, "Miskin", m.table.Rows()[0][3])
	assert.Contains(t, m.View(), "Alice")
}

func TestLoadErrorIsShown(t *testing.T) {
	src := newFakeSource()
	src.listErr = errors.New("Gagal memuat data penerima")
	m := loaded(t, src)

	assert.Empty(t, m.table.Rows())
	assert.Contains(t, m.View(), "Gagal memuat data penerima")
}

func TestTabSwitchLoadsOnce(t *testing.T) {
	src := newFakeSource()
	m := loaded(t, src)

	m = run(t, m, press("tab"))
	assert.Equal(t, PageMerchants, m.page)
	require.Len(t, m.table.Rows(), 1)
	assert.Equal(t, "Stok Rendah", m.table.Rows()[0][5])

	m = run(t, m, press("tab"))
	assert.Equal(t, PageTransactions, m.page)
	assert.Len(t, m.table.Rows(), 2)

	// Back to recipients uses the loaded rows.
	m, cmd := send(t, m, press("tab"))
	assert.Nil(t, cmd)
	assert.Equal(t, PageRecipients, m.page)
	assert.Len(t, m.table.Rows(), 2)
	assert.Len(t, src.recipientQueries, 1)
}

func TestCursorStartsOnFirstRowAfterTabSwitch(t *testing.T) {
	m := transactionsPage(t, newFakeSource())
	assert.Equal(t, 0, m.table.Cursor())

	m, _ = send(t, m, press("down"))
	assert.Equal(t, 1, m.table.Cursor())
	m, _ = send(t, m, press("enter"))
	tr, ok := modal.PayloadOf[services.TransactionView](m.modal)
	require.True(t, ok)
	assert.Equal(t, "TRX-002", tr.Number)
	m, _ = send(t, m, press("esc"))

	// recipients were loaded already, so their rows come straight back
	m, _ = send(t, m, press("tab"))
	assert.Equal(t, PageRecipients, m.page)
	assert.Equal(t, 0, m.table.Cursor())
	_, ok = m.selected()
	assert.True(t, ok)
}

func TestDetailModal(t *testing.T) {
	m := loaded(t, newFakeSource())

	m, _ = send(t, m, press("down"))
	m, _ = send(t, m, press("enter"))
	r, ok := modal.PayloadOf[services.RecipientView](m.modal)
	require.True(t, ok)
	assert.Equal(t, "Budi", r.Name)
	assert.Contains(t, m.View(), "Ditangguhkan")

	m, _ = send(t, m, press("esc"))
	assert.Equal(t, modal.Closed{}, m.modal)
}

func TestSearchReloadsWithTerm(t *testing.T) {
	src := newFakeSource()
	m := loaded(t, src)

	m, _ = send(t, m, press("/"))
	assert.True(t, m.searching)
	m, _ = send(t, m, press("ali"))
	m = run(t, m, press("enter"))

	assert.False(t, m.searching)
	require.Len(t, src.recipientQueries, 2)
	assert.Equal(t, "ali", src.recipientQueries[1].Search)
	assert.Contains(t, m.View(), "cari: ali")
}

func TestWindowCycles(t *testing.T) {
	src := newFakeSource()
	m := transactionsPage(t, src)

	m = run(t, m, press("w"))
	require.Len(t, src.transactionQueries, 2)
	assert.Equal(t, "all", src.transactionQueries[0].Window)
	assert.Equal(t, "today", src.transactionQueries[1].Window)
	assert.Contains(t, m.View(), "periode: today")
}

func TestApproveFlow(t *testing.T) {
	src := newFakeSource()
	m := transactionsPage(t, src)

	m, _ = send(t, m, press("a"))
	assert.True(t, modal.IsOpen(m.modal, modal.KindApprove))
	assert.Contains(t, m.View(), "Setujui transaksi ini?")

	m = run(t, m, press("y"))
	assert.Equal(t, []string{"TRX-001"}, src.approved)
	assert.Equal(t, modal.Closed{}, m.modal)
	assert.Equal(t, "Selesai", m.table.Rows()[0][5])
	assert.Contains(t, m.View(), "Transaksi TRX-001 disetujui")
}

func TestApproveCancelled(t *testing.T) {
	src := newFakeSource()
	m := transactionsPage(t, src)

	m, _ = send(t, m, press("a"))
	m, cmd := send(t, m, press("n"))
	assert.Nil(t, cmd)
	assert.Equal(t, modal.Closed{}, m.modal)
	assert.Empty(t, src.approved)
}

func TestApproveRequiresPending(t *testing.T) {
	src := newFakeSource()
	m := transactionsPage(t, src)

	m, _ = send(t, m, press("down"))
	m, _ = send(t, m, press("a"))
	assert.Equal(t, modal.Closed{}, m.modal)
	assert.Contains(t, m.View(), "TRX-002 tidak menunggu persetujuan")
}

func TestRejectWithNotes(t *testing.T) {
	src := newFakeSource()
	m := transactionsPage(t, src)

	m, _ = send(t, m, press("x"))
	require.True(t, modal.IsOpen(m.modal, modal.KindReject))
	// "q" goes into the notes field instead of quitting.
	m, _ = send(t, m, press("kuota habis q"))
	m = run(t, m, press("enter"))

	assert.Equal(t, "kuota habis q", src.rejected["TRX-001"])
	assert.Equal(t, modal.Closed{}, m.modal)
	assert.Equal(t, "Gagal", m.table.Rows()[0][5])
}

func TestActionFailureKeepsRows(t *testing.T) {
	src := newFakeSource()
	src.actionErr = errors.New("Gagal menyetujui transaksi")
	m := transactionsPage(t, src)

	m, _ = send(t, m, press("a"))
	m = run(t, m, press("y"))

	assert.Equal(t, modal.Closed{}, m.modal)
	assert.Equal(t, "Menunggu", m.table.Rows()[0][5])
	assert.Contains(t, m.View(), "Gagal menyetujui transaksi")
}

func TestQuit(t *testing.T) {
	m := loaded(t, newFakeSource())
	_, cmd := send(t, m, press("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}
