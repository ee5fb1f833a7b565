package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"subsidy-dashboard/internal/filter"
	"subsidy-dashboard/internal/modal"
	"subsidy-dashboard/internal/models"
	"subsidy-dashboard/internal/services"
)

// Source is what the dashboard reads and acts on. The services package
// satisfies it through Services.
type Source interface {
	ListRecipients(ctx context.Context, q services.RecipientQuery) ([]services.RecipientView, error)
	ListMerchants(ctx context.Context, q services.MerchantQuery) ([]services.MerchantView, error)
	ListTransactions(ctx context.Context, q services.TransactionQuery) ([]services.TransactionView, error)
	ApproveTransaction(ctx context.Context, number string) (services.TransactionView, error)
	RejectTransaction(ctx context.Context, number string, req *models.RejectTransactionRequest) (services.TransactionView, error)
}

// Page is one tab of the dashboard.
type Page int

const (
	PageRecipients Page = iota
	PageMerchants
	PageTransactions
)

var pageTitles = []string{"Penerima", "Merchant", "Transaksi"}

func (p Page) String() string {
	if p < 0 || int(p) >= len(pageTitles) {
		return "?"
	}
	return pageTitles[p]
}

var windows = []filter.Window{filter.WindowAll, filter.WindowToday, filter.WindowWeek, filter.WindowMonth}

// Model is the bubbletea model of the terminal dashboard.
type Model struct {
	ctx          context.Context
	source       Source
	err          error
	modal        modal.State
	keys         KeyMap
	theme        Theme
	status       string
	search       [3]string
	recipients   []services.RecipientView
	merchants    []services.MerchantView
	transactions []services.TransactionView
	loaded       [3]bool
	table        table.Model
	spinner      spinner.Model
	searchInput  textinput.Model
	notesInput   textinput.Model
	page         Page
	window       int
	width        int
	height       int
	loading      bool
	searching    bool
}

// New creates the dashboard model on the recipients page.
func New(ctx context.Context, source Source) Model {
	t := table.New(
		table.WithColumns(columnsFor(PageRecipients)),
		table.WithFocused(true),
		table.WithHeight(15),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(Default.Border).
		BorderBottom(true).
		Bold(false)
	s.Selected = Default.Selected
	t.SetStyles(s)

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	searchInput := textinput.New()
	searchInput.Placeholder = "Cari..."
	searchInput.CharLimit = 50

	notesInput := textinput.New()
	notesInput.Placeholder = "Alasan penolakan"
	notesInput.CharLimit = 200

	return Model{
		ctx:         ctx,
		source:      source,
		keys:        DefaultKeyMap(),
		theme:       Default,
		modal:       modal.Closed{},
		table:       t,
		spinner:     sp,
		searchInput: searchInput,
		notesInput:  notesInput,
		page:        PageRecipients,
		loading:     true,
	}
}

// Init starts the spinner and loads the first page.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.load(PageRecipients))
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if h := msg.Height - 8; h > 3 {
			m.table.SetHeight(h)
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case recipientsLoadedMsg:
		if m.finishLoad(PageRecipients, msg.err) {
			m.recipients = msg.recipients
			m.refreshRows(PageRecipients)
		}
		return m, nil

	case merchantsLoadedMsg:
		if m.finishLoad(PageMerchants, msg.err) {
			m.merchants = msg.merchants
			m.refreshRows(PageMerchants)
		}
		return m, nil

	case transactionsLoadedMsg:
		if m.finishLoad(PageTransactions, msg.err) {
			m.transactions = msg.transactions
			m.refreshRows(PageTransactions)
		}
		return m, nil

	case transactionActionMsg:
		return m.handleActionResult(msg), nil

	case tea.KeyMsg:
		if _, open := m.modal.(modal.Open); open {
			return m.handleModalKey(msg)
		}
		if m.searching {
			return m.handleSearchKey(msg)
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) finishLoad(p Page, err error) bool {
	m.loading = false
	if err != nil {
		m.err = err
		return false
	}
	m.err = nil
	m.loaded[p] = true
	return true
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.NextTab):
		return m.switchPage((m.page + 1) % 3)

	case key.Matches(msg, m.keys.PrevTab):
		return m.switchPage((m.page + 2) % 3)

	case key.Matches(msg, m.keys.Refresh):
		m.loading = true
		return m, m.load(m.page)

	case key.Matches(msg, m.keys.Search):
		m.searching = true
		m.searchInput.SetValue(m.search[m.page])
		return m, m.searchInput.Focus()

	case key.Matches(msg, m.keys.Window) && m.page == PageTransactions:
		m.window = (m.window + 1) % len(windows)
		m.loading = true
		return m, m.load(PageTransactions)

	case key.Matches(msg, m.keys.Detail):
		if payload, ok := m.selected(); ok {
			m.modal = modal.Reduce(m.modal, modal.OpenModal{Kind: modal.KindDetail, Payload: payload})
		}
		return m, nil

	case key.Matches(msg, m.keys.Approve) && m.page == PageTransactions:
		return m.openTransactionAction(modal.KindApprove)

	case key.Matches(msg, m.keys.Reject) && m.page == PageTransactions:
		return m.openTransactionAction(modal.KindReject)
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) switchPage(p Page) (tea.Model, tea.Cmd) {
	m.page = p
	m.status = ""
	m.err = nil
	m.table.SetRows(nil)
	m.table.SetColumns(columnsFor(p))
	if m.loaded[p] {
		m.refreshRows(p)
		m.table.SetCursor(0)
		return m, nil
	}
	m.loading = true
	return m, m.load(p)
}

func (m Model) openTransactionAction(kind modal.Kind) (tea.Model, tea.Cmd) {
	payload, ok := m.selected()
	if !ok {
		return m, nil
	}
	t := payload.(services.TransactionView)
	if t.Status != models.TransactionPending {
		m.status = fmt.Sprintf("Transaksi %s tidak menunggu persetujuan", t.Number)
		return m, nil
	}
	m.modal = modal.Reduce(m.modal, modal.OpenModal{Kind: kind, Payload: t})
	if kind == modal.KindReject {
		m.notesInput.SetValue("")
		return m, m.notesInput.Focus()
	}
	return m, nil
}

func (m Model) handleModalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	switch {
	case modal.IsOpen(m.modal, modal.KindApprove):
		t, _ := modal.PayloadOf[services.TransactionView](m.modal)
		switch {
		case key.Matches(msg, m.keys.Confirm):
			m.loading = true
			return m, m.approve(t.Number)
		case key.Matches(msg, m.keys.Cancel):
			m.modal = modal.Reduce(m.modal, modal.CloseModal{})
		}
		return m, nil

	case modal.IsOpen(m.modal, modal.KindReject):
		t, _ := modal.PayloadOf[services.TransactionView](m.modal)
		switch msg.String() {
		case "enter":
			m.loading = true
			return m, m.reject(t.Number, m.notesInput.Value())
		case "esc":
			m.notesInput.Blur()
			m.modal = modal.Reduce(m.modal, modal.CloseModal{})
			return m, nil
		}
		var cmd tea.Cmd
		m.notesInput, cmd = m.notesInput.Update(msg)
		return m, cmd
	}

	// Detail dialogs close on any cancel or enter.
	if key.Matches(msg, m.keys.Cancel) || key.Matches(msg, m.keys.Detail) || key.Matches(msg, m.keys.Quit) {
		m.modal = modal.Reduce(m.modal, modal.CloseModal{})
	}
	return m, nil
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searching = false
		m.searchInput.Blur()
		m.search[m.page] = m.searchInput.Value()
		m.loading = true
		return m, m.load(m.page)
	case "esc":
		m.searching = false
		m.searchInput.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

func (m Model) handleActionResult(msg transactionActionMsg) Model {
	m.loading = false
	m.notesInput.Blur()
	m.modal = modal.Reduce(m.modal, modal.CloseModal{})
	if msg.err != nil {
		m.err = msg.err
		return m
	}
	m.err = nil
	m.status = fmt.Sprintf("Transaksi %s %s", msg.transaction.Number, msg.verb)
	for i := range m.transactions {
		if m.transactions[i].ID == msg.transaction.ID {
			m.transactions[i] = msg.transaction
		}
	}
	m.refreshRows(PageTransactions)
	return m
}

// selected returns the view under the table cursor for the current page.
func (m Model) selected() (any, bool) {
	i := m.table.Cursor()
	switch m.page {
	case PageRecipients:
		if i >= 0 && i < len(m.recipients) {
			return m.recipients[i], true
		}
	case PageMerchants:
		if i >= 0 && i < len(m.merchants) {
			return m.merchants[i], true
		}
	case PageTransactions:
		if i >= 0 && i < len(m.transactions) {
			return m.transactions[i], true
		}
	}
	return nil, false
}

func (m *Model) refreshRows(p Page) {
	if p != m.page {
		return
	}
	switch p {
	case PageRecipients:
		m.table.SetRows(recipientRows(m.recipients))
	case PageMerchants:
		m.table.SetRows(merchantRows(m.merchants))
	case PageTransactions:
		m.table.SetRows(transactionRows(m.transactions))
	}
	// an empty table leaves the cursor at -1
	if m.table.Cursor() < 0 {
		m.table.SetCursor(0)
	}
}

func (m Model) load(p Page) tea.Cmd {
	ctx, source, search, window := m.ctx, m.source, m.search[p], windows[m.window]
	switch p {
	case PageMerchants:
		return func() tea.Msg {
			items, err := source.ListMerchants(ctx, services.MerchantQuery{Search: search})
			return merchantsLoadedMsg{merchants: items, err: err}
		}
	case PageTransactions:
		return func() tea.Msg {
			items, err := source.ListTransactions(ctx, services.TransactionQuery{Search: search, Window: string(window)})
			return transactionsLoadedMsg{transactions: items, err: err}
		}
	default:
		return func() tea.Msg {
			items, err := source.ListRecipients(ctx, services.RecipientQuery{Search: search})
			return recipientsLoadedMsg{recipients: items, err: err}
		}
	}
}

func (m Model) approve(number string) tea.Cmd {
	ctx, source := m.ctx, m.source
	return func() tea.Msg {
		t, err := source.ApproveTransaction(ctx, number)
		return transactionActionMsg{transaction: t, verb: "disetujui", err: err}
	}
}

func (m Model) reject(number, notes string) tea.Cmd {
	ctx, source := m.ctx, m.source
	return func() tea.Msg {
		t, err := source.RejectTransaction(ctx, number, &models.RejectTransactionRequest{Notes: notes})
		return transactionActionMsg{transaction: t, verb: "ditolak", err: err}
	}
}
