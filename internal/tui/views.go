package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"subsidy-dashboard/internal/modal"
	"subsidy-dashboard/internal/services"
	"subsidy-dashboard/internal/timeutil"
)

func columnsFor(p Page) []table.Column {
	switch p {
	case PageMerchants:
		return []table.Column{
			{Title: "Nama", Width: 24},
			{Title: "Kecamatan", Width: 16},
			{Title: "Status", Width: 12},
			{Title: "Stok", Width: 8},
			{Title: "Utilisasi", Width: 10},
			{Title: "Kondisi", Width: 12},
		}
	case PageTransactions:
		return []table.Column{
			{Title: "Nomor", Width: 16},
			{Title: "Tanggal", Width: 18},
			{Title: "Penerima", Width: 20},
			{Title: "Merchant", Width: 20},
			{Title: "Total", Width: 14},
			{Title: "Status", Width: 10},
		}
	default:
		return []table.Column{
			{Title: "Nama", Width: 24},
			{Title: "NIK", Width: 18},
			{Title: "Kecamatan", Width: 16},
			{Title: "Klasifikasi", Width: 12},
			{Title: "Status", Width: 14},
		}
	}
}

func recipientRows(items []services.RecipientView) []table.Row {
	rows := make([]table.Row, 0, len(items))
	for _, r := range items {
		rows = append(rows, table.Row{r.Name, r.NationalID, r.District, r.ClassificationDisplay.Label, r.StatusDisplay.Label})
	}
	return rows
}

func merchantRows(items []services.MerchantView) []table.Row {
	rows := make([]table.Row, 0, len(items))
	for _, m := range items {
		rows = append(rows, table.Row{
			m.Name,
			m.District,
			m.ActiveDisplay.Label,
			strconv.Itoa(m.TotalStock),
			percent(m.UtilizationPercentage),
			m.StockStatus.Label,
		})
	}
	return rows
}

func transactionRows(items []services.TransactionView) []table.Row {
	rows := make([]table.Row, 0, len(items))
	for _, t := range items {
		var recipient, merchant string
		if t.Recipient != nil {
			recipient = t.Recipient.Name
		}
		if t.Merchant != nil {
			merchant = t.Merchant.Name
		}
		rows = append(rows, table.Row{
			t.Number,
			timeutil.FormatWIB(t.Date, timeutil.DisplayLayout),
			recipient,
			merchant,
			rupiah(t.TotalAmount),
			t.StatusDisplay.Label,
		})
	}
	return rows
}

func percent(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64) + "%"
}

func rupiah(d decimal.Decimal) string {
	return "Rp " + d.StringFixed(0)
}

// View renders the dashboard.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	if open, ok := m.modal.(modal.Open); ok {
		b.WriteString(m.renderDialog(open))
	} else {
		b.WriteString(m.table.View())
	}
	b.WriteString("\n")

	switch {
	case m.searching:
		b.WriteString(m.searchInput.View())
	case m.loading:
		b.WriteString(m.spinner.View() + " Memuat...")
	case m.err != nil:
		b.WriteString(m.theme.ErrorLine.Render(m.err.Error()))
	case m.status != "":
		b.WriteString(m.theme.StatusLine.Render(m.status))
	}
	b.WriteString("\n")
	b.WriteString(m.renderHelp())
	return b.String()
}

func (m Model) renderHeader() string {
	tabs := make([]string, 0, len(pageTitles))
	for i, title := range pageTitles {
		style := m.theme.Tab
		if Page(i) == m.page {
			style = m.theme.ActiveTab
		}
		tabs = append(tabs, style.Render(title))
	}
	header := lipgloss.JoinHorizontal(lipgloss.Center, append([]string{m.theme.Title.Render("Dashboard Subsidi")}, tabs...)...)

	var filters []string
	if s := m.search[m.page]; s != "" {
		filters = append(filters, "cari: "+s)
	}
	if m.page == PageTransactions {
		filters = append(filters, "periode: "+string(windows[m.window]))
	}
	if len(filters) > 0 {
		header += "  " + m.theme.Help.Render(strings.Join(filters, " | "))
	}
	return header
}

func (m Model) renderHelp() string {
	parts := make([]string, 0, 8)
	for _, b := range m.keys.ShortHelp() {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return m.theme.Help.Render(strings.Join(parts, " • "))
}

func (m Model) renderDialog(open modal.Open) string {
	var title string
	var lines []string
	switch open.Kind {
	case modal.KindApprove:
		t, _ := open.Payload.(services.TransactionView)
		title = "Setujui transaksi"
		lines = append(m.transactionLines(t), "", "Setujui transaksi ini? (y/n)")
	case modal.KindReject:
		t, _ := open.Payload.(services.TransactionView)
		title = "Tolak transaksi"
		lines = append(m.transactionLines(t), "", m.notesInput.View(), "enter kirim • esc batal")
	default:
		switch p := open.Payload.(type) {
		case services.RecipientView:
			title = "Detail penerima"
			lines = m.recipientLines(p)
		case services.MerchantView:
			title = "Detail merchant"
			lines = m.merchantLines(p)
		case services.TransactionView:
			title = "Detail transaksi"
			lines = m.transactionLines(p)
		}
	}
	content := lipgloss.JoinVertical(lipgloss.Left, append([]string{m.theme.DialogTitle.Render(title)}, lines...)...)
	return m.theme.Dialog.Render(content)
}

func (m Model) field(label, value string) string {
	return m.theme.Label.Render(label) + value
}

func (m Model) recipientLines(r services.RecipientView) []string {
	lines := []string{
		m.field("Nama", r.Name),
		m.field("NIK", r.NationalID),
		m.field("Alamat", r.Address),
		m.field("Kecamatan", r.District),
		m.field("Klasifikasi", m.theme.Badge(r.ClassificationDisplay.ColorClass, r.ClassificationDisplay.Label)),
		m.field("Status", m.theme.Badge(r.StatusDisplay.ColorClass, r.StatusDisplay.Label)),
		m.field("Penghasilan", rupiah(r.Income)),
		m.field("Anggota keluarga", strconv.Itoa(r.FamilyMembers)),
	}
	for _, s := range r.Subsidies {
		name := string(s.ProductID)
		if s.Product != nil {
			name = s.Product.Name
		}
		lines = append(lines, m.field("Kuota "+name,
			fmt.Sprintf("%d/%d tersisa (%s) %s", s.RemainingQuota, s.MonthlyQuota, percent(s.RemainingPercentage), m.theme.SeverityBadge(s.QuotaStatus))))
	}
	return lines
}

func (m Model) merchantLines(v services.MerchantView) []string {
	lines := []string{
		m.field("Nama", v.Name),
		m.field("Pemilik", v.OwnerName),
		m.field("Telepon", v.Phone),
		m.field("Alamat", v.Address),
		m.field("Status", m.theme.Badge(v.ActiveDisplay.ColorClass, v.ActiveDisplay.Label)),
		m.field("Kapasitas", fmt.Sprintf("%d/%d (%s)", v.TotalStock, v.MaxCapacity, percent(v.UtilizationPercentage))),
		m.field("Kondisi stok", m.theme.SeverityBadge(v.StockStatus)),
	}
	for _, h := range v.Products {
		name := string(h.ProductID)
		if h.Product != nil {
			name = h.Product.Name
		}
		lines = append(lines, m.field("Stok "+name, fmt.Sprintf("%d %s", h.Stock, m.theme.SeverityBadge(h.StockStatus))))
	}
	return lines
}

func (m Model) transactionLines(t services.TransactionView) []string {
	var recipient, merchant, product string
	if t.Recipient != nil {
		recipient = t.Recipient.Name
	}
	if t.Merchant != nil {
		merchant = t.Merchant.Name
	}
	if t.Product != nil {
		product = t.Product.Name
	}
	lines := []string{
		m.field("Nomor", t.Number),
		m.field("Tanggal", timeutil.FormatWIB(t.Date, timeutil.DisplayLayout)),
		m.field("Penerima", recipient),
		m.field("Merchant", merchant),
		m.field("Produk", fmt.Sprintf("%s x%d", product, t.Quantity)),
		m.field("Total", rupiah(t.TotalAmount)),
		m.field("Status", m.theme.Badge(t.StatusDisplay.ColorClass, t.StatusDisplay.Label)),
	}
	if t.Notes != "" {
		lines = append(lines, m.field("Catatan", t.Notes))
	}
	return lines
}
