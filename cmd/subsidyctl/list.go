package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"subsidy-dashboard/internal/models"
	"subsidy-dashboard/internal/services"
	"subsidy-dashboard/internal/timeutil"
)

func (a *app) recipientsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recipients",
		Short: "Subsidy recipients",
	}

	var q services.RecipientQuery
	var asJSON bool
	list := &cobra.Command{
		Use:   "list",
		Short: "List recipients",
		Long: `List recipients with their classification, status and remaining quota.

Examples:
  # Poor households in one district
  subsidyctl recipients list --classification poor --district Cibinong

  # Search by name, national id or address
  subsidyctl recipients list --search budi`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := a.services()
			if err != nil {
				return err
			}
			items, err := svc.ListRecipients(cmd.Context(), q)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), items)
			}
			rows := make([][]string, 0, len(items))
			for _, r := range items {
				rows = append(rows, []string{
					string(r.ID), r.Name, r.NationalID, r.District,
					r.ClassificationDisplay.Label, r.StatusDisplay.Label, quotaSummary(r),
				})
			}
			return writeTable(cmd.OutOrStdout(), []string{"ID", "NAMA", "NIK", "KECAMATAN", "KLASIFIKASI", "STATUS", "KUOTA"}, rows)
		},
	}
	list.Flags().StringVar(&q.Search, "search", "", "match name, national id or address")
	list.Flags().StringVar(&q.Status, "status", "all", "active, inactive, suspended or all")
	list.Flags().StringVar(&q.District, "district", "all", "district name or all")
	list.Flags().StringVar(&q.Classification, "classification", "all", "well-off, middle, poor or all")
	list.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")

	cmd.AddCommand(list)
	return cmd
}

// quotaSummary shows the weakest quota tier, the one operators act on.
func quotaSummary(r services.RecipientView) string {
	if len(r.Subsidies) == 0 {
		return "-"
	}
	worst := r.Subsidies[0]
	for _, s := range r.Subsidies[1:] {
		if s.QuotaStatus.Percentage > worst.QuotaStatus.Percentage {
			worst = s
		}
	}
	return worst.QuotaStatus.Label + " (" + formatPercent(worst.RemainingPercentage) + ")"
}

func (a *app) merchantsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "merchants",
		Short: "Subsidy merchants (agents and kiosks)",
	}

	var q services.MerchantQuery
	var asJSON, lowStock bool
	list := &cobra.Command{
		Use:   "list",
		Short: "List merchants with stock utilization",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := a.services()
			if err != nil {
				return err
			}
			var items []services.MerchantView
			if lowStock {
				items, err = svc.Merchants.LowStockMerchants(cmd.Context())
			} else {
				items, err = svc.ListMerchants(cmd.Context(), q)
			}
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), items)
			}
			rows := make([][]string, 0, len(items))
			for _, m := range items {
				rows = append(rows, []string{
					string(m.ID), m.Name, m.District, m.ActiveDisplay.Label,
					fmt.Sprintf("%d/%d", m.TotalStock, m.MaxCapacity),
					formatPercent(m.UtilizationPercentage), m.StockStatus.Label,
				})
			}
			return writeTable(cmd.OutOrStdout(), []string{"ID", "NAMA", "KECAMATAN", "STATUS", "STOK", "UTILISASI", "KONDISI"}, rows)
		},
	}
	list.Flags().StringVar(&q.Search, "search", "", "match name, owner or address")
	list.Flags().StringVar(&q.Status, "status", "all", "active, inactive or all")
	list.Flags().StringVar(&q.District, "district", "all", "district name or all")
	list.Flags().BoolVar(&lowStock, "low-stock", false, "only merchants in the low stock tier")
	list.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")

	cmd.AddCommand(list)
	return cmd
}

func (a *app) transactionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transactions",
		Short: "Subsidized purchases",
	}

	var q services.TransactionQuery
	var asJSON bool
	list := &cobra.Command{
		Use:   "list",
		Short: "List transactions",
		Long: `List transactions, newest data from the upstream API.

Examples:
  # Pending transactions from today
  subsidyctl transactions list --status pending --window today`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := a.services()
			if err != nil {
				return err
			}
			items, err := svc.ListTransactions(cmd.Context(), q)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), items)
			}
			rows := make([][]string, 0, len(items))
			for _, t := range items {
				rows = append(rows, transactionRow(t))
			}
			return writeTable(cmd.OutOrStdout(), transactionHeader, rows)
		},
	}
	list.Flags().StringVar(&q.Search, "search", "", "match number, recipient or merchant name")
	list.Flags().StringVar(&q.Status, "status", "all", "completed, pending, failed or all")
	list.Flags().StringVar(&q.Window, "window", "all", "all, today, week or month")
	list.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")

	approve := &cobra.Command{
		Use:   "approve NUMBER",
		Short: "Approve a pending transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.services()
			if err != nil {
				return err
			}
			t, err := svc.ApproveTransaction(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return writeTable(cmd.OutOrStdout(), transactionHeader, [][]string{transactionRow(t)})
		},
	}

	var notes string
	reject := &cobra.Command{
		Use:   "reject NUMBER",
		Short: "Reject a pending transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.services()
			if err != nil {
				return err
			}
			t, err := svc.RejectTransaction(cmd.Context(), args[0], &models.RejectTransactionRequest{Notes: notes})
			if err != nil {
				return err
			}
			return writeTable(cmd.OutOrStdout(), transactionHeader, [][]string{transactionRow(t)})
		},
	}
	reject.Flags().StringVar(&notes, "notes", "", "reason sent with the rejection")

	cmd.AddCommand(list, approve, reject)
	return cmd
}

var transactionHeader = []string{"NOMOR", "TANGGAL", "PENERIMA", "MERCHANT", "JUMLAH", "TOTAL", "STATUS"}

func transactionRow(t services.TransactionView) []string {
	recipient, merchant := "-", "-"
	if t.Recipient != nil {
		recipient = t.Recipient.Name
	}
	if t.Merchant != nil {
		merchant = t.Merchant.Name
	}
	date := "-"
	if !t.Date.IsZero() {
		date = timeutil.FormatWIB(t.Date, timeutil.DisplayLayout)
	}
	return []string{
		t.Number, date, recipient, merchant,
		strconv.Itoa(t.Quantity), formatRupiah(t.TotalAmount), t.StatusDisplay.Label,
	}
}
