package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"subsidy-dashboard/internal/models"
	"subsidy-dashboard/internal/services"
)

// Services adapts the service layer to Source.
type Services struct {
	Recipients   *services.RecipientService
	Merchants    *services.MerchantService
	Transactions *services.TransactionService
}

func (s Services) ListRecipients(ctx context.Context, q services.RecipientQuery) ([]services.RecipientView, error) {
	return s.Recipients.ListRecipients(ctx, q)
}

func (s Services) ListMerchants(ctx context.Context, q services.MerchantQuery) ([]services.MerchantView, error) {
	return s.Merchants.ListMerchants(ctx, q)
}

func (s Services) ListTransactions(ctx context.Context, q services.TransactionQuery) ([]services.TransactionView, error) {
	return s.Transactions.ListTransactions(ctx, q)
}

func (s Services) ApproveTransaction(ctx context.Context, number string) (services.TransactionView, error) {
	return s.Transactions.ApproveTransaction(ctx, number)
}

func (s Services) RejectTransaction(ctx context.Context, number string, req *models.RejectTransactionRequest) (services.TransactionView, error) {
	return s.Transactions.RejectTransaction(ctx, number, req)
}

// Run shows the dashboard until the user quits or ctx is cancelled.
func Run(ctx context.Context, source Source) error {
	if source == nil {
		return errors.New("tui: source is required")
	}
	p := tea.NewProgram(New(ctx, source), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("run dashboard: %w", err)
	}
	return nil
}
