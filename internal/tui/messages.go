package tui

import "subsidy-dashboard/internal/services"

// Data loading messages.
type recipientsLoadedMsg struct {
	err        error
	recipients []services.RecipientView
}

type merchantsLoadedMsg struct {
	err       error
	merchants []services.MerchantView
}

type transactionsLoadedMsg struct {
	err          error
	transactions []services.TransactionView
}

// transactionActionMsg reports the outcome of an approve or reject.
type transactionActionMsg struct {
	err         error
	verb        string
	transaction services.TransactionView
}
