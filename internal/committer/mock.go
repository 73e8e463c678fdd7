package committer

import (
	"context"
	"fmt"
)

// MockTransactionService records commit calls for tests. FailOn makes a
// specific description fail, exercising per-record error isolation.
type MockTransactionService struct {
	Transactions []TransactionRequest
	Splits       []SplitTransactionRequest
	Transfers    []TransferRequest

	// FailOn maps a description to an error message; matching requests
	// fail without being recorded.
	FailOn map[string]string
}

// NewMockTransactionService creates an empty mock.
func NewMockTransactionService() *MockTransactionService {
	return &MockTransactionService{FailOn: make(map[string]string)}
}

func (m *MockTransactionService) fail(description string) error {
	if msg, ok := m.FailOn[description]; ok {
		return fmt.Errorf("%s", msg)
	}
	return nil
}

// CreateTransaction records a regular transaction commit.
func (m *MockTransactionService) CreateTransaction(_ context.Context, req TransactionRequest) error {
	if err := m.fail(req.Description); err != nil {
		return err
	}
	m.Transactions = append(m.Transactions, req)
	return nil
}

// CreateSplitTransaction records a split transaction commit.
func (m *MockTransactionService) CreateSplitTransaction(_ context.Context, req SplitTransactionRequest) error {
	if err := m.fail(req.Description); err != nil {
		return err
	}
	m.Splits = append(m.Splits, req)
	return nil
}

// CreateTransfer records a transfer commit.
func (m *MockTransactionService) CreateTransfer(_ context.Context, req TransferRequest) error {
	if err := m.fail(req.Description); err != nil {
		return err
	}
	m.Transfers = append(m.Transfers, req)
	return nil
}

// Total returns the number of recorded commits.
func (m *MockTransactionService) Total() int {
	return len(m.Transactions) + len(m.Splits) + len(m.Transfers)
}
