package service

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/famledger/famledger/internal/models"
)

type TransactionInput struct {
	Type          string
	Amount        decimal.Decimal
	Description   string
	Category      string
	PaymentMethod string
	Date          string // ISO calendar date, YYYY-MM-DD
}

// RecordTransaction appends a money movement to the ledger. Expenses require
// a category; income never carries one.
func (s *Service) RecordTransaction(ctx context.Context, userID int64, in TransactionInput) (*models.Transaction, error) {
	txType := models.TransactionType(in.Type)
	if !txType.Valid() {
		return nil, invalid("type", "must be income or expense")
	}
	if err := validateAmount(in.Amount); err != nil {
		return nil, err
	}
	if err := validateDescription(in.Description); err != nil {
		return nil, err
	}
	date, err := parseDate("date", in.Date)
	if err != nil {
		return nil, err
	}

	category := in.Category
	switch txType {
	case models.TransactionTypeExpense:
		if category == "" {
			return nil, invalid("category", "required for expenses")
		}
	case models.TransactionTypeIncome:
		category = ""
	}

	tx := &models.Transaction{
		UserID:        userID,
		Type:          txType,
		Amount:        in.Amount,
		Description:   in.Description,
		Category:      category,
		PaymentMethod: in.PaymentMethod,
		Date:          date,
	}
	if err := s.ledger.Create(ctx, tx); err != nil {
		return nil, &PersistenceError{Op: "record transaction", Err: err}
	}
	return tx, nil
}

func (s *Service) ListTransactions(ctx context.Context, userID int64) ([]*models.Transaction, error) {
	txs, err := s.ledger.ListByUser(ctx, userID)
	if err != nil {
		return nil, &PersistenceError{Op: "list transactions", Err: err}
	}
	return txs, nil
}

func (s *Service) DeleteTransaction(ctx context.Context, userID, transactionID int64) error {
	ok, err := s.ledger.Delete(ctx, transactionID, userID)
	if err != nil {
		return &PersistenceError{Op: "delete transaction", Err: err}
	}
	if !ok {
		return &NotFoundError{Resource: "transaction", ID: transactionID}
	}
	return nil
}
