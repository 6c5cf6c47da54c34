package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/famledger/famledger/internal/database"
	"github.com/famledger/famledger/internal/models"
)

type TransactionRepository struct {
	db *database.DB
}

func NewTransactionRepository(db *database.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) Create(ctx context.Context, tx *models.Transaction) error {
	return r.db.Pool.QueryRow(ctx,
		`INSERT INTO transactions (user_id, type, amount, description, category, payment_method, transaction_date)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at`,
		tx.UserID, tx.Type, tx.Amount, tx.Description, tx.Category, tx.PaymentMethod, tx.Date,
	).Scan(&tx.ID, &tx.CreatedAt)
}

func (r *TransactionRepository) ListByUser(ctx context.Context, userID int64) ([]*models.Transaction, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT id, user_id, type, amount, description, category, payment_method, transaction_date, created_at
		 FROM transactions WHERE user_id = $1
		 ORDER BY transaction_date DESC, id DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTransactions(rows)
}

func (r *TransactionRepository) Delete(ctx context.Context, transactionID, userID int64) (bool, error) {
	tag, err := r.db.Pool.Exec(ctx,
		`DELETE FROM transactions WHERE id = $1 AND user_id = $2`,
		transactionID, userID,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func scanTransactions(rows pgx.Rows) ([]*models.Transaction, error) {
	var txs []*models.Transaction
	for rows.Next() {
		tx := &models.Transaction{}
		if err := rows.Scan(&tx.ID, &tx.UserID, &tx.Type, &tx.Amount, &tx.Description,
			&tx.Category, &tx.PaymentMethod, &tx.Date, &tx.CreatedAt); err != nil {
			return nil, err
		}
		txs = append(txs, tx)
	}
	return txs, rows.Err()
}
