package ledger

import (
	"context"

	"github.com/epartment/society-backend/internal/domain"
)

// Actor is the authenticated principal recording a transaction.
type Actor struct {
	Email     string
	Role      domain.Role
	SocietyID string
}

// Store is the persistence surface the intake service needs.
type Store interface {
	Insert(ctx context.Context, tx *Transaction) (*Transaction, error)
}

type Service struct {
	Store Store
}

func NewService(store Store) *Service {
	return &Service{Store: store}
}

// Record validates and persists one transaction scoped to the actor's
// society. Persistence is all-or-nothing: a single INSERT, no partial rows.
// Duplicate submissions create duplicate records; there is no dedup key.
func (s *Service) Record(ctx context.Context, req CreateTransactionRequest, actor Actor) (*Transaction, error) {
	tx, err := buildTransaction(req)
	if err != nil {
		return nil, err
	}

	switch tx.Type {
	case TypeIncome:
		if !actor.Role.CanRecordIncome() {
			return nil, ErrForbidden
		}
	case TypeExpense:
		if !actor.Role.CanRecordExpense() {
			return nil, ErrForbidden
		}
	}

	tx.SocietyID = actor.SocietyID
	tx.RecordedBy = actor.Email

	return s.Store.Insert(ctx, tx)
}
