package service

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/riccardocatervi/JBudget-sub001/internal/ledger"
	"github.com/riccardocatervi/JBudget-sub001/internal/storage"
)

// recentLimit is how many transactions a statistics snapshot carries.
const recentLimit = 5

// StatsService computes balances and aggregate figures over an account's
// ledger. All arithmetic is exact decimal; nothing is rounded or cached here.
type StatsService struct {
	storage storage.Storage
}

// NewStatsService creates a new StatsService.
func NewStatsService(store storage.Storage) *StatsService {
	return &StatsService{storage: store}
}

// Balance sums the signed amounts of all the account's transactions.
func (s *StatsService) Balance(ctx context.Context, accountID uuid.UUID) (decimal.Decimal, error) {
	rows, err := s.ledgerSnapshot(ctx, accountID)
	if err != nil {
		return decimal.Zero, err
	}

	balance := decimal.Zero
	for _, tx := range rows {
		balance = balance.Add(tx.SignedAmount())
	}
	return balance, nil
}

// Income totals INCOME transactions dated within [from, to].
func (s *StatsService) Income(ctx context.Context, accountID uuid.UUID, from, to time.Time) (decimal.Decimal, error) {
	return s.directionTotal(ctx, accountID, ledger.DirectionIncome, from, to)
}

// Expenses totals EXPENSE transactions dated within [from, to], reported as a
// positive magnitude.
func (s *StatsService) Expenses(ctx context.Context, accountID uuid.UUID, from, to time.Time) (decimal.Decimal, error) {
	return s.directionTotal(ctx, accountID, ledger.DirectionExpense, from, to)
}

func (s *StatsService) directionTotal(ctx context.Context, accountID uuid.UUID, direction ledger.Direction, from, to time.Time) (decimal.Decimal, error) {
	if err := validateDateRange(from, to); err != nil {
		return decimal.Zero, err
	}
	rows, err := s.ledgerSnapshot(ctx, accountID)
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, tx := range rows {
		if tx.Direction == direction && inRange(tx.ValueDate, from, to) {
			total = total.Add(tx.Amount)
		}
	}
	return total, nil
}

// SpendingByCategory maps tag display names to the total spent under them in
// [from, to]. A transaction tagged with several categories contributes its
// full amount to each one.
func (s *StatsService) SpendingByCategory(ctx context.Context, accountID uuid.UUID, from, to time.Time) (map[string]decimal.Decimal, error) {
	if err := validateDateRange(from, to); err != nil {
		return nil, err
	}
	rows, err := s.ledgerSnapshot(ctx, accountID)
	if err != nil {
		return nil, err
	}

	tagNames := make(map[uuid.UUID]string)
	spending := make(map[string]decimal.Decimal)
	for _, tx := range rows {
		if tx.Direction != ledger.DirectionExpense || !inRange(tx.ValueDate, from, to) {
			continue
		}
		for _, tagID := range tx.TagIDs {
			name, ok := tagNames[tagID]
			if !ok {
				tag, err := s.storage.Read().Tags.FindByID(ctx, tagID)
				if err != nil {
					return nil, err
				}
				name = tag.Name
				tagNames[tagID] = name
			}
			spending[name] = spending[name].Add(tx.Amount)
		}
	}
	return spending, nil
}

// Statistics bundles the account's lifetime balance with range-bounded income,
// expenses, net, per-category spend, the most recent transactions and the
// matched count. Computed fresh on every call.
func (s *StatsService) Statistics(ctx context.Context, accountID uuid.UUID, from, to time.Time) (*Statistics, error) {
	if err := validateDateRange(from, to); err != nil {
		return nil, err
	}
	rows, err := s.ledgerSnapshot(ctx, accountID)
	if err != nil {
		return nil, err
	}

	balance := decimal.Zero
	income := decimal.Zero
	expenses := decimal.Zero
	var matched int64
	for _, tx := range rows {
		balance = balance.Add(tx.SignedAmount())
		if !inRange(tx.ValueDate, from, to) {
			continue
		}
		matched++
		if tx.Direction == ledger.DirectionIncome {
			income = income.Add(tx.Amount)
		} else {
			expenses = expenses.Add(tx.Amount)
		}
	}

	spending, err := s.SpendingByCategory(ctx, accountID, from, to)
	if err != nil {
		return nil, err
	}

	sortQueryOrder(rows)
	recent := rows
	if len(recent) > recentLimit {
		recent = recent[:recentLimit]
	}

	return &Statistics{
		Balance:            balance,
		Income:             income,
		Expenses:           expenses,
		Net:                income.Sub(expenses),
		SpendingByCategory: spending,
		Recent:             recent,
		MatchedCount:       matched,
	}, nil
}

func (s *StatsService) ledgerSnapshot(ctx context.Context, accountID uuid.UUID) ([]ledger.Transaction, error) {
	read := s.storage.Read()
	if _, err := read.Accounts.FindByID(ctx, accountID); err != nil {
		return nil, err
	}
	return read.Transactions.ListByAccount(ctx, accountID)
}

func inRange(t, from, to time.Time) bool {
	return !t.Before(from) && !t.After(to)
}
