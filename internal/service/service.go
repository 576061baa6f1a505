package service

import (
	"github.com/riccardocatervi/JBudget-sub001/internal/operator"
	"github.com/riccardocatervi/JBudget-sub001/internal/storage"
)

// Service holds all business logic services.
type Service struct {
	Account     *AccountService
	Tag         *TagService
	Transaction *TransactionService
	Recurrence  *RecurrenceService
	Stats       *StatsService
}

// NewService creates a new Service with the given storage and operator.
func NewService(store storage.Storage, op *operator.OperatorDelegator) *Service {
	return &Service{
		Account:     NewAccountService(store, op),
		Tag:         NewTagService(store, op),
		Transaction: NewTransactionService(store, op),
		Recurrence:  NewRecurrenceService(store, op),
		Stats:       NewStatsService(store),
	}
}
