// Package memory keeps the ledger in process memory. A unit of work holds the
// store lock from Begin until Commit or Rollback, so postings serialize.
package memory

import (
	"context"
	"errors"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/iho/finledger/internal/domain"
	"github.com/iho/finledger/internal/usecase"
)

// ErrTxClosed is returned when a committed or rolled back Tx is used.
var ErrTxClosed = errors.New("memory: transaction already closed")

// Store holds every table. Values are stored by copy.
type Store struct {
	sem chan struct{}

	seq   int64
	order map[string]int64

	accounts         map[string]domain.Account
	accountsByNumber map[string]string
	journals         map[string]domain.JournalEntry
	ledgerEntries    map[string]domain.LedgerEntry
	transactions     map[string]domain.Transaction
	balanceSheets    map[string]domain.BalanceSheet
	incomeStatements map[string]domain.IncomeStatement
	fiscalYears      map[string]domain.FiscalYear
	users            map[string]domain.User
	outbox           map[string]domain.OutboxEvent
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		sem:              make(chan struct{}, 1),
		order:            make(map[string]int64),
		accounts:         make(map[string]domain.Account),
		accountsByNumber: make(map[string]string),
		journals:         make(map[string]domain.JournalEntry),
		ledgerEntries:    make(map[string]domain.LedgerEntry),
		transactions:     make(map[string]domain.Transaction),
		balanceSheets:    make(map[string]domain.BalanceSheet),
		incomeStatements: make(map[string]domain.IncomeStatement),
		fiscalYears:      make(map[string]domain.FiscalYear),
		users:            make(map[string]domain.User),
		outbox:           make(map[string]domain.OutboxEvent),
	}
}

// SeedFiscalYear registers a fiscal year owned by the surrounding ERP.
func (s *Store) SeedFiscalYear(ctx context.Context, fy domain.FiscalYear) error {
	return s.withLock(ctx, func() error {
		s.fiscalYears[fy.ID] = fy
		return nil
	})
}

// SeedUser registers a user owned by the surrounding ERP.
func (s *Store) SeedUser(ctx context.Context, user domain.User) error {
	return s.withLock(ctx, func() error {
		s.users[user.ID] = user
		return nil
	})
}

func (s *Store) acquire(ctx context.Context) error {
	select {
	case s.sem <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Store) release() {
	<-s.sem
}

func (s *Store) withLock(ctx context.Context, fn func() error) error {
	if err := s.acquire(ctx); err != nil {
		return err
	}
	defer s.release()

	return fn()
}

func (s *Store) nextOrder(id string) {
	if _, ok := s.order[id]; ok {
		return
	}
	s.seq++
	s.order[id] = s.seq
}

// Tx is a unit of work over the store. It owns the store lock.
type Tx struct {
	store *Store
	undo  []func()
	done  bool
}

// Commit keeps every write and releases the lock.
func (t *Tx) Commit(_ context.Context) error {
	if t.done {
		return ErrTxClosed
	}
	t.done = true
	t.undo = nil
	t.store.release()
	return nil
}

// Rollback reverts every write in reverse order and releases the lock.
// Calling it after Commit is a no-op.
func (t *Tx) Rollback(_ context.Context) error {
	if t.done {
		return nil
	}
	for i := len(t.undo) - 1; i >= 0; i-- {
		t.undo[i]()
	}
	t.done = true
	t.undo = nil
	t.store.release()
	return nil
}

// TxManager begins units of work on a Store.
type TxManager struct {
	store *Store
}

// NewTxManager creates a new TxManager.
func NewTxManager(store *Store) *TxManager {
	return &TxManager{store: store}
}

// Begin blocks until the store is free or ctx is done.
func (m *TxManager) Begin(ctx context.Context) (usecase.Tx, error) {
	if err := m.store.acquire(ctx); err != nil {
		return nil, err
	}
	return &Tx{store: m.store}, nil
}

// Retrier runs the operation once; the store never produces transient conflicts.
type Retrier struct{}

// Retry runs operation once.
func (Retrier) Retry(_ context.Context, operation func() error) error {
	return operation()
}

func openTx(tx usecase.Tx) (*Tx, error) {
	t, ok := tx.(*Tx)
	if !ok || t == nil {
		return nil, errors.New("memory: foreign transaction")
	}
	if t.done {
		return nil, ErrTxClosed
	}
	return t, nil
}

// put writes value under key and records how to undo it.
func put[V any](t *Tx, m map[string]V, key string, value V) {
	prev, existed := m[key]
	m[key] = value

	t.undo = append(t.undo, func() {
		if existed {
			m[key] = prev
		} else {
			delete(m, key)
		}
	})
}

// sortedByOrder returns values ordered by insertion, newest first when desc.
func sortedByOrder[V any](s *Store, values map[string]V, keep func(V) bool, desc bool) []string {
	ids := make([]string, 0, len(values))
	for id, v := range values {
		if keep == nil || keep(v) {
			ids = append(ids, id)
		}
	}

	slices.SortFunc(ids, func(a, b string) int {
		if desc {
			return int(s.order[b] - s.order[a])
		}
		return int(s.order[a] - s.order[b])
	})

	return ids
}

func page(ids []string, limit, offset int) []string {
	if offset >= len(ids) {
		return nil
	}
	end := min(offset+limit, len(ids))
	return ids[offset:end]
}

func cloneDecimal(d *decimal.Decimal) *decimal.Decimal {
	if d == nil {
		return nil
	}
	c := *d
	return &c
}
