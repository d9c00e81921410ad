package journal

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"autosort/internal/config"
	"autosort/internal/logging"
	"autosort/internal/mover"
)

// Manager owns the transaction journal: it accumulates operations for open
// transactions, persists committed ones, and replays them in reverse for
// undo. All methods are safe for concurrent use.
type Manager struct {
	path   string
	keep   int
	mover  *mover.Engine
	logger *slog.Logger

	mu           sync.Mutex
	transactions []Transaction
}

// NewManager loads the journal at cfg.JournalPath. A missing or corrupt
// journal file starts an empty history instead of failing. A nil engine
// gets a default one.
func NewManager(cfg *config.Config, engine *mover.Engine, logger *slog.Logger) *Manager {
	if engine == nil {
		engine = mover.NewEngine(logger)
	}
	m := &Manager{
		path:   cfg.JournalPath(),
		keep:   cfg.Organize.MaxTransactions,
		mover:  engine,
		logger: logging.NewComponentLogger(logger, "journal"),
	}
	m.load()
	return m
}

// Begin opens a transaction and returns its id. The transaction lives in
// memory only until committed.
func (m *Manager) Begin(description string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	txn := Transaction{
		ID:          uuid.NewString(),
		Timestamp:   Now(),
		Description: description,
		Operations:  []Operation{},
	}
	m.transactions = append(m.transactions, txn)
	m.logger.Debug("transaction started",
		logging.String("transaction_id", txn.ID),
		logging.String("description", description))
	return txn.ID
}

// Record appends op to an open transaction. An unknown id is a logic bug in
// the caller; it is logged and reported, never raised.
func (m *Manager) Record(transactionID string, op Operation) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	idx := m.indexOf(transactionID)
	if idx < 0 {
		m.logger.Error("transaction not found", logging.String("transaction_id", transactionID))
		return false
	}
	m.transactions[idx].Operations = append(m.transactions[idx].Operations, op)
	return true
}

// Commit marks the transaction completed and synchronously persists the
// whole journal. Persistence problems are logged, not returned; the commit
// itself still stands.
func (m *Manager) Commit(transactionID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	idx := m.indexOf(transactionID)
	if idx < 0 {
		m.logger.Error("transaction not found", logging.String("transaction_id", transactionID))
		return false
	}
	m.transactions[idx].Completed = true
	if err := m.save(); err != nil {
		m.logger.Error("journal persist failed after commit", logging.Error(err))
	}
	m.logger.Info("transaction committed",
		logging.String("transaction_id", transactionID),
		logging.Int("operations", len(m.transactions[idx].Operations)))
	return true
}

// History lists all known transactions in start order, oldest first.
func (m *Manager) History() []Summary {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Summary, 0, len(m.transactions))
	for _, txn := range m.transactions {
		out = append(out, Summary{
			ID:             txn.ID,
			Timestamp:      txn.Timestamp.Time,
			Description:    txn.Description,
			OperationCount: len(txn.Operations),
			Completed:      txn.Completed,
		})
	}
	return out
}

// UndoInfo reports whether an undo is possible and what it would revert.
func (m *Manager) UndoInfo() Info {
	m.mu.Lock()
	defer m.mu.Unlock()
	info := Info{TransactionCount: len(m.transactions)}
	for _, txn := range m.transactions {
		if txn.Completed {
			info.CompletedCount++
			info.LastDescription = txn.Description
		}
	}
	info.CanUndo = info.CompletedCount > 0
	return info
}

// Clear drops every transaction and persists the empty journal.
func (m *Manager) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transactions = nil
	if err := m.save(); err != nil {
		return err
	}
	m.logger.Info("transaction history cleared")
	return nil
}

// indexOf locates a transaction by id. Callers must hold the mutex.
func (m *Manager) indexOf(transactionID string) int {
	for i := range m.transactions {
		if m.transactions[i].ID == transactionID {
			return i
		}
	}
	return -1
}
