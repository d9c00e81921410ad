package journal

import (
	"fmt"
	"os"
	"time"

	"autosort/internal/faults"
	"autosort/internal/logging"
	"autosort/internal/mover"
)

// UndoResult reports how much of one transaction could be reversed.
type UndoResult struct {
	TransactionID string
	Description   string
	Undone        int
	Failed        int
	// Failures holds one line per operation that could not be reversed.
	Failures []string
}

// Complete reports that every operation reversed cleanly.
func (r UndoResult) Complete() bool {
	return r.Failed == 0
}

// UndoLast rolls back the most recently started completed transaction, by
// journal order rather than timestamp. Returns faults.ErrNotFound when no
// completed transaction exists.
func (m *Manager) UndoLast() (UndoResult, error) {
	m.mu.Lock()
	var target string
	for i := len(m.transactions) - 1; i >= 0; i-- {
		if m.transactions[i].Completed {
			target = m.transactions[i].ID
			break
		}
	}
	m.mu.Unlock()
	if target == "" {
		return UndoResult{}, faults.Wrap(faults.ErrNotFound, "journal", "undo",
			"no completed transactions to undo", nil)
	}
	return m.Rollback(target)
}

// Rollback undoes a committed transaction's operations in reverse order,
// last move first. Each operation's undo is attempted independently; there
// is no atomicity across the transaction. The transaction is removed from
// the journal and the journal re-persisted no matter how much could be
// undone; partial reversals are reported in the result, not as errors.
func (m *Manager) Rollback(transactionID string) (UndoResult, error) {
	m.mu.Lock()
	idx := m.indexOf(transactionID)
	if idx < 0 {
		m.mu.Unlock()
		return UndoResult{}, faults.Wrap(faults.ErrNotFound, "journal", "rollback",
			fmt.Sprintf("transaction %s not found", transactionID), nil)
	}
	txn := m.transactions[idx]
	if !txn.Completed {
		m.mu.Unlock()
		return UndoResult{}, faults.Wrap(faults.ErrValidation, "journal", "rollback",
			fmt.Sprintf("transaction %s is not committed", transactionID), nil)
	}
	m.mu.Unlock()

	m.logger.Info("rolling back transaction",
		logging.String("transaction_id", transactionID),
		logging.String("description", txn.Description))

	result := UndoResult{TransactionID: txn.ID, Description: txn.Description}
	for i := len(txn.Operations) - 1; i >= 0; i-- {
		if reason, ok := m.undoOperation(txn.Operations[i]); ok {
			result.Undone++
		} else {
			result.Failed++
			result.Failures = append(result.Failures, reason)
		}
	}

	m.mu.Lock()
	if idx := m.indexOf(transactionID); idx >= 0 {
		m.transactions = append(m.transactions[:idx], m.transactions[idx+1:]...)
	}
	if err := m.save(); err != nil {
		m.logger.Error("journal persist failed after rollback", logging.Error(err))
	}
	m.mu.Unlock()

	m.logger.Info("rollback finished",
		logging.String("transaction_id", transactionID),
		logging.Int("undone", result.Undone),
		logging.Int("failed", result.Failed))
	return result, nil
}

// undoOperation reverses one operation, returning a failure reason when it
// cannot.
func (m *Manager) undoOperation(op Operation) (string, bool) {
	switch op.Type {
	case OpMove:
		return m.undoMove(op)
	case OpCreateDir:
		return m.undoCreateDir(op)
	case OpDelete:
		m.logger.Warn("delete operations cannot be undone", logging.String("path", op.Source))
		return fmt.Sprintf("delete of %s cannot be undone", op.Source), false
	default:
		m.logger.Warn("unknown operation type", logging.String("type", string(op.Type)))
		return fmt.Sprintf("unknown operation type %q", op.Type), false
	}
}

// undoMove restores a moved file, handling the drift that can happen between
// organize and undo: the moved copy may be gone, or the original location
// may have been re-occupied.
func (m *Manager) undoMove(op Operation) (string, bool) {
	if op.Destination == "" {
		m.logger.Warn("move record has no destination", logging.String("source", op.Source))
		return fmt.Sprintf("move record for %s has no destination", op.Source), false
	}
	destInfo, err := os.Stat(op.Destination)
	if err != nil {
		m.logger.Warn("moved file no longer exists", logging.String("destination", op.Destination))
		return fmt.Sprintf("moved file no longer exists: %s", op.Destination), false
	}

	if srcInfo, err := os.Stat(op.Source); err == nil {
		if sameContent(srcInfo, destInfo) {
			if err := os.Remove(op.Destination); err != nil {
				m.logger.Warn("duplicate removal failed",
					logging.String("destination", op.Destination),
					logging.Error(err))
				return fmt.Sprintf("remove duplicate %s: %v", op.Destination, err), false
			}
			m.logger.Info("removed duplicate copy", logging.String("destination", op.Destination))
			return "", true
		}
		restored := mover.RestoredPath(op.Source)
		out := m.mover.Move(op.Destination, restored)
		if !out.Moved {
			return fmt.Sprintf("restore %s as %s: %s", op.Destination, restored, out.Reason), false
		}
		m.logger.Info("restored under new name",
			logging.String("destination", op.Destination),
			logging.String("restored", restored))
		return "", true
	}

	out := m.mover.Move(op.Destination, op.Source)
	if !out.Moved {
		return fmt.Sprintf("move %s back to %s: %s", op.Destination, op.Source, out.Reason), false
	}
	m.logger.Info("move undone",
		logging.String("destination", op.Destination),
		logging.String("source", op.Source))
	return "", true
}

// undoCreateDir removes a directory created by a run, but only while it is
// still an empty directory. Files a user has since added stay put.
func (m *Manager) undoCreateDir(op Operation) (string, bool) {
	info, err := os.Stat(op.Source)
	if err != nil {
		m.logger.Warn("directory no longer exists", logging.String("path", op.Source))
		return fmt.Sprintf("directory no longer exists: %s", op.Source), false
	}
	if !info.IsDir() {
		m.logger.Warn("recorded path is not a directory", logging.String("path", op.Source))
		return fmt.Sprintf("recorded path is not a directory: %s", op.Source), false
	}
	entries, err := os.ReadDir(op.Source)
	if err != nil {
		m.logger.Warn("directory unreadable", logging.String("path", op.Source), logging.Error(err))
		return fmt.Sprintf("read directory %s: %v", op.Source, err), false
	}
	if len(entries) > 0 {
		m.logger.Warn("directory not empty, keeping it", logging.String("path", op.Source))
		return fmt.Sprintf("directory not empty, kept: %s", op.Source), false
	}
	if err := os.Remove(op.Source); err != nil {
		m.logger.Warn("directory removal failed", logging.String("path", op.Source), logging.Error(err))
		return fmt.Sprintf("remove directory %s: %v", op.Source, err), false
	}
	m.logger.Info("created directory removed", logging.String("path", op.Source))
	return "", true
}

// sameContent treats equal sizes with modification times within one second
// as the same file.
func sameContent(a, b os.FileInfo) bool {
	if a.Size() != b.Size() {
		return false
	}
	diff := a.ModTime().Sub(b.ModTime())
	if diff < 0 {
		diff = -diff
	}
	return diff < time.Second
}
