package journal

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"slices"

	"autosort/internal/logging"
)

// formatVersion tags the journal file so future schema changes can migrate.
const formatVersion = "1.0"

type journalFile struct {
	Version      string        `json:"version"`
	SavedAt      UnixTime      `json:"saved_at"`
	Transactions []Transaction `json:"transactions"`
}

// load reads the journal eagerly. Missing and corrupt files both start an
// empty history; the application must never fail because of a bad journal.
func (m *Manager) load() {
	data, err := os.ReadFile(m.path)
	if errors.Is(err, os.ErrNotExist) {
		return
	}
	if err != nil {
		m.logger.Warn("journal unreadable, starting empty",
			logging.String("path", m.path),
			logging.Error(err))
		return
	}
	var file journalFile
	if err := json.Unmarshal(data, &file); err != nil {
		m.logger.Warn("journal corrupt, starting empty",
			logging.String("path", m.path),
			logging.Error(err))
		return
	}
	m.transactions = file.Transactions
	m.logger.Debug("journal loaded", logging.Int("transactions", len(m.transactions)))
}

// save overwrites the whole journal file, trimming history to the newest
// entries first. Callers must hold the mutex.
func (m *Manager) save() error {
	if m.keep > 0 && len(m.transactions) > m.keep {
		m.transactions = slices.Clone(m.transactions[len(m.transactions)-m.keep:])
	}
	transactions := m.transactions
	if transactions == nil {
		transactions = []Transaction{}
	}
	payload := journalFile{
		Version:      formatVersion,
		SavedAt:      Now(),
		Transactions: transactions,
	}
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(m.path), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(m.path, data, 0o644); err != nil {
		return err
	}
	m.logger.Debug("journal saved",
		logging.String("path", m.path),
		logging.Int("transactions", len(transactions)))
	return nil
}
