package repositories

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"arizabot/internal/models"

	"go.uber.org/zap"
)

// ErrStoreWrite marks a failed append. Callers must treat it as "nothing
// was persisted" and never notify anyone about the submission.
var ErrStoreWrite = errors.New("application store write failed")

var csvHeader = []string{"Sana", "Ism", "Telefon", "Username", "Chat ID", "File ID", "Fayl nomi"}

// ApplicationRepository persists applications to an append-only CSV file
// with a fixed header row. Appends are serialized through a mutex so
// concurrent sessions never interleave rows.
type ApplicationRepository struct {
	path string
	log  *zap.Logger
	mu   sync.Mutex
}

func NewApplicationRepository(path string, log *zap.Logger) *ApplicationRepository {
	return &ApplicationRepository{path: path, log: log}
}

// Append durably writes one record. The header row is written the first
// time the file is created. Records are immutable once written.
func (r *ApplicationRepository) Append(app *models.Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// header is owed whenever the file is missing or empty, so a crash
	// between create and header write doesn't leave a headerless store
	writeHeader := false
	if info, err := os.Stat(r.path); os.IsNotExist(err) {
		writeHeader = true
	} else if err == nil && info.Size() == 0 {
		writeHeader = true
	}

	f, err := os.OpenFile(r.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("%w: open %s: %v", ErrStoreWrite, r.path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if writeHeader {
		if err := w.Write(csvHeader); err != nil {
			return fmt.Errorf("%w: header: %v", ErrStoreWrite, err)
		}
	}
	row := []string{
		app.SubmittedAt.Format(models.TimeLayout),
		app.Name,
		app.Phone,
		app.Username,
		strconv.FormatInt(app.ChatID, 10),
		app.FileID,
		app.FileName,
	}
	if err := w.Write(row); err != nil {
		return fmt.Errorf("%w: row: %v", ErrStoreWrite, err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("%w: flush: %v", ErrStoreWrite, err)
	}

	r.log.Info("application saved", zap.String("name", app.Name))
	return nil
}

// ReadAll returns every record, newest first. Positional IDs count from
// the oldest record (oldest = 1) and stay stable within one snapshot.
// Fails soft: a missing or unreadable file yields an empty list.
func (r *ApplicationRepository) ReadAll() []*models.Application {
	f, err := os.Open(r.path)
	if err != nil {
		if !os.IsNotExist(err) {
			r.log.Error("read applications", zap.Error(err))
		}
		return nil
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		r.log.Error("parse applications csv", zap.Error(err))
		return nil
	}
	if len(rows) <= 1 {
		return nil
	}

	apps := make([]*models.Application, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if len(row) < 7 {
			r.log.Warn("skipping malformed row", zap.Int("line", i+2))
			continue
		}
		submitted, _ := time.ParseInLocation(models.TimeLayout, row[0], time.Local)
		chatID, _ := strconv.ParseInt(row[4], 10, 64)
		apps = append(apps, &models.Application{
			ID:          len(apps) + 1,
			SubmittedAt: submitted,
			Name:        row[1],
			Phone:       row[2],
			Username:    row[3],
			ChatID:      chatID,
			FileID:      row[5],
			FileName:    row[6],
		})
	}

	// newest first
	for i, j := 0, len(apps)-1; i < j; i, j = i+1, j-1 {
		apps[i], apps[j] = apps[j], apps[i]
	}
	return apps
}

// GetByID returns the record with the given positional ID from a fresh
// snapshot, or nil when the ID is out of range.
func (r *ApplicationRepository) GetByID(id int) *models.Application {
	for _, app := range r.ReadAll() {
		if app.ID == id {
			return app
		}
	}
	return nil
}

// Stats is the dashboard summary: totals plus the snapshot time.
type Stats struct {
	Total       int    `json:"total"`
	Today       int    `json:"today"`
	LastUpdated string `json:"last_updated"`
}

func (r *ApplicationRepository) Stats() Stats {
	apps := r.ReadAll()
	today := time.Now().Format("2006-01-02")
	count := 0
	for _, app := range apps {
		if strings.HasPrefix(app.SubmittedAt.Format(models.TimeLayout), today) {
			count++
		}
	}
	return Stats{
		Total:       len(apps),
		Today:       count,
		LastUpdated: time.Now().Format(models.TimeLayout),
	}
}

// Search returns records whose name, phone or username contains the
// query, case-insensitively. An empty query matches nothing.
func (r *ApplicationRepository) Search(query string) []*models.Application {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}
	var out []*models.Application
	for _, app := range r.ReadAll() {
		if strings.Contains(strings.ToLower(app.Name), query) ||
			strings.Contains(strings.ToLower(app.Phone), query) ||
			strings.Contains(strings.ToLower(app.Username), query) {
			out = append(out, app)
		}
	}
	return out
}
