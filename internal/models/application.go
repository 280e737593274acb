package models

import (
	"fmt"
	"strings"
	"time"
)

// TimeLayout is the timestamp format used in the CSV store and everywhere
// a submission date is shown to admins.
const TimeLayout = "2006-01-02 15:04:05"

// Application is one persisted, immutable submission.
type Application struct {
	ID          int       `json:"id"` // positional, assigned at read time
	SubmittedAt time.Time `json:"submitted_at"`
	Name        string    `json:"name"`
	Phone       string    `json:"phone"`
	Username    string    `json:"username"`
	ChatID      int64     `json:"chat_id"`
	FileID      string    `json:"file_id"`
	FileName    string    `json:"file_name"`
}

// NewApplication assembles a record from a completed draft and the
// submitted document. It refuses to build an inconsistent record so that
// nothing half-filled ever reaches the store.
func NewApplication(d Draft, chatID int64, username, fileID, fileName string) (*Application, error) {
	if strings.TrimSpace(d.Name) == "" || d.Phone == "" {
		return nil, fmt.Errorf("draft incomplete: name=%q phone=%q", d.Name, d.Phone)
	}
	if fileID == "" || !strings.HasSuffix(strings.ToLower(fileName), ".pdf") {
		return nil, fmt.Errorf("invalid document: file_id=%q file_name=%q", fileID, fileName)
	}
	if username == "" {
		username = "N/A"
	}
	return &Application{
		SubmittedAt: time.Now(),
		Name:        strings.TrimSpace(d.Name),
		Phone:       d.Phone,
		Username:    username,
		ChatID:      chatID,
		FileID:      fileID,
		FileName:    fileName,
	}, nil
}
