package services

import (
	"arizabot/internal/models"

	"go.uber.org/zap"
)

// applicationStore is the slice of the repository the finalizer needs.
type applicationStore interface {
	Append(app *models.Application) error
}

// DeliveryResult is the outcome of notifying one administrator.
type DeliveryResult struct {
	AdminID int64
	Err     error
}

// SubmissionService finalizes a completed draft: persist first, then
// confirm to the applicant, then fan out to every administrator.
// Persistence is the correctness boundary; notification is best effort.
type SubmissionService struct {
	store    applicationStore
	channel  Channel
	adminIDs []int64
	log      *zap.Logger
}

func NewSubmissionService(store applicationStore, channel Channel, adminIDs []int64, log *zap.Logger) *SubmissionService {
	return &SubmissionService{store: store, channel: channel, adminIDs: adminIDs, log: log}
}

// Finalize persists the application and notifies everyone. On a store
// failure the user gets the generic failure text and no administrator is
// contacted. Individual delivery failures are collected and logged, never
// shown to the user and never affecting other recipients.
func (s *SubmissionService) Finalize(draft models.Draft, chatID int64, username string, doc InboundDocument) ([]DeliveryResult, error) {
	app, err := models.NewApplication(draft, chatID, username, doc.FileID, doc.FileName)
	if err != nil {
		s.log.Error("assemble application", zap.Error(err))
		s.sendOrLog(chatID, msgFailure)
		return nil, err
	}

	if err := s.store.Append(app); err != nil {
		s.log.Error("persist application", zap.Error(err), zap.String("name", app.Name))
		s.sendOrLog(chatID, msgFailure)
		return nil, err
	}

	s.sendOrLog(chatID, msgAccepted)

	summary := adminSummary(app)
	caption := adminCaption(app)
	results := make([]DeliveryResult, 0, len(s.adminIDs))
	for _, adminID := range s.adminIDs {
		err := s.notifyAdmin(adminID, summary, caption, app.FileID)
		if err != nil {
			s.log.Error("forward to admin",
				zap.Int64("admin_id", adminID),
				zap.String("name", app.Name),
				zap.Error(err))
		} else {
			s.log.Info("application forwarded",
				zap.Int64("admin_id", adminID),
				zap.String("name", app.Name))
		}
		results = append(results, DeliveryResult{AdminID: adminID, Err: err})
	}
	return results, nil
}

// notifyAdmin delivers the summary and then the document. A failed summary
// skips the document for that admin only.
func (s *SubmissionService) notifyAdmin(adminID int64, summary, caption, fileID string) error {
	if err := s.channel.SendText(adminID, summary); err != nil {
		return err
	}
	return s.channel.SendDocument(adminID, fileID, caption)
}

func (s *SubmissionService) sendOrLog(chatID int64, text string) {
	if err := s.channel.SendText(chatID, text); err != nil {
		s.log.Error("send to user", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}
