package services

import (
	"strings"
	"sync"
	"unicode/utf8"

	"arizabot/internal/models"
	"arizabot/internal/validation"

	"go.uber.org/zap"
)

const (
	maxFileSize    = 20 * 1024 * 1024
	inboxCapacity  = 32
	minNameLetters = 3
)

// IntakeService drives the application conversation: one worker per chat
// keeps that chat's transitions strictly ordered while chats run
// concurrently with each other.
type IntakeService struct {
	sessions   *SessionStore
	channel    Channel
	submission *SubmissionService
	log        *zap.Logger

	mu      sync.Mutex
	inboxes map[int64]chan *Inbound
}

func NewIntakeService(sessions *SessionStore, channel Channel, submission *SubmissionService, log *zap.Logger) *IntakeService {
	return &IntakeService{
		sessions:   sessions,
		channel:    channel,
		submission: submission,
		log:        log,
		inboxes:    make(map[int64]chan *Inbound),
	}
}

// Dispatch routes an inbound message to its chat's worker, starting one on
// first contact. A full inbox drops the message rather than stalling the
// poll loop for every other chat.
func (s *IntakeService) Dispatch(in *Inbound) {
	s.mu.Lock()
	inbox, ok := s.inboxes[in.ChatID]
	if !ok {
		inbox = make(chan *Inbound, inboxCapacity)
		s.inboxes[in.ChatID] = inbox
		go s.runWorker(inbox)
	}
	s.mu.Unlock()

	select {
	case inbox <- in:
	default:
		s.log.Warn("inbox full, dropping update", zap.Int64("chat_id", in.ChatID))
	}
}

func (s *IntakeService) runWorker(inbox chan *Inbound) {
	for in := range inbox {
		s.handleSafe(in)
	}
}

// handleSafe is the top-level fault boundary for one chat step: a panic is
// logged, the user is told to retry via /start, and the session is reset.
func (s *IntakeService) handleSafe(in *Inbound) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("panic while handling update",
				zap.Int64("chat_id", in.ChatID), zap.Any("panic", r))
			s.sessions.Clear(in.ChatID)
			_ = s.channel.SendText(in.ChatID, msgFailure)
		}
	}()
	s.Handle(in)
}

// Handle runs one state transition for the message's chat.
func (s *IntakeService) Handle(in *Inbound) {
	sess := s.sessions.Get(in.ChatID)

	switch in.Command {
	case "start", "restart":
		// re-entry mid-flow silently discards the draft
		s.begin(sess, in)
		return
	case "cancel":
		sess.Reset()
		s.send(in.ChatID, msgCancelled)
		s.log.Info("conversation cancelled", zap.Int64("chat_id", in.ChatID))
		return
	case "":
	default:
		// unknown commands never reach state handlers
		return
	}

	switch sess.State {
	case models.StateAwaitingName:
		s.receiveName(sess, in)
	case models.StateAwaitingPhone:
		s.receivePhone(sess, in)
	case models.StateAwaitingFile:
		s.receiveFile(sess, in)
	default:
		// idle chats ignore everything but the entry commands
	}
}

func (s *IntakeService) begin(sess *models.Session, in *Inbound) {
	sess.Reset()
	sess.State = models.StateAwaitingName
	s.log.Info("conversation started",
		zap.Int64("chat_id", in.ChatID), zap.String("username", in.Username))
	s.send(in.ChatID, msgWelcome)
	s.send(in.ChatID, msgAskName)
}

func (s *IntakeService) receiveName(sess *models.Session, in *Inbound) {
	if in.Document != nil || in.Text == "" {
		return
	}
	name := strings.TrimSpace(in.Text)
	if utf8.RuneCountInString(name) < minNameLetters {
		s.send(in.ChatID, msgNameTooShort)
		return
	}
	sess.Draft.Name = name
	sess.State = models.StateAwaitingPhone
	s.log.Info("name received", zap.Int64("chat_id", in.ChatID))
	s.send(in.ChatID, msgAskPhone)
}

func (s *IntakeService) receivePhone(sess *models.Session, in *Inbound) {
	if in.Document != nil || in.Text == "" {
		return
	}
	phone := strings.TrimSpace(in.Text)
	if !validation.ValidatePhone(phone) {
		s.send(in.ChatID, msgPhoneInvalid)
		return
	}
	sess.Draft.Phone = validation.NormalizePhone(phone)
	sess.State = models.StateAwaitingFile
	s.log.Info("phone received", zap.Int64("chat_id", in.ChatID))
	s.send(in.ChatID, msgAskPDF)
}

func (s *IntakeService) receiveFile(sess *models.Session, in *Inbound) {
	doc := in.Document
	if doc == nil {
		if in.Text != "" {
			s.send(in.ChatID, msgNotText)
		} else {
			s.send(in.ChatID, msgNotDocument)
		}
		return
	}
	if !strings.HasSuffix(strings.ToLower(doc.FileName), ".pdf") {
		s.send(in.ChatID, msgNotPDF)
		return
	}
	if doc.FileSize > maxFileSize {
		s.send(in.ChatID, msgFileTooLarge)
		return
	}

	username := ""
	if in.Username != "" {
		username = "@" + in.Username
	}
	// the finalizer owns all messaging from here; the session resets no
	// matter how delivery goes
	_, _ = s.submission.Finalize(sess.Draft, in.ChatID, username, *doc)
	sess.Reset()
}

func (s *IntakeService) send(chatID int64, text string) {
	if err := s.channel.SendText(chatID, text); err != nil {
		s.log.Error("send to user", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}
