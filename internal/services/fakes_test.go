package services

import (
	"errors"
	"sync"

	"arizabot/internal/models"
)

type sentText struct {
	chatID int64
	text   string
}

type sentDoc struct {
	chatID  int64
	fileID  string
	caption string
}

// fakeChannel records outbound traffic and can fail per recipient. Safe
// for concurrent use, since dispatch tests drive real worker goroutines.
type fakeChannel struct {
	mu       sync.Mutex
	texts    []sentText
	docs     []sentDoc
	failText map[int64]error
	failDoc  map[int64]error
	fileURL  string
	urlErr   error
}

func newFakeChannel() *fakeChannel {
	return &fakeChannel{
		failText: make(map[int64]error),
		failDoc:  make(map[int64]error),
	}
}

func (f *fakeChannel) SendText(chatID int64, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failText[chatID]; err != nil {
		return err
	}
	f.texts = append(f.texts, sentText{chatID: chatID, text: text})
	return nil
}

func (f *fakeChannel) SendDocument(chatID int64, fileID, caption string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failDoc[chatID]; err != nil {
		return err
	}
	f.docs = append(f.docs, sentDoc{chatID: chatID, fileID: fileID, caption: caption})
	return nil
}

func (f *fakeChannel) FileURL(fileID string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.urlErr != nil {
		return "", f.urlErr
	}
	return f.fileURL, nil
}

func (f *fakeChannel) textsFor(chatID int64) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, s := range f.texts {
		if s.chatID == chatID {
			out = append(out, s.text)
		}
	}
	return out
}

func (f *fakeChannel) lastTextFor(chatID int64) string {
	texts := f.textsFor(chatID)
	if len(texts) == 0 {
		return ""
	}
	return texts[len(texts)-1]
}

func (f *fakeChannel) sentDocs() []sentDoc {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]sentDoc(nil), f.docs...)
}

// panickyChannel panics on one specific outbound text, for exercising the
// worker's fault boundary.
type panickyChannel struct {
	*fakeChannel
	panicOn string
}

func (p *panickyChannel) SendText(chatID int64, text string) error {
	if text == p.panicOn {
		panic("channel exploded")
	}
	return p.fakeChannel.SendText(chatID, text)
}

// fakeStore is an in-memory applicationStore with an injectable failure.
// Guarded for concurrent workers.
type fakeStore struct {
	mu        sync.Mutex
	apps      []*models.Application
	appendErr error
}

func (f *fakeStore) Append(app *models.Application) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.appendErr != nil {
		return f.appendErr
	}
	f.apps = append(f.apps, app)
	return nil
}

func (f *fakeStore) saved() []*models.Application {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*models.Application(nil), f.apps...)
}

var errBlocked = errors.New("recipient blocked the bot")
