package services

import (
	"testing"

	"arizabot/internal/models"
	"arizabot/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testDraft() models.Draft {
	return models.Draft{Name: "Shahnoza Karimova", Phone: "+998901112233"}
}

func testDoc() InboundDocument {
	return InboundDocument{FileID: "file-ref-123", FileName: "application.pdf", FileSize: 500 * 1024}
}

func TestFinalizePersistsBeforeNotifying(t *testing.T) {
	channel := newFakeChannel()
	store := &fakeStore{}
	svc := NewSubmissionService(store, channel, []int64{9001}, zap.NewNop())

	results, err := svc.Finalize(testDraft(), testChat, "@shahnoza", testDoc())

	require.NoError(t, err)
	require.Len(t, store.apps, 1)
	require.Len(t, results, 1)
	assert.NoError(t, results[0].Err)
	assert.Equal(t, msgAccepted, channel.lastTextFor(testChat))
}

func TestFinalizeFanOutIsolation(t *testing.T) {
	channel := newFakeChannel()
	channel.failText[9001] = errBlocked
	store := &fakeStore{}
	svc := NewSubmissionService(store, channel, []int64{9001, 9002}, zap.NewNop())

	results, err := svc.Finalize(testDraft(), testChat, "@shahnoza", testDoc())

	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.ErrorIs(t, results[0].Err, errBlocked)
	assert.NoError(t, results[1].Err)

	// the second admin still got both the summary and the document
	assert.Len(t, channel.textsFor(9002), 1)
	require.Len(t, channel.docs, 1)
	assert.Equal(t, int64(9002), channel.docs[0].chatID)

	// the record stays persisted and the user only sees success
	assert.Len(t, store.apps, 1)
	assert.Equal(t, msgAccepted, channel.lastTextFor(testChat))
}

func TestFinalizeDocumentFailureIsolatedPerAdmin(t *testing.T) {
	channel := newFakeChannel()
	channel.failDoc[9001] = errBlocked
	store := &fakeStore{}
	svc := NewSubmissionService(store, channel, []int64{9001, 9002}, zap.NewNop())

	results, err := svc.Finalize(testDraft(), testChat, "@shahnoza", testDoc())

	require.NoError(t, err)
	assert.ErrorIs(t, results[0].Err, errBlocked)
	assert.NoError(t, results[1].Err)
	require.Len(t, channel.docs, 1)
	assert.Equal(t, int64(9002), channel.docs[0].chatID)
}

func TestFinalizeStoreFailureSkipsAllNotifications(t *testing.T) {
	channel := newFakeChannel()
	store := &fakeStore{appendErr: repositories.ErrStoreWrite}
	svc := NewSubmissionService(store, channel, []int64{9001, 9002}, zap.NewNop())

	results, err := svc.Finalize(testDraft(), testChat, "@shahnoza", testDoc())

	assert.ErrorIs(t, err, repositories.ErrStoreWrite)
	assert.Nil(t, results)
	assert.Empty(t, channel.docs)
	assert.Empty(t, channel.textsFor(9001))
	assert.Empty(t, channel.textsFor(9002))
	assert.Equal(t, msgFailure, channel.lastTextFor(testChat))
}

func TestFinalizeIncompleteDraftRejected(t *testing.T) {
	channel := newFakeChannel()
	store := &fakeStore{}
	svc := NewSubmissionService(store, channel, []int64{9001}, zap.NewNop())

	_, err := svc.Finalize(models.Draft{}, testChat, "", testDoc())

	assert.Error(t, err)
	assert.Empty(t, store.apps)
	assert.Empty(t, channel.docs)
}

func TestFinalizeDefaultsMissingUsername(t *testing.T) {
	channel := newFakeChannel()
	store := &fakeStore{}
	svc := NewSubmissionService(store, channel, []int64{9001}, zap.NewNop())

	_, err := svc.Finalize(testDraft(), testChat, "", testDoc())

	require.NoError(t, err)
	require.Len(t, store.apps, 1)
	assert.Equal(t, "N/A", store.apps[0].Username)
}
