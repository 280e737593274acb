package repositories

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"arizabot/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestRepo(t *testing.T) *ApplicationRepository {
	t.Helper()
	path := filepath.Join(t.TempDir(), "applications.csv")
	return NewApplicationRepository(path, zap.NewNop())
}

func sampleApp(name, phone string) *models.Application {
	return &models.Application{
		SubmittedAt: time.Now(),
		Name:        name,
		Phone:       phone,
		Username:    "@tester",
		ChatID:      42,
		FileID:      "BQACAgIAAxkBAAI",
		FileName:    "application.pdf",
	}
}

func TestReadAllEmptyStore(t *testing.T) {
	repo := newTestRepo(t)
	assert.Empty(t, repo.ReadAll())
}

func TestAppendWritesHeaderOnce(t *testing.T) {
	repo := newTestRepo(t)
	require.NoError(t, repo.Append(sampleApp("Ali Valiyev", "+998901234567")))
	require.NoError(t, repo.Append(sampleApp("Shahnoza Karimova", "+998901112233")))

	raw, err := os.ReadFile(repo.path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Sana,Ism,Telefon,Username,Chat ID,File ID,Fayl nomi", lines[0])
}

func TestAppendWritesHeaderIntoExistingEmptyFile(t *testing.T) {
	repo := newTestRepo(t)
	// an empty file can be left behind by a write that failed after create
	require.NoError(t, os.WriteFile(repo.path, nil, 0o644))

	require.NoError(t, repo.Append(sampleApp("Ali Valiyev", "+998901234567")))

	raw, err := os.ReadFile(repo.path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Sana,Ism,Telefon,Username,Chat ID,File ID,Fayl nomi", lines[0])

	apps := repo.ReadAll()
	require.Len(t, apps, 1)
	assert.Equal(t, "Ali Valiyev", apps[0].Name)
}

func TestReadAllNewestFirstWithPositionalIDs(t *testing.T) {
	repo := newTestRepo(t)
	require.NoError(t, repo.Append(sampleApp("First Applicant", "+998901111111")))
	require.NoError(t, repo.Append(sampleApp("Second Applicant", "+998902222222")))

	apps := repo.ReadAll()
	require.Len(t, apps, 2)
	assert.Equal(t, "Second Applicant", apps[0].Name)
	assert.Equal(t, 2, apps[0].ID)
	assert.Equal(t, "First Applicant", apps[1].Name)
	assert.Equal(t, 1, apps[1].ID)
}

func TestAppendRoundTripsAllFields(t *testing.T) {
	repo := newTestRepo(t)
	in := sampleApp("Ali Valiyev", "+998901234567")
	require.NoError(t, repo.Append(in))

	apps := repo.ReadAll()
	require.Len(t, apps, 1)
	out := apps[0]
	assert.Equal(t, in.Name, out.Name)
	assert.Equal(t, in.Phone, out.Phone)
	assert.Equal(t, in.Username, out.Username)
	assert.Equal(t, in.ChatID, out.ChatID)
	assert.Equal(t, in.FileID, out.FileID)
	assert.Equal(t, in.FileName, out.FileName)
}

func TestAppendFailsOnUnwritablePath(t *testing.T) {
	repo := NewApplicationRepository(filepath.Join(t.TempDir(), "missing", "applications.csv"), zap.NewNop())
	err := repo.Append(sampleApp("Ali Valiyev", "+998901234567"))
	assert.ErrorIs(t, err, ErrStoreWrite)
}

func TestGetByID(t *testing.T) {
	repo := newTestRepo(t)
	require.NoError(t, repo.Append(sampleApp("First Applicant", "+998901111111")))
	require.NoError(t, repo.Append(sampleApp("Second Applicant", "+998902222222")))

	assert.Equal(t, "First Applicant", repo.GetByID(1).Name)
	assert.Equal(t, "Second Applicant", repo.GetByID(2).Name)
	assert.Nil(t, repo.GetByID(0))
	assert.Nil(t, repo.GetByID(3))
}

func TestStatsCountsToday(t *testing.T) {
	repo := newTestRepo(t)
	old := sampleApp("Old Applicant", "+998901111111")
	old.SubmittedAt = time.Now().AddDate(0, 0, -2)
	require.NoError(t, repo.Append(old))
	require.NoError(t, repo.Append(sampleApp("Fresh Applicant", "+998902222222")))

	stats := repo.Stats()
	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 1, stats.Today)
}

func TestSearch(t *testing.T) {
	repo := newTestRepo(t)
	require.NoError(t, repo.Append(sampleApp("Shahnoza Karimova", "+998901112233")))
	require.NoError(t, repo.Append(sampleApp("Ali Valiyev", "+998907654321")))

	assert.Len(t, repo.Search("shahnoza"), 1)
	assert.Len(t, repo.Search("+99890"), 2)
	assert.Len(t, repo.Search("@tester"), 2)
	assert.Empty(t, repo.Search(""))
	assert.Empty(t, repo.Search("nobody"))
}
