package infrastructure

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/pin-extract-go/internal/domain"
)

func setupTestRepo(t *testing.T) *SQLiteDownloadRepository {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "nested", "history.db")
	repo, err := NewSQLiteDownloadRepository(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func videoRecord(pinURL, path string) *domain.DownloadRecord {
	return domain.NewDownloadRecord(pinURL, &domain.DownloadResult{
		Success:  true,
		Type:     domain.MediaVideo,
		Filename: filepath.Base(path),
		Filepath: path,
		MediaURL: "https://v.pinimg.com/a.mp4",
		Message:  domain.MessageVideoSuccess,
	})
}

func TestSQLiteRepository_CreateAndFind(t *testing.T) {
	repo := setupTestRepo(t)

	record := videoRecord("https://www.pinterest.com/pin/1/", "/d/a.mp4")
	require.NoError(t, repo.Create(record))

	found, err := repo.FindByID(record.ID)
	require.NoError(t, err)
	assert.Equal(t, record.PinURL, found.PinURL)
	assert.Equal(t, domain.MediaVideo, found.Type)
	assert.True(t, found.Success)
}

func TestSQLiteRepository_FindByIDNotFound(t *testing.T) {
	repo := setupTestRepo(t)

	found, err := repo.FindByID("missing")
	assert.ErrorIs(t, err, domain.ErrRecordNotFound)
	assert.Nil(t, found)
}

func TestSQLiteRepository_FindAllNewestFirst(t *testing.T) {
	repo := setupTestRepo(t)

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 3; i++ {
		r := videoRecord("https://www.pinterest.com/pin/1/", filepath.Join("/d", string(rune('a'+i))+".mp4"))
		r.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, repo.Create(r))
	}

	all, err := repo.FindAll(0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "/d/c.mp4", all[0].FilePath)

	limited, err := repo.FindAll(2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestSQLiteRepository_DeleteByFilePath(t *testing.T) {
	repo := setupTestRepo(t)

	require.NoError(t, repo.Create(videoRecord("https://www.pinterest.com/pin/1/", "/d/a.mp4")))
	require.NoError(t, repo.Create(videoRecord("https://www.pinterest.com/pin/2/", "/d/b.mp4")))

	n, err := repo.DeleteByFilePath("/d/a.mp4")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	all, err := repo.FindAll(0)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "/d/b.mp4", all[0].FilePath)
}

func TestSQLiteRepository_GetStats(t *testing.T) {
	repo := setupTestRepo(t)

	require.NoError(t, repo.Create(videoRecord("https://www.pinterest.com/pin/1/", "/d/a.mp4")))
	require.NoError(t, repo.Create(domain.NewDownloadRecord("https://www.pinterest.com/pin/2/", &domain.DownloadResult{
		Success: true, Type: domain.MediaImage, Filepath: "/d/b.jpg", Message: domain.MessageImageSuccess,
	})))
	require.NoError(t, repo.Create(domain.NewDownloadRecord("https://www.pinterest.com/pin/3/",
		domain.NewFailureResult(domain.ErrNoMedia))))

	stats, err := repo.GetStats()
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.Total)
	assert.Equal(t, int64(2), stats.Succeeded)
	assert.Equal(t, int64(1), stats.Failed)
	assert.Equal(t, int64(1), stats.Videos)
	assert.Equal(t, int64(1), stats.Images)
}
