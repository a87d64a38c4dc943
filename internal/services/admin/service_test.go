package admin

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/killallgit/pulsegrow-api/internal/database"
	"github.com/killallgit/pulsegrow-api/internal/models"
	"github.com/killallgit/pulsegrow-api/internal/services/store"
)

// MockRepository is a mock implementation of Repository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Counts(ctx context.Context) (store.Counts, error) {
	args := m.Called(ctx)
	return args.Get(0).(store.Counts), args.Error(1)
}

func (m *MockRepository) ListAllVideos(ctx context.Context) ([]models.Video, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Video), args.Error(1)
}

func (m *MockRepository) Reset(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func TestService_Stats(t *testing.T) {
	ctx := context.Background()

	t.Run("counts and global average", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("Counts", ctx).Return(store.Counts{Channels: 1, Videos: 2, Comments: 40}, nil)
		repo.On("ListAllVideos", ctx).Return([]models.Video{
			{ID: "v1", SentimentScore: 0.6},
			{ID: "v2", SentimentScore: -0.2},
		}, nil)

		stats, err := NewService(repo, nil).Stats(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), stats.TotalChannels)
		assert.Equal(t, int64(2), stats.TotalVideos)
		assert.Equal(t, int64(40), stats.TotalComments)
		assert.InDelta(t, 0.2, stats.GlobalSentimentAverage, 1e-9)
		repo.AssertExpectations(t)
	})

	t.Run("empty database", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("Counts", ctx).Return(store.Counts{}, nil)
		repo.On("ListAllVideos", ctx).Return([]models.Video{}, nil)

		stats, err := NewService(repo, nil).Stats(ctx)
		require.NoError(t, err)
		assert.Equal(t, &Stats{}, stats)
	})

	t.Run("count failure", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("Counts", ctx).Return(store.Counts{}, errors.New("database is locked"))

		_, err := NewService(repo, nil).Stats(ctx)
		assert.Error(t, err)
		repo.AssertNotCalled(t, "ListAllVideos", ctx)
	})
}

func TestService_Reset(t *testing.T) {
	ctx := context.Background()

	repo := new(MockRepository)
	repo.On("Reset", ctx).Return(errors.New("constraint failed")).Once()
	repo.On("Reset", ctx).Return(nil).Once()

	svc := NewService(repo, nil)
	err := svc.Reset(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "constraint failed")

	require.NoError(t, svc.Reset(ctx))
	repo.AssertExpectations(t)
}

func TestService_ResetStore(t *testing.T) {
	db, err := database.Initialize(":memory:", false)
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(nil, models.AllModels()...))
	t.Cleanup(func() { _ = db.Close() })

	repo := store.NewRepository(db.DB)
	ctx := context.Background()
	require.NoError(t, repo.UpsertChannel(ctx, &models.Channel{ID: "UC1", Title: "Demo"}))
	require.NoError(t, repo.QueueVideos(ctx, []models.Video{{ID: "v1", ChannelID: "UC1"}}))
	require.NoError(t, repo.SaveComments(ctx, []models.Comment{{ID: "c1", VideoID: "v1", Text: "semma"}}))

	svc := NewService(repo, nil)
	require.NoError(t, svc.Reset(ctx))

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, &Stats{}, stats)
}
