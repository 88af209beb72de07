package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"giftmart/internal/common"
	"giftmart/internal/models"
)

type MockNewsRepository struct {
	mock.Mock
}

func (m *MockNewsRepository) Create(ctx context.Context, news *models.News) error {
	args := m.Called(ctx, news)
	return args.Error(0)
}

func (m *MockNewsRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.News, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.News), args.Error(1)
}

func (m *MockNewsRepository) GetBySlug(ctx context.Context, slug string) (*models.News, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.News), args.Error(1)
}

func (m *MockNewsRepository) ApplyUpdate(ctx context.Context, id uuid.UUID, upd *models.NewsUpdate) error {
	args := m.Called(ctx, id, upd)
	return args.Error(0)
}

func (m *MockNewsRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockNewsRepository) List(ctx context.Context, publishedOnly bool, limit, offset int) ([]*models.News, error) {
	args := m.Called(ctx, publishedOnly, limit, offset)
	return args.Get(0).([]*models.News), args.Error(1)
}

func TestCreateNews_Success(t *testing.T) {
	repo := &MockNewsRepository{}
	svc := NewNewsService(repo)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*models.News")).Return(nil)

	summary := "Short intro"
	news, err := svc.CreateNews(context.Background(), "Khai truong chi nhanh moi", nil, &summary, "Noi dung bai viet", nil, true)

	assert.NoError(t, err)
	assert.Equal(t, "Noi dung bai viet", news.Content)
	assert.Equal(t, "khai-truong-chi-nhanh-moi", news.Slug)
	assert.True(t, news.Published)
	repo.AssertExpectations(t)
}

func TestCreateNews_EmptyContentRejected(t *testing.T) {
	repo := &MockNewsRepository{}
	svc := NewNewsService(repo)

	_, err := svc.CreateNews(context.Background(), "Title only", nil, nil, "", nil, false)

	var validationErr *common.ValidationError
	assert.ErrorAs(t, err, &validationErr)
	assert.Contains(t, err.Error(), "content")
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateNews_EmptyTitleRejected(t *testing.T) {
	repo := &MockNewsRepository{}
	svc := NewNewsService(repo)

	_, err := svc.CreateNews(context.Background(), "", nil, nil, "body", nil, false)

	var validationErr *common.ValidationError
	assert.ErrorAs(t, err, &validationErr)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}
