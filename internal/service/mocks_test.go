package service_test

import (
	"context"
	"time"

	"creature-server/internal/ai"
	"creature-server/internal/models"

	"github.com/stretchr/testify/mock"
)

type mockAIClient struct {
	mock.Mock
}

func (m *mockAIClient) GenerateText(ctx context.Context, systemPrompt, userPrompt string, params ai.TextParams) (string, error) {
	args := m.Called(ctx, systemPrompt, userPrompt, params)
	return args.String(0), args.Error(1)
}

func (m *mockAIClient) GenerateImage(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

type mockCreatureRepo struct {
	mock.Mock
}

func (m *mockCreatureRepo) Create(ctx context.Context, creature *models.Creature) error {
	args := m.Called(ctx, creature)
	return args.Error(0)
}

func (m *mockCreatureRepo) GetByShortID(ctx context.Context, shortID string) (*models.Creature, error) {
	args := m.Called(ctx, shortID)
	if c := args.Get(0); c != nil {
		return c.(*models.Creature), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCreatureRepo) Exists(ctx context.Context, shortID string) (bool, error) {
	args := m.Called(ctx, shortID)
	return args.Bool(0), args.Error(1)
}

func (m *mockCreatureRepo) ListAll(ctx context.Context) ([]models.Creature, error) {
	args := m.Called(ctx)
	if c := args.Get(0); c != nil {
		return c.([]models.Creature), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCreatureRepo) ListExpiredIDs(ctx context.Context, now time.Time) ([]string, error) {
	args := m.Called(ctx, now)
	if ids := args.Get(0); ids != nil {
		return ids.([]string), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCreatureRepo) Delete(ctx context.Context, shortID string) error {
	args := m.Called(ctx, shortID)
	return args.Error(0)
}

func (m *mockCreatureRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

type mockStorybookRepo struct {
	mock.Mock
}

func (m *mockStorybookRepo) Create(ctx context.Context, deviceID, bookName string) (*models.Storybook, error) {
	args := m.Called(ctx, deviceID, bookName)
	if b := args.Get(0); b != nil {
		return b.(*models.Storybook), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockStorybookRepo) GetByID(ctx context.Context, id int64) (*models.Storybook, error) {
	args := m.Called(ctx, id)
	if b := args.Get(0); b != nil {
		return b.(*models.Storybook), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockStorybookRepo) GetLatestByDevice(ctx context.Context, deviceID string) (*models.Storybook, error) {
	args := m.Called(ctx, deviceID)
	if b := args.Get(0); b != nil {
		return b.(*models.Storybook), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockStorybookRepo) ListByDevice(ctx context.Context, deviceID string) ([]models.Storybook, error) {
	args := m.Called(ctx, deviceID)
	if b := args.Get(0); b != nil {
		return b.([]models.Storybook), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockStorybookRepo) UpdateName(ctx context.Context, id int64, bookName string) error {
	args := m.Called(ctx, id, bookName)
	return args.Error(0)
}

func (m *mockStorybookRepo) UpdateCover(ctx context.Context, id int64, coverImageURL string) error {
	args := m.Called(ctx, id, coverImageURL)
	return args.Error(0)
}

func (m *mockStorybookRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockStorybookRepo) ListEntries(ctx context.Context, storybookID int64) ([]models.StorybookEntry, error) {
	args := m.Called(ctx, storybookID)
	if e := args.Get(0); e != nil {
		return e.([]models.StorybookEntry), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockStorybookRepo) MaxPageNumber(ctx context.Context, storybookID int64) (int, error) {
	args := m.Called(ctx, storybookID)
	return args.Int(0), args.Error(1)
}

func (m *mockStorybookRepo) InsertEntry(ctx context.Context, storybookID int64, creatureShortID string, pageNumber int) (*models.StorybookEntry, error) {
	args := m.Called(ctx, storybookID, creatureShortID, pageNumber)
	if e := args.Get(0); e != nil {
		return e.(*models.StorybookEntry), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockStorybookRepo) UpdateEntryPage(ctx context.Context, storybookID, entryID int64, pageNumber int) error {
	args := m.Called(ctx, storybookID, entryID, pageNumber)
	return args.Error(0)
}

func (m *mockStorybookRepo) DeleteEntry(ctx context.Context, entryID int64) error {
	args := m.Called(ctx, entryID)
	return args.Error(0)
}

func (m *mockStorybookRepo) EntryExists(ctx context.Context, storybookID int64, creatureShortID string) (bool, error) {
	args := m.Called(ctx, storybookID, creatureShortID)
	return args.Bool(0), args.Error(1)
}

type mockImageStore struct {
	mock.Mock
}

func (m *mockImageStore) StoreFromURL(ctx context.Context, sourceURL, key string) (string, error) {
	args := m.Called(ctx, sourceURL, key)
	return args.String(0), args.Error(1)
}

func (m *mockImageStore) DeleteByPrefix(ctx context.Context, prefix string) (int, error) {
	args := m.Called(ctx, prefix)
	return args.Int(0), args.Error(1)
}

func (m *mockImageStore) IsDurable(url string) bool {
	args := m.Called(url)
	return args.Bool(0)
}
