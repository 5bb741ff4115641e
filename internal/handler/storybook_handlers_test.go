package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"creature-server/internal/handler"
	"creature-server/internal/models"
	"creature-server/internal/pdf"
	"creature-server/internal/repository"
	"creature-server/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

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

// apiRouter builds the full route table over real services backed by the
// given repository mocks. AI, storage, and the exporter are never reached by
// the storybook routes.
func apiRouter(books repository.StorybookRepository, creatures repository.CreatureRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()

	h := handler.NewHandler(
		service.NewGenerationService(nil, logger),
		service.NewSuggestionService(nil, logger),
		service.NewCreatureService(creatures, nil, logger),
		service.NewStorybookService(books, creatures, nil, nil, false, time.Second, logger),
		service.NewCleanupService(creatures, nil, logger),
		pdf.NewExporter("https://example.com", logger),
		"s3cret",
		logger,
	)

	r := gin.New()
	h.RegisterRoutes(r)
	return r
}

func postEntry(r *gin.Engine, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/storybook-entries", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestAddStoryToBook(t *testing.T) {
	t.Run("Adding the same creature twice inserts one entry", func(t *testing.T) {
		books := new(mockStorybookRepo)
		creatures := new(mockCreatureRepo)
		r := apiRouter(books, creatures)

		book := &models.Storybook{ID: 7, DeviceID: "device-1", BookName: "My Magical Storybook"}
		books.On("GetLatestByDevice", mock.Anything, "device-1").Return(book, nil)
		books.On("EntryExists", mock.Anything, int64(7), "abc12345").Return(false, nil).Once()
		books.On("EntryExists", mock.Anything, int64(7), "abc12345").Return(true, nil).Once()
		creatures.On("Exists", mock.Anything, "abc12345").Return(true, nil).Once()
		books.On("MaxPageNumber", mock.Anything, int64(7)).Return(2, nil).Once()
		books.On("InsertEntry", mock.Anything, int64(7), "abc12345", 3).
			Return(&models.StorybookEntry{ID: 21, StorybookID: 7, CreatureShortID: "abc12345", PageNumber: 3}, nil).Once()

		body := `{"deviceId":"device-1","creatureId":"abc12345"}`

		first := postEntry(r, body)
		assert.Equal(t, http.StatusOK, first.Code)
		assert.Contains(t, first.Body.String(), `"entry"`)
		assert.Contains(t, first.Body.String(), `"pageNumber":3`)

		second := postEntry(r, body)
		assert.Equal(t, http.StatusOK, second.Code)
		assert.Contains(t, second.Body.String(), `"alreadyInBook":true`)

		books.AssertNumberOfCalls(t, "InsertEntry", 1)
		books.AssertExpectations(t)
		creatures.AssertExpectations(t)
	})

	t.Run("Unknown creature is a 404", func(t *testing.T) {
		books := new(mockStorybookRepo)
		creatures := new(mockCreatureRepo)
		r := apiRouter(books, creatures)

		book := &models.Storybook{ID: 7, DeviceID: "device-1"}
		books.On("GetLatestByDevice", mock.Anything, "device-1").Return(book, nil)
		books.On("EntryExists", mock.Anything, int64(7), "missing0").Return(false, nil).Once()
		creatures.On("Exists", mock.Anything, "missing0").Return(false, nil).Once()

		w := postEntry(r, `{"deviceId":"device-1","creatureId":"missing0"}`)

		assert.Equal(t, http.StatusNotFound, w.Code)
		books.AssertNumberOfCalls(t, "InsertEntry", 0)
	})

	t.Run("Missing deviceId is a 400", func(t *testing.T) {
		r := apiRouter(new(mockStorybookRepo), new(mockCreatureRepo))

		w := postEntry(r, `{"creatureId":"abc12345"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
