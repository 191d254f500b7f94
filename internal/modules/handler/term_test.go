package handler

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/youngpro718/nysc-facilities-sub003/internal/modules/model"
	"gorm.io/gorm"
)

// MockTermRepo is a mock implementation of repo.TermRepo
type MockTermRepo struct {
	mock.Mock
}

func (m *MockTermRepo) Upsert(ctx context.Context, term *model.CourtTerm) error {
	args := m.Called(ctx, term)
	return args.Error(0)
}

func (m *MockTermRepo) Get(ctx context.Context, id uuid.UUID) (*model.CourtTerm, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CourtTerm), args.Error(1)
}

func (m *MockTermRepo) List(ctx context.Context) ([]*model.CourtTerm, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.CourtTerm), args.Error(1)
}

func newTermRouter(terms *MockTermRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewTermHandler(nil, terms)
	r := gin.New()
	r.GET("/term/:term_id", h.GetTerm)
	return r
}

func TestGetTerm_OK(t *testing.T) {
	terms := new(MockTermRepo)
	r := newTermRouter(terms)

	id := uuid.New()
	terms.On("Get", mock.Anything, id).Return(&model.CourtTerm{ID: id, TermNumber: "4"}, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, fmt.Sprintf("/term/%s", id), nil))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGetTerm_NotFound(t *testing.T) {
	terms := new(MockTermRepo)
	r := newTermRouter(terms)

	id := uuid.New()
	terms.On("Get", mock.Anything, id).Return(nil, gorm.ErrRecordNotFound)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, fmt.Sprintf("/term/%s", id), nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}
