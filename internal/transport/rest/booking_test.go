package rest

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"chalkup/internal/domain"
	"chalkup/internal/service"
)

type fakeMatchingService struct {
	result *domain.MatchResult
	err    error
}

func (s *fakeMatchingService) FindCandidateTutors(context.Context, domain.MatchRequestDTO) ([]domain.User, error) {
	return nil, s.err
}

func (s *fakeMatchingService) MatchTutorForWindow(context.Context, domain.MatchRequestDTO) (*domain.MatchResult, error) {
	return s.result, s.err
}

func (s *fakeMatchingService) CandidateCalendar(context.Context, domain.CandidateCalendarDTO) (map[string][]string, error) {
	return nil, s.err
}

const matchWindowBody = `{
	"day": "2025-04-15",
	"start_time": "9:00 AM",
	"end_time": "10:00 AM",
	"subject": "Math",
	"grade": "10",
	"specialization": "Algebra",
	"mode": "online",
	"price_range": {"min": 30, "max": 50}
}`

func performMatchWindow(matching *fakeMatchingService) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)

	h := &Handler{
		services: &service.Services{Matching: matching},
		logger:   zap.NewNop(),
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/matching/window", strings.NewReader(matchWindowBody))
	c.Request.Header.Set("Content-Type", "application/json")

	h.matchTutorForWindow(c)
	return w
}

func TestMatchTutorForWindowStatusCodes(t *testing.T) {
	// Подобранный тьютор отдается как 200.
	w := performMatchWindow(&fakeMatchingService{result: &domain.MatchResult{TutorID: "tutor-1"}})
	assert.Equal(t, http.StatusOK, w.Code)

	// Пустой подбор и сбой хранилища различимы для клиента.
	w = performMatchWindow(&fakeMatchingService{err: domain.ErrNoAvailabilityData})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = performMatchWindow(&fakeMatchingService{err: errors.New("ошибка при поиске тьюторов")})
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	w = performMatchWindow(&fakeMatchingService{err: domain.ErrMalformedRange})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
