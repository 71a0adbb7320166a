package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/tcworkshop/estimator/internal/domain/models"
	"github.com/tcworkshop/estimator/internal/service/intake"
)

type MockIntakeService struct {
	mock.Mock
}

func (m *MockIntakeService) NextLotNumber(ctx context.Context, division string) (string, error) {
	args := m.Called(ctx, division)
	return args.String(0), args.Error(1)
}

func (m *MockIntakeService) CreateLot(ctx context.Context, lot models.Lot) error {
	args := m.Called(ctx, lot)
	return args.Error(0)
}

func (m *MockIntakeService) FindBySerial(ctx context.Context, serialNo string) (models.TransformerRecord, error) {
	args := m.Called(ctx, serialNo)
	return args.Get(0).(models.TransformerRecord), args.Error(1)
}

func (m *MockIntakeService) SavePhysical(ctx context.Context, serialNo string, form models.PhysicalInspection) error {
	args := m.Called(ctx, serialNo, form)
	return args.Error(0)
}

func (m *MockIntakeService) SaveInternal(ctx context.Context, serialNo string, form models.InternalInspection) error {
	args := m.Called(ctx, serialNo, form)
	return args.Error(0)
}

func (m *MockIntakeService) SaveTesting(ctx context.Context, serialNo string, form models.TestingReport) error {
	args := m.Called(ctx, serialNo, form)
	return args.Error(0)
}

func newIntakeRouter(svc IntakeService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewIntakeHandler(svc, zap.NewNop())
	r.GET("/lots/next-number", h.NextLotNumber)
	r.POST("/lots", h.CreateLot)
	r.GET("/transformers/:serialNo", h.Lookup)
	r.POST("/transformers/:serialNo/physical", h.SavePhysical)
	return r
}

func TestNextLotNumberEndpoint(t *testing.T) {
	svc := new(MockIntakeService)
	svc.On("NextLotNumber", mock.Anything, "NORTH").Return("N12", nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/lots/next-number?division=NORTH", nil)
	newIntakeRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"lotNo":"N12"`)
}

func TestNextLotNumberMissingDivision(t *testing.T) {
	svc := new(MockIntakeService)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/lots/next-number", nil)
	newIntakeRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "NextLotNumber", mock.Anything, mock.Anything)
}

func TestCreateLotEndpoint(t *testing.T) {
	svc := new(MockIntakeService)
	svc.On("CreateLot", mock.Anything, mock.MatchedBy(func(lot models.Lot) bool {
		return lot.LotNo == "N5" && len(lot.Units) == 1
	})).Return(nil)

	body := `{"division":"NORTH","mrNo":"MR-1","lotNo":"N5","units":[{"serialNo":"TC-1","jobNo":"J-1"}]}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/lots", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	newIntakeRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	svc.AssertExpectations(t)
}

func TestCreateLotRejectsEmptyUnits(t *testing.T) {
	svc := new(MockIntakeService)

	body := `{"division":"NORTH","mrNo":"MR-1","lotNo":"N5","units":[]}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/lots", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	newIntakeRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "CreateLot", mock.Anything, mock.Anything)
}

func TestSavePhysicalEndpoint(t *testing.T) {
	svc := new(MockIntakeService)
	svc.On("SavePhysical", mock.Anything, "TC-1", mock.MatchedBy(func(form models.PhysicalInspection) bool {
		return form.HTBushing == "2"
	})).Return(nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/transformers/TC-1/physical", strings.NewReader(`{"htBushing":"2"}`))
	req.Header.Set("Content-Type", "application/json")
	newIntakeRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

func TestLookupUnknownSerial(t *testing.T) {
	svc := new(MockIntakeService)
	svc.On("FindBySerial", mock.Anything, "TC-404").
		Return(models.TransformerRecord{}, intake.ErrTransformerNotFound)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/transformers/TC-404", nil)
	newIntakeRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
