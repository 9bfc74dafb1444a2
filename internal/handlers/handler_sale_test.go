package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/eskansoft/eskan_sales_app/internal/apperrors"
	"github.com/eskansoft/eskan_sales_app/internal/core/domain"
	portssvc "github.com/eskansoft/eskan_sales_app/internal/core/ports/services"
	"github.com/eskansoft/eskan_sales_app/internal/dto"
	"github.com/eskansoft/eskan_sales_app/internal/handlers"
	"github.com/eskansoft/eskan_sales_app/pkg/config"
)

// --- Mock SaleService ---
type MockSaleService struct {
	mock.Mock
}

func (m *MockSaleService) CreateSale(ctx context.Context, req dto.CreateSaleRequest, creatorUserID string) (*domain.Sale, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Sale), args.Error(1)
}

func (m *MockSaleService) UpdateSale(ctx context.Context, saleID string, req dto.UpdateSaleRequest, updaterUserID string) (*domain.Sale, error) {
	args := m.Called(ctx, saleID, req, updaterUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Sale), args.Error(1)
}

func (m *MockSaleService) DeleteSale(ctx context.Context, saleID string, deleterUserID string) error {
	args := m.Called(ctx, saleID, deleterUserID)
	return args.Error(0)
}

func (m *MockSaleService) GetSaleByID(ctx context.Context, saleID string) (*domain.Sale, error) {
	args := m.Called(ctx, saleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Sale), args.Error(1)
}

func (m *MockSaleService) ListSales(ctx context.Context, limit int, offset int) ([]domain.Sale, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Sale), args.Error(1)
}

func (m *MockSaleService) PreviewCalculation(ctx context.Context, req dto.PreviewRequest) (*domain.AmountSet, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AmountSet), args.Error(1)
}

var _ portssvc.SaleSvcFacade = (*MockSaleService)(nil)

// --- Test Suite ---
type SaleHandlerTestSuite struct {
	suite.Suite
	router          *gin.Engine
	mockSaleService *MockSaleService
	jwtSecret       string
}

func (suite *SaleHandlerTestSuite) generateTestToken(userID string, role domain.Role) string {
	claims := struct {
		jwt.RegisteredClaims
		Role string `json:"role"`
	}{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "eskan-test",
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		Role: string(role),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *SaleHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	dto.RegisterCustomValidations()

	suite.mockSaleService = new(MockSaleService)

	cfg := &config.Config{JWTSecret: suite.jwtSecret}
	services := &portssvc.ServiceContainer{Sale: suite.mockSaleService}
	handlers.RegisterRoutes(suite.router, cfg, services)
}

func (suite *SaleHandlerTestSuite) doJSON(method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	suite.router.ServeHTTP(rec, req)
	return rec
}

// --- Test Cases ---

func (suite *SaleHandlerTestSuite) TestCreateSale_Success() {
	userID := uuid.NewString()
	token := suite.generateTestToken(userID, domain.RoleAccountant)

	body := dto.CreateSaleRequest{
		ClientName:   "Ahmed Hassan",
		SaleDate:     "2026-03-15",
		UnitCode:     "B2-104",
		UnitPrice:    decimal.NewFromInt(1000000),
		PropertyType: "apartment",
	}

	created := &domain.Sale{
		SaleID:       uuid.NewString(),
		ClientName:   body.ClientName,
		SaleDate:     time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		UnitCode:     body.UnitCode,
		UnitPrice:    body.UnitPrice,
		PropertyType: body.PropertyType,
	}
	created.Amounts.NetCompanyIncome = decimal.RequireFromString("29250.00")

	suite.mockSaleService.On("CreateSale", mock.Anything, mock.MatchedBy(func(req dto.CreateSaleRequest) bool {
		return req.UnitCode == body.UnitCode && req.UnitPrice.Equal(body.UnitPrice)
	}), userID).Return(created, nil).Once()

	rec := suite.doJSON(http.MethodPost, "/api/v1/sales", token, body)

	suite.Equal(http.StatusCreated, rec.Code)
	var resp dto.SaleResponse
	suite.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	suite.Equal(created.SaleID, resp.SaleID)
	suite.Equal("2026-03-15", resp.SaleDate)
	suite.mockSaleService.AssertExpectations(suite.T())
}

func (suite *SaleHandlerTestSuite) TestCreateSale_ViewerForbidden() {
	token := suite.generateTestToken(uuid.NewString(), domain.RoleViewer)

	rec := suite.doJSON(http.MethodPost, "/api/v1/sales", token, dto.CreateSaleRequest{
		ClientName:   "Ahmed Hassan",
		SaleDate:     "2026-03-15",
		UnitCode:     "B2-104",
		UnitPrice:    decimal.NewFromInt(1000000),
		PropertyType: "apartment",
	})

	suite.Equal(http.StatusForbidden, rec.Code)
	suite.mockSaleService.AssertNotCalled(suite.T(), "CreateSale", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *SaleHandlerTestSuite) TestCreateSale_Unauthenticated() {
	rec := suite.doJSON(http.MethodPost, "/api/v1/sales", "", dto.CreateSaleRequest{})
	suite.Equal(http.StatusUnauthorized, rec.Code)
}

func (suite *SaleHandlerTestSuite) TestCreateSale_DuplicateUnitCodeConflict() {
	userID := uuid.NewString()
	token := suite.generateTestToken(userID, domain.RoleAccountant)

	suite.mockSaleService.On("CreateSale", mock.Anything, mock.Anything, userID).
		Return(nil, apperrors.ErrDuplicateUnitCode).Once()

	rec := suite.doJSON(http.MethodPost, "/api/v1/sales", token, dto.CreateSaleRequest{
		ClientName:   "Ahmed Hassan",
		SaleDate:     "2026-03-15",
		UnitCode:     "B2-104",
		UnitPrice:    decimal.NewFromInt(1000000),
		PropertyType: "apartment",
	})

	suite.Equal(http.StatusConflict, rec.Code)
}

func (suite *SaleHandlerTestSuite) TestPreviewCalculation_ViewerAllowed() {
	token := suite.generateTestToken(uuid.NewString(), domain.RoleViewer)

	amounts := &domain.AmountSet{
		CompanyCommissionAmount: decimal.RequireFromString("50000.00"),
		NetCompanyIncome:        decimal.RequireFromString("29250.00"),
	}
	suite.mockSaleService.On("PreviewCalculation", mock.Anything, mock.MatchedBy(func(req dto.PreviewRequest) bool {
		return req.RatesArePercent && req.PropertyType == "apartment"
	})).Return(amounts, nil).Once()

	rec := suite.doJSON(http.MethodPost, "/api/v1/sales/preview", token, dto.PreviewRequest{
		UnitPrice:       decimal.NewFromInt(1000000),
		PropertyType:    "apartment",
		RatesArePercent: true,
	})

	suite.Equal(http.StatusOK, rec.Code)
	suite.mockSaleService.AssertExpectations(suite.T())
}

func (suite *SaleHandlerTestSuite) TestGetSale_NotFound() {
	token := suite.generateTestToken(uuid.NewString(), domain.RoleViewer)
	saleID := uuid.NewString()

	suite.mockSaleService.On("GetSaleByID", mock.Anything, saleID).
		Return(nil, apperrors.ErrNotFound).Once()

	rec := suite.doJSON(http.MethodGet, "/api/v1/sales/"+saleID, token, nil)

	suite.Equal(http.StatusNotFound, rec.Code)
}

func TestSaleHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(SaleHandlerTestSuite))
}
