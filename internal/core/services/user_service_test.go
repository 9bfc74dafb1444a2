package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/eskansoft/eskan_sales_app/internal/apperrors"
	"github.com/eskansoft/eskan_sales_app/internal/core/domain"
	portssvc "github.com/eskansoft/eskan_sales_app/internal/core/ports/services"
	"github.com/eskansoft/eskan_sales_app/internal/core/services"
	"github.com/eskansoft/eskan_sales_app/internal/dto"
	"github.com/eskansoft/eskan_sales_app/internal/utils"
)

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) ListUsers(ctx context.Context, limit int, offset int) ([]domain.User, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepository) DeactivateUser(ctx context.Context, userID string, deactivatedBy string, now time.Time) error {
	args := m.Called(ctx, userID, deactivatedBy, now)
	return args.Error(0)
}

// --- Test Suite ---
type UserServiceTestSuite struct {
	suite.Suite
	mockRepo *MockUserRepository
	service  portssvc.UserSvcFacade
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockUserRepository)
	suite.service = services.NewUserService(suite.mockRepo)
}

// --- Test Cases ---

func (suite *UserServiceTestSuite) TestCreateUser_Success() {
	ctx := context.Background()
	creatorUserID := uuid.NewString()
	req := dto.CreateUserRequest{
		Username: "Fatma.Aly",
		Name:     "Fatma Aly",
		Password: "correct horse battery",
		Role:     domain.RoleAccountant,
	}

	suite.mockRepo.On("FindUserByUsername", ctx, "fatma.aly").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SaveUser", ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.Username == "fatma.aly" &&
			u.Role == domain.RoleAccountant &&
			u.PasswordHash != "" &&
			u.PasswordHash != req.Password &&
			u.CreatedBy == creatorUserID
	})).Return(nil).Once()

	user, err := suite.service.CreateUser(ctx, req, creatorUserID)

	suite.Require().NoError(err)
	suite.Equal("fatma.aly", user.Username, "username must be lowercased")
	suite.True(utils.CheckPasswordHash(req.Password, user.PasswordHash))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestCreateUser_DuplicateUsername() {
	ctx := context.Background()
	req := dto.CreateUserRequest{
		Username: "taken",
		Name:     "Someone",
		Password: "password123",
		Role:     domain.RoleViewer,
	}

	existing := &domain.User{UserID: uuid.NewString(), Username: "taken"}
	suite.mockRepo.On("FindUserByUsername", ctx, "taken").Return(existing, nil).Once()

	user, err := suite.service.CreateUser(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.Nil(user)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveUser", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_Success() {
	ctx := context.Background()
	hash, err := utils.HashPassword("s3cret-password")
	suite.Require().NoError(err)

	stored := &domain.User{
		UserID:       uuid.NewString(),
		Username:     "omar",
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
	}
	suite.mockRepo.On("FindUserByUsername", ctx, "omar").Return(stored, nil).Once()

	user, err := suite.service.AuthenticateUser(ctx, "  Omar ", "s3cret-password")

	suite.Require().NoError(err)
	suite.Equal(stored.UserID, user.UserID)
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_WrongPassword() {
	ctx := context.Background()
	hash, err := utils.HashPassword("right-password")
	suite.Require().NoError(err)

	stored := &domain.User{UserID: uuid.NewString(), Username: "omar", PasswordHash: hash}
	suite.mockRepo.On("FindUserByUsername", ctx, "omar").Return(stored, nil).Once()

	user, err := suite.service.AuthenticateUser(ctx, "omar", "wrong-password")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound, "wrong password must look like an unknown user")
	suite.Nil(user)
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_DeactivatedUser() {
	ctx := context.Background()
	hash, err := utils.HashPassword("s3cret-password")
	suite.Require().NoError(err)

	deleted := time.Now()
	stored := &domain.User{
		UserID:       uuid.NewString(),
		Username:     "gone",
		PasswordHash: hash,
		DeletedAt:    &deleted,
	}
	suite.mockRepo.On("FindUserByUsername", ctx, "gone").Return(stored, nil).Once()

	user, err := suite.service.AuthenticateUser(ctx, "gone", "s3cret-password")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(user)
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
