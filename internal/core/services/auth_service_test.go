package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/zamzamtravels/erp_backend/internal/apperrors"
	"github.com/zamzamtravels/erp_backend/internal/core/domain"
	portssvc "github.com/zamzamtravels/erp_backend/internal/core/ports/services"
	"github.com/zamzamtravels/erp_backend/internal/core/services"
	"github.com/zamzamtravels/erp_backend/internal/utils"
)

const testJWTSecret = "test-secret"

type AuthServiceTestSuite struct {
	suite.Suite
	mockUserRepo *MockUserRepository
	service      portssvc.AuthSvcFacade
	user         domain.User
}

func (suite *AuthServiceTestSuite) SetupTest() {
	suite.mockUserRepo = new(MockUserRepository)
	suite.service = services.NewAuthService(suite.mockUserRepo, testJWTSecret, time.Hour, "erp-backend")

	hash, err := utils.HashPassword("correct-horse")
	suite.Require().NoError(err)
	suite.user = domain.User{
		UserID:       uuid.NewString(),
		Username:     "accountant",
		Name:         "Head Accountant",
		PasswordHash: hash,
		IsActive:     true,
	}
}

func (suite *AuthServiceTestSuite) TestLogin_Success() {
	ctx := context.Background()
	suite.mockUserRepo.On("FindUserByUsername", ctx, "accountant").Return(&suite.user, nil).Once()

	resp, err := suite.service.Login(ctx, "accountant", "correct-horse")

	suite.Require().NoError(err)
	suite.Equal(suite.user.UserID, resp.UserID)
	suite.NotEmpty(resp.Token)

	token, err := jwt.ParseWithClaims(resp.Token, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(testJWTSecret), nil
	})
	suite.Require().NoError(err)
	claims := token.Claims.(*jwt.RegisteredClaims)
	suite.Equal(suite.user.UserID, claims.Subject)
	suite.Equal("erp-backend", claims.Issuer)
}

func (suite *AuthServiceTestSuite) TestLogin_WrongPassword() {
	ctx := context.Background()
	suite.mockUserRepo.On("FindUserByUsername", ctx, "accountant").Return(&suite.user, nil).Once()

	_, err := suite.service.Login(ctx, "accountant", "wrong")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *AuthServiceTestSuite) TestLogin_UnknownUserSameError() {
	ctx := context.Background()
	suite.mockUserRepo.On("FindUserByUsername", ctx, "ghost").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.Login(ctx, "ghost", "whatever")

	suite.Require().Error(err)
	// unknown user and bad password are indistinguishable to the client
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *AuthServiceTestSuite) TestLogin_InactiveUserRejected() {
	ctx := context.Background()
	inactive := suite.user
	inactive.IsActive = false
	suite.mockUserRepo.On("FindUserByUsername", ctx, "accountant").Return(&inactive, nil).Once()

	_, err := suite.service.Login(ctx, "accountant", "correct-horse")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func TestAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}
