package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"clindex/internal/domain"
	"clindex/internal/service"
	"clindex/mocks"
)

func TestUserService_Create_Success(t *testing.T) {
	repo := new(mocks.MockUserRepo)
	svc := service.NewUserService(repo)

	repo.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.Email == "new@test.com" && u.Role == domain.RoleMember && u.IsActive
	})).Return(nil)

	user, err := svc.Create(context.Background(), service.CreateUserInput{
		Email:    "new@test.com",
		Password: "password123",
		FullName: "New User",
		Role:     domain.RoleMember,
	})

	assert.NoError(t, err)
	assert.Equal(t, "New User", user.FullName)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("password123")))
	repo.AssertExpectations(t)
}

func TestUserService_Create_InvalidRole(t *testing.T) {
	repo := new(mocks.MockUserRepo)
	svc := service.NewUserService(repo)

	user, err := svc.Create(context.Background(), service.CreateUserInput{
		Email:    "new@test.com",
		Password: "password123",
		FullName: "New User",
		Role:     domain.UserRole("superuser"),
	})

	assert.Nil(t, user)
	assert.ErrorIs(t, err, domain.ErrInsufficientRole)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUserService_Update_PatchesFields(t *testing.T) {
	repo := new(mocks.MockUserRepo)
	svc := service.NewUserService(repo)

	userID := uuid.New()
	existing := &domain.User{
		ID:       userID,
		Email:    "old@test.com",
		FullName: "Old Name",
		Role:     domain.RoleMember,
		IsActive: true,
	}

	repo.On("GetByID", mock.Anything, userID).Return(existing, nil)
	repo.On("Update", mock.Anything, mock.Anything).Return(nil)

	newName := "New Name"
	inactive := false
	user, err := svc.Update(context.Background(), userID, service.UpdateUserInput{
		FullName: &newName,
		IsActive: &inactive,
	})

	assert.NoError(t, err)
	assert.Equal(t, "New Name", user.FullName)
	assert.Equal(t, "old@test.com", user.Email)
	assert.False(t, user.IsActive)
}

func TestUserService_Update_InvalidRole(t *testing.T) {
	repo := new(mocks.MockUserRepo)
	svc := service.NewUserService(repo)

	userID := uuid.New()
	existing := &domain.User{ID: userID, Email: "user@test.com", Role: domain.RoleMember, IsActive: true}
	repo.On("GetByID", mock.Anything, userID).Return(existing, nil)

	badRole := domain.UserRole("root")
	user, err := svc.Update(context.Background(), userID, service.UpdateUserInput{Role: &badRole})

	assert.Nil(t, user)
	assert.ErrorIs(t, err, domain.ErrInsufficientRole)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUserService_Update_NotFound(t *testing.T) {
	repo := new(mocks.MockUserRepo)
	svc := service.NewUserService(repo)

	userID := uuid.New()
	repo.On("GetByID", mock.Anything, userID).Return(nil, domain.ErrNotFound)

	user, err := svc.Update(context.Background(), userID, service.UpdateUserInput{})

	assert.Nil(t, user)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUserService_Delete(t *testing.T) {
	repo := new(mocks.MockUserRepo)
	svc := service.NewUserService(repo)

	userID := uuid.New()
	repo.On("Delete", mock.Anything, userID).Return(nil)

	assert.NoError(t, svc.Delete(context.Background(), userID))
	repo.AssertExpectations(t)
}
