package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"clindex/internal/domain"
	"clindex/internal/handler"
	"clindex/internal/service"
	"clindex/mocks"
)

func TestUserHandler_Create_Success(t *testing.T) {
	mockSvc := new(mocks.MockUserService)
	h := handler.NewUserHandler(mockSvc)

	expected := &domain.User{
		ID:       uuid.New(),
		Email:    "new@test.com",
		FullName: "New User",
		Role:     domain.RoleMember,
		IsActive: true,
	}

	mockSvc.On("Create", mock.Anything, service.CreateUserInput{
		Email:    "new@test.com",
		Password: "password123",
		FullName: "New User",
		Role:     domain.RoleMember,
	}).Return(expected, nil)

	body, _ := json.Marshal(map[string]string{
		"email":     "new@test.com",
		"password":  "password123",
		"full_name": "New User",
		"role":      "member",
	})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/users", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestUserHandler_Create_ShortPassword(t *testing.T) {
	mockSvc := new(mocks.MockUserService)
	h := handler.NewUserHandler(mockSvc)

	body, _ := json.Marshal(map[string]string{
		"email":     "new@test.com",
		"password":  "short",
		"full_name": "New User",
		"role":      "member",
	})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/users", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockSvc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUserHandler_Create_DuplicateEmail(t *testing.T) {
	mockSvc := new(mocks.MockUserService)
	h := handler.NewUserHandler(mockSvc)

	mockSvc.On("Create", mock.Anything, mock.AnythingOfType("service.CreateUserInput")).
		Return(nil, domain.ErrDuplicateEmail)

	body, _ := json.Marshal(map[string]string{
		"email":     "taken@test.com",
		"password":  "password123",
		"full_name": "Dup User",
		"role":      "member",
	})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/users", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Create(c)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestUserHandler_GetMe_Success(t *testing.T) {
	mockSvc := new(mocks.MockUserService)
	h := handler.NewUserHandler(mockSvc)

	userID := uuid.New()
	user := &domain.User{ID: userID, Email: "user@test.com", Role: domain.RoleMember}
	mockSvc.On("GetByID", mock.Anything, userID).Return(user, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/users/me", http.NoBody)
	setAuthContext(c, userID, "member")

	h.GetMe(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "user@test.com")
}

func TestUserHandler_GetMe_NoAuth(t *testing.T) {
	mockSvc := new(mocks.MockUserService)
	h := handler.NewUserHandler(mockSvc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/users/me", http.NoBody)

	h.GetMe(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUserHandler_Update_Success(t *testing.T) {
	mockSvc := new(mocks.MockUserService)
	h := handler.NewUserHandler(mockSvc)

	userID := uuid.New()
	updated := &domain.User{ID: userID, Email: "user@test.com", FullName: "Renamed", Role: domain.RoleMember}

	mockSvc.On("Update", mock.Anything, userID, mock.MatchedBy(func(input service.UpdateUserInput) bool {
		return input.FullName != nil && *input.FullName == "Renamed"
	})).Return(updated, nil)

	body, _ := json.Marshal(map[string]string{"full_name": "Renamed"})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPut, "/api/v1/users/"+userID.String(), bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: userID.String()}}

	h.Update(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestUserHandler_Delete_NotFound(t *testing.T) {
	mockSvc := new(mocks.MockUserService)
	h := handler.NewUserHandler(mockSvc)

	userID := uuid.New()
	mockSvc.On("Delete", mock.Anything, userID).Return(domain.ErrNotFound)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodDelete, "/api/v1/users/"+userID.String(), http.NoBody)
	c.Params = gin.Params{{Key: "id", Value: userID.String()}}

	h.Delete(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
