package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/covenantlab/contract-platform/internal/usecase"
)

// AccountHandler exposes signup and login for the users resource.
type AccountHandler struct {
	accounts *usecase.AccountService
}

// NewAccountHandler builds a new account handler instance.
func NewAccountHandler(accounts *usecase.AccountService) *AccountHandler {
	return &AccountHandler{accounts: accounts}
}

// SignUp registers a new account and returns the sanitized user.
func (h *AccountHandler) SignUp(c *gin.Context) {
	var req SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, err.Error()))
		return
	}

	user, err := h.accounts.SignUp(c.Request.Context(), usecase.SignUpInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: usecase.ErrUserExists, Status: http.StatusConflict, Message: "User already exist"},
		}, http.StatusInternalServerError, "failed to sign up")
		return
	}

	c.JSON(http.StatusCreated, Sanitize(user))
}

// Login verifies credentials and returns the user with a session token.
func (h *AccountHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, err.Error()))
		return
	}

	result, err := h.accounts.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: usecase.ErrUnknownEmail, Status: http.StatusNotFound, Message: "User not found"},
			{Err: usecase.ErrPasswordNotSet, Status: http.StatusBadRequest, Message: "Password not set"},
			{Err: usecase.ErrInvalidCredentials, Status: http.StatusUnauthorized, Message: "Invalid credentials"},
		}, http.StatusInternalServerError, "failed to log in")
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		User:  Sanitize(result.User),
		Token: result.Token,
	})
}
