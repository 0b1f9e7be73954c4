package handlers

import (
	"net/http"

	"shoestore/internal/dto"
	"shoestore/internal/middleware"
	"shoestore/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthHandler struct {
	accounts service.AccountService
	log      *zap.Logger
}

func NewAuthHandler(accounts service.AccountService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{accounts: accounts, log: log}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("invalid request body", nil))
		return
	}

	res, err := h.accounts.Register(c.Request.Context(), service.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, dto.AuthResponse{
		AccessToken: res.AccessToken,
		ExpiresAt:   res.ExpiresAt,
		User:        dto.ToUserResponse(res.User),
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("invalid request body", nil))
		return
	}

	// The guest cookie rides along so the anonymous cart can fold
	// into the account being logged into.
	guestID, _ := c.Cookie(middleware.GuestCookie)

	res, err := h.accounts.Login(c.Request.Context(), service.LoginInput{
		Email:          req.Email,
		Password:       req.Password,
		GuestSessionID: guestID,
	})
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.AuthResponse{
		AccessToken: res.AccessToken,
		ExpiresAt:   res.ExpiresAt,
		User:        dto.ToUserResponse(res.User),
	})
}

func (h *AuthHandler) Me(c *gin.Context) {
	u, err := h.accounts.Me(c.Request.Context())
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(u))
}
