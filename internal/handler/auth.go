package handler

import (
	"errors"
	"net/http"

	"screenstock/internal/apierror"
	"screenstock/internal/dto"
	"screenstock/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct{ svc service.AuthService }

func NewAuthHandler(svc service.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Login(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, apierror.New("invalid credentials"))
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
