package api

import (
	"net/http"

	"github.com/Domenick1991/airport/internal/service/users"
	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	service users.UserUseCase
	view    presenter
}

func NewUserHandler(service users.UserUseCase) *UserHandler {
	return &UserHandler{service: service}
}

// RegisterPublic mounts the endpoints that work without a token.
func (h *UserHandler) RegisterPublic(router *gin.RouterGroup) {
	router.POST("/register", h.register)
	router.POST("/token", h.token)
}

func (h *UserHandler) RegisterPrivate(router *gin.RouterGroup) {
	router.GET("/me", h.me)
	router.PUT("/me", h.updateMe)
	router.PATCH("/me", h.updateMe)
}

type registerRequest struct {
	Username string `json:"username" binding:"required,max=150"`
	Email    string `json:"email" binding:"omitempty,email"`
	Password string `json:"password" binding:"required,min=5"`
}

type tokenRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type tokenResponse struct {
	Access string `json:"access"`
}

type updateMeRequest struct {
	Username *string `json:"username" binding:"omitempty,max=150"`
	Email    *string `json:"email"`
	Password *string `json:"password" binding:"omitempty,min=5"`
}

func (h *UserHandler) register(c *gin.Context) {
	var req registerRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.service.Register(c.Request.Context(), users.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, h.view.user(*user))
}

func (h *UserHandler) token(c *gin.Context) {
	var req tokenRequest
	if !bindJSON(c, &req) {
		return
	}

	token, err := h.service.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, tokenResponse{Access: token})
}

func (h *UserHandler) me(c *gin.Context) {
	principal, ok := currentUser(c)
	if !ok {
		abortWithError(c, http.StatusUnauthorized, "not_authenticated", "authentication credentials were not provided")
		return
	}
	user, err := h.service.Me(c.Request.Context(), principal.UserID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.view.user(*user))
}

func (h *UserHandler) updateMe(c *gin.Context) {
	principal, ok := currentUser(c)
	if !ok {
		abortWithError(c, http.StatusUnauthorized, "not_authenticated", "authentication credentials were not provided")
		return
	}
	var req updateMeRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.service.UpdateMe(c.Request.Context(), principal.UserID, users.UpdateInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.view.user(*user))
}
