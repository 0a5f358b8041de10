package v1

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"chirp/api/v1/request"
	"chirp/config"
	"chirp/internal/auth"
	"chirp/internal/metrics"
	"chirp/internal/render"
	"chirp/model"
	"chirp/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// UserAPI exposes HTTP handlers for registration/login/logout flows and the
// user profile document.
type UserAPI struct {
	service  *service.UserService
	renderer *render.Renderer
}

// NewUserAPI wires the service layer and renderer into the HTTP handlers.
func NewUserAPI(s *service.UserService, r *render.Renderer) *UserAPI {
	return &UserAPI{service: s, renderer: r}
}

// Register handles new account creation.
func (u *UserAPI) Register(c *gin.Context) {
	var req request.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	birthdate, err := time.Parse("2006-01-02", req.Birthdate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid birthdate"})
		return
	}
	err = u.service.Register(&model.User{
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Birthdate:   birthdate,
		Website:     req.Website,
		UserName:    req.UserName,
		Place:       req.Place,
		Description: req.Description,
	}, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrUserExists) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "user already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "registered"})
}

// Login validates user credentials and returns a new token pair.
func (u *UserAPI) Login(c *gin.Context) {
	var req request.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		metrics.IncLogin("bad_request")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	device := c.GetHeader("X-Device")
	access, refresh, err := u.service.Login(req.Email, req.Password, device)
	if err != nil {
		metrics.IncLogin("unauthorized")
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	metrics.IncLogin("success")
	c.JSON(http.StatusOK, gin.H{
		"access_token":  access,
		"refresh_token": refresh,
	})
}

// Get serves the full-profile user document.
func (u *UserAPI) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}
	user, err := u.service.GetProfile(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, u.renderer.RenderUser(user, render.FullProfile))
}

// RefreshToken 验证 refresh token，执行 rotation 并返回新的 token 对。
func (u *UserAPI) RefreshToken(c *gin.Context) {
	var req request.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		metrics.IncRefresh("bad_request")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	device := c.GetHeader("X-Device")
	access, refresh, err := u.service.RotateRefreshToken(req.RefreshToken, device)
	if err != nil {
		metrics.IncRefresh("unauthorized")
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	metrics.IncRefresh("success")
	c.JSON(http.StatusOK, gin.H{
		"access_token":  access,
		"refresh_token": refresh,
	})
}

// Logout 支持使用 Access Token 或 Refresh Token 注销
func (u *UserAPI) Logout(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		metrics.IncLogout("bad_request")
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing token"})
		return
	}
	tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

	// 情况 1：Authorization 携带 Access Token，直接将其列入黑名单并删除对应 refresh。
	claims, err := auth.ParseToken(tokenStr)
	if err == nil {
		if err := u.service.Session.AddBlackList(tokenStr,
			time.Duration(config.GlobalConfig.JWT.AccessExpire)*time.Second); err != nil {
			metrics.IncLogout("internal_error")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "blacklist failed"})
			return
		}
		_ = u.service.Session.DeleteRefreshToken(claims.UserID, claims.Device)

		metrics.IncLogout("success")
		c.JSON(http.StatusOK, gin.H{"message": "logout success"})
		return
	}

	// 情况 2：token 不是 Access（或 access 已失效），改用宽松解析，把它视为 Refresh Token。
	claims, err = auth.ParseTokenAllowExpired(tokenStr)
	if err != nil {
		metrics.IncLogout("invalid_token")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}

	// 验证此 refresh 与 Redis 中存的是否一致
	stored, err := u.service.Session.GetRefreshToken(claims.UserID, claims.Device)
	if err != nil || stored == "" || stored != tokenStr {
		metrics.IncLogout("refresh_mismatch")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "refresh invalid or expired"})
		return
	}

	// 把 refresh 加入黑名单（防止重放）
	if err := u.service.Session.AddBlackList(tokenStr,
		time.Duration(config.GlobalConfig.JWT.RefreshExpire)*time.Second); err != nil {
		metrics.IncLogout("internal_error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "blacklist failed"})
		return
	}

	if err := u.service.Session.DeleteRefreshToken(claims.UserID, claims.Device); err != nil {
		// log 但仍视为成功
	}

	metrics.IncLogout("success")
	c.JSON(http.StatusOK, gin.H{"message": "logout success"})
}
