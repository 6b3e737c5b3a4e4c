package handler

import (
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"net/http"
	"time"

	"arka/internal/app/config"
	"arka/internal/app/ds"
	"arka/internal/app/dto"
	"arka/internal/app/mailer"
	"arka/internal/app/middleware"
	"arka/internal/app/redis"
	"arka/internal/app/role"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
	"github.com/sirupsen/logrus"
)

type AuthHandler struct {
	Repository  store
	RedisClient sessionStore
	Config      *config.Config
	Mailer      mailer.Sender
}

func NewAuthHandler(r store, redisClient sessionStore, cfg *config.Config, sender mailer.Sender) *AuthHandler {
	return &AuthHandler{
		Repository:  r,
		RedisClient: redisClient,
		Config:      cfg,
		Mailer:      sender,
	}
}

// generateHashString генерирует SHA-1 хеш из строки
func generateHashString(s string) string {
	h := sha1.New()
	h.Write([]byte(s))
	return hex.EncodeToString(h.Sum(nil))
}

// RegisterUser регистрация нового пользователя
// @Summary Регистрация пользователя
// @Description Создание аккаунта; припаркованная заявка из сессии превращается в запись
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Данные для регистрации"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/auth/register [post]
func (h *AuthHandler) RegisterUser(ctx *gin.Context) {
	var request dto.RegisterRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		h.errorHandler(ctx, http.StatusBadRequest, err)
		return
	}

	// Каждое нарушение со своим сообщением, пользователь не создаётся
	exists, err := h.Repository.UserExistsByLogin(request.Login)
	if err != nil {
		logrus.Error("Error checking login uniqueness: ", err)
		h.errorHandler(ctx, http.StatusInternalServerError, errors.New("Failed to create account"))
		return
	}
	if exists {
		h.errorHandler(ctx, http.StatusBadRequest, errors.New("Username already exists."))
		return
	}

	exists, err = h.Repository.UserExistsByEmail(request.Email)
	if err != nil {
		logrus.Error("Error checking email uniqueness: ", err)
		h.errorHandler(ctx, http.StatusInternalServerError, errors.New("Failed to create account"))
		return
	}
	if exists {
		h.errorHandler(ctx, http.StatusBadRequest, errors.New("Email already registered."))
		return
	}

	if len(request.Password) < 6 {
		h.errorHandler(ctx, http.StatusBadRequest, errors.New("Password must be at least 6 characters."))
		return
	}

	hashedPassword := generateHashString(request.Password)

	user, err := h.Repository.CreateUser(request.Login, request.Email, hashedPassword, request.FullName, false)
	if err != nil {
		logrus.Error("Error creating user: ", err)
		h.errorHandler(ctx, http.StatusInternalServerError, errors.New("Failed to create account"))
		return
	}

	accessToken, err := h.issueToken(user)
	if err != nil {
		h.errorHandler(ctx, http.StatusInternalServerError, err)
		return
	}

	// Припаркованная заявка превращается в запись ровно один раз
	drained := h.drainPendingRequest(ctx, user)

	message := "Account created successfully!"
	if drained {
		message = "Account created! Your website request has been saved."
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"status":  "success",
		"message": message,
		"user":    userToDTO(user),
		"token":   accessToken,
	})
}

// LoginUser аутентификация пользователя
// @Summary Вход в систему
// @Description Аутентификация с возвратом JWT; припаркованная заявка из сессии сохраняется
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Данные для входа"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Router /api/auth/login [post]
func (h *AuthHandler) LoginUser(ctx *gin.Context) {
	var request dto.LoginRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		h.errorHandler(ctx, http.StatusBadRequest, err)
		return
	}

	hashedPassword := generateHashString(request.Password)

	user, err := h.Repository.GetUserByLogin(request.Login)
	if err != nil || user.Password != hashedPassword {
		h.errorHandler(ctx, http.StatusUnauthorized, errors.New("Invalid username or password."))
		return
	}

	accessToken, err := h.issueToken(user)
	if err != nil {
		h.errorHandler(ctx, http.StatusInternalServerError, err)
		return
	}

	drained := h.drainPendingRequest(ctx, user)

	message := "Welcome back!"
	if drained {
		message = "Welcome back! Your website request has been saved."
	}

	ctx.JSON(http.StatusOK, gin.H{
		"status":     "success",
		"message":    message,
		"user":       userToDTO(user),
		"token":      accessToken,
		"expires_in": int(h.Config.JWT.ExpiresIn.Seconds()),
		"token_type": "Bearer",
	})
}

// LogoutUser выход пользователя из системы
// @Summary Выход из системы
// @Description Завершение сеанса с добавлением токена в blacklist
// @Tags Authentication
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/auth/logout [post]
func (h *AuthHandler) LogoutUser(ctx *gin.Context) {
	// Получение токена из заголовка
	tokenString := ctx.GetHeader("Authorization")
	if tokenString == "" {
		h.errorHandler(ctx, http.StatusUnauthorized, errors.New("authorization header missing"))
		return
	}

	// Удаление префикса "Bearer "
	if len(tokenString) > 7 && tokenString[:7] == "Bearer " {
		tokenString = tokenString[7:]
	}

	// Парсинг токена для получения TTL
	token, err := jwt.ParseWithClaims(tokenString, &ds.JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(h.Config.JWT.Token), nil
	})

	if err != nil {
		h.errorHandler(ctx, http.StatusUnauthorized, err)
		return
	}

	claims, ok := token.Claims.(*ds.JWTClaims)
	if !ok {
		h.errorHandler(ctx, http.StatusUnauthorized, errors.New("invalid token claims"))
		return
	}

	// Вычисление TTL до истечения токена
	ttl := time.Until(time.Unix(claims.ExpiresAt, 0))
	if ttl <= 0 {
		// Токен уже истек
		ctx.JSON(http.StatusOK, gin.H{
			"status":  "success",
			"message": "You have been logged out.",
		})
		return
	}

	// Добавление токена в blacklist
	err = h.RedisClient.WriteJWTToBlacklist(ctx.Request.Context(), tokenString, ttl)
	if err != nil {
		h.errorHandler(ctx, http.StatusInternalServerError, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "You have been logged out.",
	})
}

// GetUserProfile получение профиля пользователя
// @Summary Получение профиля пользователя
// @Description Возвращает информацию о текущем пользователе
// @Tags Authentication
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/auth/profile [get]
func (h *AuthHandler) GetUserProfile(ctx *gin.Context) {
	userID, exists := ctx.Get("userID")
	if !exists {
		h.errorHandler(ctx, http.StatusUnauthorized, errors.New("user not authenticated"))
		return
	}

	id, ok := userID.(uint)
	if !ok {
		h.errorHandler(ctx, http.StatusUnauthorized, errors.New("invalid user ID"))
		return
	}

	user, err := h.Repository.GetUserByID(id)
	if err != nil {
		h.errorHandler(ctx, http.StatusNotFound, errors.New("user not found"))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"status": "success",
		"user":   userToDTO(user),
	})
}

// issueToken подписывает JWT для пользователя
func (h *AuthHandler) issueToken(user *ds.User) (string, error) {
	userRole := role.Client
	if user.IsAdmin {
		userRole = role.Admin
	}

	now := time.Now()
	token := jwt.NewWithClaims(h.Config.JWT.SigningMethod, ds.JWTClaims{
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: now.Add(h.Config.JWT.ExpiresIn).Unix(),
			IssuedAt:  now.Unix(),
			Issuer:    "arka-backend",
		},
		UserID: user.ID,
		Role:   userRole,
	})

	return token.SignedString([]byte(h.Config.JWT.Token))
}

// drainPendingRequest сохраняет припаркованную заявку после авторизации.
// Pop, не peek: вторая авторизация без новой формы ничего не создаст.
func (h *AuthHandler) drainPendingRequest(ctx *gin.Context, user *ds.User) bool {
	sid := middleware.SessionID(ctx)
	if sid == "" {
		return false
	}

	pending, err := h.RedisClient.PopPendingRequest(ctx.Request.Context(), sid)
	if err != nil {
		if !errors.Is(err, redis.ErrNoPendingRequest) {
			logrus.Error("Error popping pending request: ", err)
		}
		return false
	}

	var budget *string
	if pending.Budget != "" {
		budget = &pending.Budget
	}

	request, err := h.Repository.CreateRequest(&user.ID,
		pending.BusinessName, pending.WebsiteType, pending.Email, pending.Description, budget)
	if err != nil {
		logrus.Error("Error creating request from pending data: ", err)
		return false
	}

	middleware.ClearSession(ctx)

	// Те же два письма, что и при прямой подаче
	h.sendRequestEmails(request)

	return true
}

func (h *AuthHandler) sendRequestEmails(request *ds.WebsiteRequest) {
	budget := ""
	if request.Budget != nil {
		budget = *request.Budget
	}

	subject, body := mailer.BuildNewRequestEmail(
		request.BusinessName, request.Email, request.WebsiteType,
		request.Description, budget, true, time.Now())
	if err := h.Mailer.Send(h.Config.AdminEmail, subject, body); err != nil {
		logrus.Errorf("admin notification email failed: %v", err)
	}

	subject, body = mailer.BuildConfirmationEmail(request.BusinessName, request.Email)
	if err := h.Mailer.Send(request.Email, subject, body); err != nil {
		logrus.Errorf("confirmation email to %s failed: %v", request.Email, err)
	}
}

func userToDTO(user *ds.User) dto.UserResponse {
	return dto.UserResponse{
		ID:       user.ID,
		Login:    user.Login,
		Email:    user.Email,
		FullName: user.FullName,
		IsAdmin:  user.IsAdmin,
	}
}

// errorHandler централизованная обработка ошибок
func (h *AuthHandler) errorHandler(ctx *gin.Context, errorStatusCode int, err error) {
	logrus.Error(err.Error())
	ctx.JSON(errorStatusCode, gin.H{
		"status":      "error",
		"description": err.Error(),
	})
}
