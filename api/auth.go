package api

import (
	"errors"
	"log"
	"time"

	"budget/config"
	"budget/database"
	"budget/middleware"
	"budget/models"
	"budget/service"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthHandler 认证处理器
type AuthHandler struct {
	cfg          *config.Config
	validator    *service.Validator
	emailService *service.EmailService
}

// NewAuthHandler 创建认证处理器
func NewAuthHandler(cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		cfg:          cfg,
		validator:    service.NewValidator(cfg.Profile.AllowedEmailDomains),
		emailService: service.NewEmailService(&cfg.Email),
	}
}

// RegisterRequest 注册请求
type RegisterRequest struct {
	Name     string `json:"name" binding:"required" example:"Alice Smith"`
	Email    string `json:"email" binding:"required" example:"alice@gmail.com"`
	Password string `json:"password" binding:"required,min=8,max=50" example:"password123"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required" example:"alice@gmail.com"`
	Password string `json:"password" binding:"required" example:"password123"`
}

// LoginResponse 登录响应
type LoginResponse struct {
	Token    string      `json:"token"`
	UserInfo models.User `json:"user_info"`
}

// Register 用户注册
// @Summary 用户注册
// @Description 创建新用户账号。姓名只能包含字母和空格，邮箱域名必须在平台白名单内。
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "注册信息"
// @Success 200 {object} Response{data=models.User} "注册成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 500 {object} Response "服务器错误"
// @Router /api/v1/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	if err := h.validator.ValidateName(req.Name); err != nil {
		BadRequest(c, err.Error())
		return
	}
	if err := h.validator.ValidateEmail(req.Email); err != nil {
		BadRequest(c, err.Error())
		return
	}

	// 检查邮箱是否已被注册
	var existingUser models.User
	if err := database.DB.Where("email = ?", req.Email).First(&existingUser).Error; err == nil {
		BadRequest(c, "该邮箱已被注册")
		return
	}

	// 加密密码
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		InternalError(c, "密码加密失败")
		return
	}

	user := models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashedPassword),
	}

	if err := database.DB.Create(&user).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "创建用户失败"))
		return
	}

	// 发送验证码验证邮箱，失败不阻塞注册
	if h.cfg.Email.Enabled {
		if err := h.sendVerificationCode(user.Email, models.VerificationTypeRegister); err != nil {
			log.Printf("发送注册验证码失败: %v", err)
		}
	}

	SuccessWithMessage(c, "注册成功", user)
}

// Login 用户登录
// @Summary 用户登录
// @Description 使用邮箱和密码登录，获取 JWT token
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body LoginRequest true "登录信息"
// @Success 200 {object} Response{data=LoginResponse} "登录成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "邮箱或密码错误"
// @Router /api/v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	var user models.User
	if err := database.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		Unauthorized(c, "邮箱或密码错误")
		return
	}

	// 验证密码
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		Unauthorized(c, "邮箱或密码错误")
		return
	}

	// 生成 token
	token, err := middleware.GenerateToken(user.ID, user.Email, h.cfg.JWT.ExpireTime)
	if err != nil {
		InternalError(c, "生成 token 失败")
		return
	}

	Success(c, LoginResponse{
		Token:    token,
		UserInfo: user,
	})
}

// GetProfile 获取当前用户信息
// @Summary 获取当前用户信息
// @Tags 认证
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=models.User} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/auth/profile [get]
func (h *AuthHandler) GetProfile(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var user models.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		NotFound(c, "用户不存在")
		return
	}

	Success(c, user)
}

// SendCodeRequest 发送验证码请求
type SendCodeRequest struct {
	Email string `json:"email" binding:"required,email" example:"alice@gmail.com"`
}

// SendVerificationCode 发送邮箱验证码
// @Summary 发送邮箱验证码
// @Description 向指定邮箱发送6位验证码，用于注册验证或邮箱变更后的重新验证
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body SendCodeRequest true "邮箱"
// @Success 200 {object} Response "发送成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 500 {object} Response "发送失败"
// @Router /api/v1/auth/send-code [post]
func (h *AuthHandler) SendVerificationCode(c *gin.Context) {
	var req SendCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	var user models.User
	if err := database.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		// 不暴露邮箱是否存在
		SuccessWithMessage(c, "如果该邮箱已注册，验证码已发送", nil)
		return
	}

	verifyType := models.VerificationTypeRegister
	if user.IsEmailVerified() {
		verifyType = models.VerificationTypeReverify
	}
	if err := h.sendVerificationCode(req.Email, verifyType); err != nil {
		InternalError(c, SafeErrorMessage(err, "验证码发送失败"))
		return
	}

	SuccessWithMessage(c, "验证码已发送", nil)
}

// VerifyCodeRequest 校验验证码请求
type VerifyCodeRequest struct {
	Email string `json:"email" binding:"required,email" example:"alice@gmail.com"`
	Code  string `json:"code" binding:"required,len=6" example:"123456"`
}

// VerifyEmail 校验验证码并标记邮箱已验证
// @Summary 验证邮箱
// @Description 校验验证码，通过后设置用户邮箱验证时间
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body VerifyCodeRequest true "邮箱与验证码"
// @Success 200 {object} Response "验证成功"
// @Failure 400 {object} Response "验证码错误或已过期"
// @Router /api/v1/auth/verify-email [post]
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	var req VerifyCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	var verification models.EmailVerification
	if err := database.DB.Where("email = ? AND code = ?", req.Email, req.Code).
		Order("created_at DESC").
		First(&verification).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			BadRequest(c, "验证码错误")
			return
		}
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}

	if !verification.IsValid() {
		BadRequest(c, "验证码已过期或已使用")
		return
	}

	now := time.Now()
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&verification).Update("used", true).Error; err != nil {
			return err
		}
		return tx.Model(&models.User{}).
			Where("email = ?", req.Email).
			Update("email_verified_at", now).Error
	})
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "验证失败"))
		return
	}

	SuccessWithMessage(c, "邮箱验证成功", nil)
}

// sendVerificationCode 生成验证码并发送邮件
func (h *AuthHandler) sendVerificationCode(email, verifyType string) error {
	code, err := models.GenerateVerificationCode()
	if err != nil {
		return err
	}

	verification := models.EmailVerification{
		Email:     email,
		Code:      code,
		Type:      verifyType,
		ExpiresAt: time.Now().Add(10 * time.Minute),
	}
	if err := database.DB.Create(&verification).Error; err != nil {
		return err
	}

	return h.emailService.SendVerificationCode(email, code)
}
