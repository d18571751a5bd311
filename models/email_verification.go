package models

import (
	cryptoRand "crypto/rand"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// 验证码用途
const (
	// VerificationTypeRegister 注册时验证邮箱
	VerificationTypeRegister = "register"
	// VerificationTypeReverify 邮箱变更获批后重新验证
	VerificationTypeReverify = "reverify"
)

// EmailVerification 邮箱验证码模型
type EmailVerification struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Email     string         `json:"email" gorm:"index;size:100;not null"`
	Code      string         `json:"code" gorm:"size:6;not null"` // 6位验证码
	Type      string         `json:"type" gorm:"size:20;not null;index"`
	ExpiresAt time.Time      `json:"expires_at" gorm:"not null"`
	Used      bool           `json:"used" gorm:"default:false"`
	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName 设置表名
func (EmailVerification) TableName() string {
	return "email_verifications"
}

// IsExpired 验证码是否过期
func (e *EmailVerification) IsExpired() bool {
	return time.Now().After(e.ExpiresAt)
}

// IsValid 验证码是否可用
func (e *EmailVerification) IsValid() bool {
	return !e.Used && !e.IsExpired()
}

// GenerateVerificationCode 生成6位数字验证码
func GenerateVerificationCode() (string, error) {
	bytes := make([]byte, 3)
	if _, err := randRead(bytes); err != nil {
		return "", err
	}
	code := int(bytes[0])<<16 | int(bytes[1])<<8 | int(bytes[2])
	code = code%900000 + 100000 // 确保是6位数
	return fmt.Sprintf("%06d", code), nil
}

// 便于测试替换随机源
var randRead = func(b []byte) (int, error) {
	return cryptoRand.Read(b)
}
