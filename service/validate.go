package service

import (
	"net/mail"
	"regexp"
	"strings"

	"budget/database"
	"budget/models"
)

// namePattern 姓名/标题只允许字母和空格
var namePattern = regexp.MustCompile(`^[A-Za-z\s]+$`)

// Validator 资料字段校验器
// 邮箱域名白名单由配置注入，测试时可直接构造替换
type Validator struct {
	allowedDomains map[string]bool
}

// NewValidator 创建校验器
func NewValidator(allowedDomains []string) *Validator {
	set := make(map[string]bool, len(allowedDomains))
	for _, d := range allowedDomains {
		set[strings.ToLower(strings.TrimSpace(d))] = true
	}
	return &Validator{allowedDomains: set}
}

// ValidateName 校验姓名：非空、不超过255字符、仅字母和空格
func (v *Validator) ValidateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return NewFieldError("name", "姓名不能为空")
	}
	if len(name) > 255 {
		return NewFieldError("name", "姓名不能超过255个字符")
	}
	if !namePattern.MatchString(name) {
		return NewFieldError("name", "姓名只能包含字母和空格")
	}
	return nil
}

// ValidateTitle 校验收支记录标题，规则与姓名一致
func (v *Validator) ValidateTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return NewFieldError("title", "标题不能为空")
	}
	if len(title) > 255 {
		return NewFieldError("title", "标题不能超过255个字符")
	}
	if !namePattern.MatchString(title) {
		return NewFieldError("title", "标题只能包含字母和空格")
	}
	return nil
}

// ValidateEmail 校验邮箱：格式合法、域名在白名单内
func (v *Validator) ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return NewFieldError("email", "邮箱不能为空")
	}
	if len(email) > 100 {
		return NewFieldError("email", "邮箱不能超过100个字符")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return NewFieldError("email", "邮箱格式不正确")
	}
	at := strings.LastIndex(email, "@")
	domain := strings.ToLower(email[at+1:])
	if !v.allowedDomains[domain] {
		return NewFieldError("email", "不支持该邮箱域名，请使用常见邮箱服务商")
	}
	return nil
}

// ValidateEmailUnique 校验邮箱未被其他用户占用
// excludeUserID 为当前用户ID，允许用户提交自己现有的邮箱
func (v *Validator) ValidateEmailUnique(email string, excludeUserID uint) error {
	var count int64
	if err := database.DB.Model(&models.User{}).
		Where("email = ? AND id != ?", email, excludeUserID).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return NewFieldError("email", "该邮箱已被其他用户使用")
	}
	return nil
}
