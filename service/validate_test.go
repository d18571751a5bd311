package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateName(t *testing.T) {
	v := newTestValidator()

	assert.NoError(t, v.ValidateName("Alice"))
	assert.NoError(t, v.ValidateName("Alice Smith"))
	assert.NoError(t, v.ValidateName("  Alice  "))

	tests := []struct {
		name  string
		input string
	}{
		{"空姓名", ""},
		{"仅空格", "   "},
		{"包含数字", "Alice123"},
		{"包含符号", "Alice-Smith"},
		{"包含中文", "Alice张"},
		{"超长", strings.Repeat("a", 256)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateName(tt.input)
			fieldErr, ok := AsFieldError(err)
			require.True(t, ok)
			assert.Equal(t, "name", fieldErr.Field)
		})
	}
}

func TestValidateEmail(t *testing.T) {
	v := newTestValidator()

	assert.NoError(t, v.ValidateEmail("alice@gmail.com"))
	assert.NoError(t, v.ValidateEmail("alice@QQ.com")) // 域名比较忽略大小写

	tests := []struct {
		name  string
		input string
	}{
		{"空邮箱", ""},
		{"缺少@", "alicegmail.com"},
		{"缺少域名", "alice@"},
		{"白名单外域名", "alice@evil-domain.com"},
		{"超长", strings.Repeat("a", 95) + "@gmail.com"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateEmail(tt.input)
			fieldErr, ok := AsFieldError(err)
			require.True(t, ok)
			assert.Equal(t, "email", fieldErr.Field)
		})
	}
}

func TestValidateTitle(t *testing.T) {
	v := newTestValidator()

	assert.NoError(t, v.ValidateTitle("Monthly Salary"))

	err := v.ValidateTitle("Rent 2024")
	fieldErr, ok := AsFieldError(err)
	require.True(t, ok)
	assert.Equal(t, "title", fieldErr.Field)
}
