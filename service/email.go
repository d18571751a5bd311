package service

import (
	"fmt"

	"budget/config"

	"gopkg.in/gomail.v2"
)

// EmailService 邮件服务
type EmailService struct {
	cfg *config.EmailConfig
}

// NewEmailService 创建邮件服务
func NewEmailService(cfg *config.EmailConfig) *EmailService {
	return &EmailService{cfg: cfg}
}

// SendVerificationCode 发送邮箱验证码
// 用于注册验证以及邮箱变更获批后的重新验证
func (s *EmailService) SendVerificationCode(toEmail, code string) error {
	if !s.cfg.Enabled {
		return fmt.Errorf("邮件服务未启用，请配置 BUDGET_EMAIL_ENABLED=true")
	}

	subject := "【记账平台】邮箱验证码"
	body := s.generateCodeEmailBody(code)

	return s.sendEmail(toEmail, subject, body)
}

// generateCodeEmailBody 生成验证码邮件内容
func (s *EmailService) generateCodeEmailBody(code string) string {
	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
        body { font-family: Arial, sans-serif; background: #f5f5f5; margin: 0; padding: 20px; }
        .container { max-width: 600px; margin: 0 auto; background: #fff; border-radius: 12px; overflow: hidden; box-shadow: 0 4px 20px rgba(0,0,0,0.1); }
        .header { background: linear-gradient(135deg, #10b981, #059669); color: white; padding: 30px; text-align: center; }
        .header h1 { margin: 0; font-size: 24px; }
        .content { padding: 40px 30px; }
        .content p { color: #333; line-height: 1.8; margin: 0 0 20px; }
        .code { font-size: 32px; font-weight: bold; letter-spacing: 8px; color: #059669; text-align: center; margin: 30px 0; }
        .warning { background: #fff3cd; border-left: 4px solid #ffc107; padding: 15px; margin: 20px 0; border-radius: 4px; }
        .warning p { margin: 0; color: #856404; font-size: 14px; }
        .footer { background: #f8f9fa; padding: 20px 30px; text-align: center; color: #6c757d; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>💰 记账平台</h1>
        </div>
        <div class="content">
            <p>您好！您的邮箱验证码为：</p>
            <p class="code">%s</p>
            <div class="warning">
                <p>⚠️ 验证码有效期为 <strong>10 分钟</strong>，请尽快完成验证。</p>
                <p>⚠️ 如果您没有进行相关操作，请忽略此邮件。</p>
            </div>
        </div>
        <div class="footer">
            <p>此邮件由系统自动发送，请勿回复</p>
            <p>© 记账平台 - 您的个人财务管理助手</p>
        </div>
    </div>
</body>
</html>
`, code)
}

// sendEmail 发送邮件
func (s *EmailService) sendEmail(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(s.cfg.Username, s.cfg.From))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.Username, s.cfg.Password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("发送邮件失败: %w", err)
	}

	return nil
}
