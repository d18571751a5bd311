package config

// SafeErrorMessage 根据运行模式决定返回给客户端的错误信息
// release 模式下只返回 fallback，避免把数据库/驱动错误详情暴露给外部
func SafeErrorMessage(err error, fallback string) string {
	if err == nil {
		return fallback
	}
	if GlobalConfig != nil && GlobalConfig.Server.Mode == "release" {
		return fallback
	}
	return err.Error()
}
