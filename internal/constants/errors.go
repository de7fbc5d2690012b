package constants

// 通用错误消息
const (
	// 认证相关错误
	ErrUnauthorized           = "未授权，请先登录"
	ErrInvalidToken           = "无效的Token"
	ErrInsufficientPermission = "权限不足"
	ErrAccountDisabled        = "账号已被禁用"
	ErrAuthFailed             = "用户不存在或密码错误"

	// 参数相关错误
	ErrInvalidParams  = "参数错误"
	ErrInvalidRequest = "无效请求格式"
	ErrInvalidID      = "无效的商品变体ID"
	ErrInvalidUUID    = "无效的UUID"
	ErrValidation     = "数据校验失败"

	// 商品变体相关错误
	ErrVariationNotFound   = "商品变体不存在"
	ErrTranslationNotFound = "该语言的翻译不存在"
	ErrTranslationExists   = "该语言的翻译已存在"
	ErrDefaultTranslation  = "不能删除默认翻译"
	ErrVariationDisabled   = "商品变体已停用"

	// 系统错误
	ErrInternalServer = "服务器内部错误"
)

// 成功消息
const (
	SuccessLogin  = "登录成功"
	SuccessCreate = "创建成功"
	SuccessUpdate = "更新成功"
	SuccessDelete = "删除成功"
	SuccessGet    = "获取成功"
)
