package dto

type MessageDTO struct {
	Message string `json:"message"`
}

type LoginResultDTO struct {
	Ok      bool   `json:"ok"`
	Message string `json:"message"`
}

// ErrorDTO 错误返回体
type ErrorDTO struct {
	Detail any `json:"detail"`
}
