package dto

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type VerifyCodeRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

type ResendCodeRequest struct {
	Email string `json:"email"`
}

// LoginStep1Response acknowledges that a verification code was dispatched.
// The code itself never appears in a response.
type LoginStep1Response struct {
	Message string `json:"message"`
	Email   string `json:"email"`
}

type AdminLoginStep1Response struct {
	Message string `json:"message"`
	Email   string `json:"email"`
	Role    string `json:"role"`
}
