package supabase

// AuthUser пользователь провайдера идентификации
type AuthUser struct {
	ID           string                 `json:"id"`
	Email        string                 `json:"email"`
	UserMetadata map[string]interface{} `json:"user_metadata,omitempty"`
}

// Name имя из метаданных пользователя, если оно задано
func (u *AuthUser) Name() string {
	if u.UserMetadata == nil {
		return ""
	}
	name, _ := u.UserMetadata["name"].(string)
	return name
}

// createUserRequest тело POST /auth/v1/admin/users
type createUserRequest struct {
	Email        string                 `json:"email"`
	Password     string                 `json:"password"`
	EmailConfirm bool                   `json:"email_confirm"`
	UserMetadata map[string]interface{} `json:"user_metadata,omitempty"`
}

// listUsersResponse ответ GET /auth/v1/admin/users
type listUsersResponse struct {
	Users []AuthUser `json:"users"`
}

// errorResponse модель ошибки провайдера
type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"msg"`
	Error   string `json:"error_description"`
}
