package authadmin

type CreateUserInput struct {
	Email    string
	Password string
	Nome     string
	Role     string
}

type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// --- Payloads internos do endpoint administrativo ---

type createUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Nome     string `json:"nome,omitempty"`
	Role     string `json:"role,omitempty"`
}

type deleteUserRequest struct {
	UserID string `json:"user_id"`
}

type errorResponse struct {
	Message string `json:"message"`
}
