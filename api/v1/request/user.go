package request

type RegisterRequest struct {
	Name        string `json:"name" binding:"required,max=15"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=6"`
	Phone       string `json:"phone" binding:"required,phone"`
	Birthdate   string `json:"birthdate" binding:"required,datetime=2006-01-02"`
	Website     string `json:"website" binding:"omitempty,website"`
	UserName    string `json:"user_name" binding:"omitempty,max=50"`
	Place       string `json:"place" binding:"omitempty,max=100"`
	Description string `json:"description"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}
