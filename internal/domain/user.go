package domain

type UserRole string

const (
	RoleAdmin  UserRole = "admin"
	RoleFarmer UserRole = "farmer"
)

type User struct {
	ID       int64    `json:"id"`
	Email    string   `json:"email"`
	Role     UserRole `json:"role"`
	FarmerID int64    `json:"farmer_id"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken string   `json:"access_token"`
	TokenType   string   `json:"token_type"`
	Role        UserRole `json:"role"`
	Email       string   `json:"email"`
}
