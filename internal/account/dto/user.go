package dto

type RegisterReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UserView struct {
	ID                  int    `json:"id"`
	Email               string `json:"email"`
	LastPlayedKingdomID *int   `json:"lastPlayedKingdomId,omitempty"`
}

type LoginResp struct {
	User  UserView
	Token string
}
