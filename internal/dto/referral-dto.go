package dto

type ReferralUserResponse struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Surname  string `json:"surname"`
	Team     string `json:"team"`
}

type ReferralRewardResponse struct {
	ReferredUserID string `json:"referredUserId"`
	Points         int    `json:"points"`
	CreatedAt      string `json:"createdAt"`
}
