package model

type UserData struct {
	Id             string `json:"_id" bson:"_id"`
	Login          string `json:"login" bson:"login,omitempty"`
	HashedPassword string `json:"password_hash" bson:"password_hash,omitempty"`
	Email          string `json:"email" bson:"email,omitempty"`
	DisplayName    string `json:"display_name" bson:"display_name,omitempty"`
}

// Identity is the authenticated caller resolved from the request token.
type Identity struct {
	UserId   string
	Email    string
	Nickname string
}
