package model

// ユーザーアカウントの1対1拡張（user_idが主キー）。
// username/emailは登録時点のスナップショットを持つ。
type Profile struct {
	UserID      int64  `gorm:"primaryKey" json:"user_id"`
	Username    string `gorm:"type:varchar(150)" json:"username"`
	Email       string `gorm:"type:varchar(255)" json:"email"`
	Address     string `gorm:"type:text" json:"address"`
	FirstName   string `gorm:"type:varchar(255)" json:"first_name"`
	LastName    string `gorm:"type:varchar(255)" json:"last_name"`
	PhoneNumber string `gorm:"type:varchar(15)" json:"phone_number"`
	Image       string `gorm:"type:varchar(255)" json:"image"`
}
