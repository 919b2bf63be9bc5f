package model

const TableNameUser = "user"

// User mapped from table <user>
type User struct {
	ID        string `gorm:"column:id;primaryKey;size:64" json:"id" form:"id"`
	Name      string `gorm:"column:name;not null" json:"name" form:"name"`
	Email     string `gorm:"column:email;size:255;not null;uniqueIndex:idx_user_email" json:"email" form:"email"`
	Password  string `gorm:"column:password;not null" json:"password" form:"password"`
	CreatedAt int64  `gorm:"column:created_at;not null;autoCreateTime:false" json:"createdAt" form:"createdAt"`
	UpdatedAt int64  `gorm:"column:updated_at;not null;autoUpdateTime:false" json:"updatedAt" form:"updatedAt"`
}

// TableName User's table name
func (*User) TableName() string {
	return TableNameUser
}
