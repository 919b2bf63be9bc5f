package model

const TableNameNote = "note"

// Note mapped from table <note>
type Note struct {
	ID        string `gorm:"column:id;primaryKey;size:64" json:"id" form:"id"`
	Text      string `gorm:"column:text;type:text;not null" json:"text" form:"text"`
	CreatedAt int64  `gorm:"column:created_at;not null;autoCreateTime:false" json:"createdAt" form:"createdAt"`
	UpdatedAt int64  `gorm:"column:updated_at;not null;autoUpdateTime:false" json:"updatedAt" form:"updatedAt"`
}

// TableName Note's table name
func (*Note) TableName() string {
	return TableNameNote
}
