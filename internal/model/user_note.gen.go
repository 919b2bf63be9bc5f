package model

const TableNameUserNote = "user_note"

// UserNote mapped from table <user_note>
// Seq 保存笔记在用户笔记列表中的位置
type UserNote struct {
	UID    string `gorm:"column:uid;primaryKey;size:64;index:idx_user_note_seq,priority:1" json:"uid" form:"uid"`
	NoteID string `gorm:"column:note_id;primaryKey;size:64" json:"noteId" form:"noteId"`
	Seq    int64  `gorm:"column:seq;not null;index:idx_user_note_seq,priority:2" json:"seq" form:"seq"`
}

// TableName UserNote's table name
func (*UserNote) TableName() string {
	return TableNameUserNote
}
