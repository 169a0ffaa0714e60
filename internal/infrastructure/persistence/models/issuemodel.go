package models

type IssueModel struct {
	ID              uint   `gorm:"primaryKey"`
	CustomerID      uint   `gorm:"not null;index"`
	Title           string `gorm:"size:200;not null"`
	Description     string `gorm:"type:text;not null"`
	Category        string `gorm:"size:50;not null;index"`
	Severity        string `gorm:"size:20;not null;index"`
	Status          string `gorm:"size:20;not null;index"`
	ProductArea     string `gorm:"size:100"`
	Priority        int    `gorm:"not null;default:0"`
	StatusChangedAt int64  `gorm:"not null;index"`
	ResolvedAt      *int64
	CreatedAt       int64 `gorm:"autoCreateTime:milli;not null;index"`
	UpdatedAt       int64 `gorm:"autoUpdateTime:milli;not null"`

	// Note: No foreign key constraints or associations.
	// All relationships are managed by application business logic.
}

func (IssueModel) TableName() string {
	return "issues"
}

type IssueCommentModel struct {
	ID         uint   `gorm:"primaryKey"`
	IssueID    uint   `gorm:"not null;index"`
	AuthorID   uint   `gorm:"not null;index"`
	AuthorRole string `gorm:"size:20;not null"`
	Content    string `gorm:"type:text;not null"`
	IsInternal bool   `gorm:"not null;default:false"`
	CreatedAt  int64  `gorm:"autoCreateTime:milli;not null;index"`
}

func (IssueCommentModel) TableName() string {
	return "issue_comments"
}
