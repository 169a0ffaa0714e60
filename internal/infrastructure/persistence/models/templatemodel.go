package models

type ResponseTemplateModel struct {
	ID                 uint    `gorm:"primaryKey"`
	Name               string  `gorm:"size:100;not null"`
	Category           string  `gorm:"size:30;not null;index"`
	Severity           *string `gorm:"size:20;index"`
	Content            string  `gorm:"type:text;not null"`
	Variables          string  `gorm:"type:json"`
	UsageCount         int     `gorm:"not null;default:0"`
	EffectivenessScore float64 `gorm:"not null;default:0"`
	IsActive           bool    `gorm:"not null;default:true;index"`
	CreatedAt          int64   `gorm:"autoCreateTime:milli;not null"`
	UpdatedAt          int64   `gorm:"autoUpdateTime:milli;not null"`
}

func (ResponseTemplateModel) TableName() string {
	return "response_templates"
}

type SummaryModel struct {
	ID                uint    `gorm:"primaryKey"`
	IssueID           uint    `gorm:"not null;index"`
	SummaryText       string  `gorm:"type:text;not null"`
	KeyPoints         string  `gorm:"type:json"`
	ActionItems       string  `gorm:"type:json"`
	Metrics           string  `gorm:"type:json"`
	ResolutionSummary *string `gorm:"type:text"`
	CreatedAt         int64   `gorm:"autoCreateTime:milli;not null;index"`
}

func (SummaryModel) TableName() string {
	return "issue_summaries"
}
