package models

type AlertModel struct {
	ID             uint   `gorm:"primaryKey"`
	IssueID        uint   `gorm:"not null;index:idx_alert_issue_type"`
	AlertType      string `gorm:"size:30;not null;index:idx_alert_issue_type"`
	Severity       string `gorm:"size:20;not null"`
	Message        string `gorm:"type:text;not null"`
	Status         string `gorm:"size:20;not null;index"`
	AcknowledgedBy *uint
	AcknowledgedAt *int64
	ResolvedAt     *int64
	CreatedAt      int64 `gorm:"autoCreateTime:milli;not null;index"`
	UpdatedAt      int64 `gorm:"autoUpdateTime:milli;not null"`
}

func (AlertModel) TableName() string {
	return "critical_alerts"
}
