package models

// SourceType identifies where a summary's text came from.
type SourceType string

const (
	SourcePDF   SourceType = "pdf"
	SourceVideo SourceType = "video"
)

// Summary is an AI-generated summary owned by one user. Rows are never updated.
type Summary struct {
	Base
	UserID      string     `json:"user_id"              gorm:"type:varchar(64);index;not null"`
	SourceType  SourceType `json:"source_type"          gorm:"type:varchar(16);not null"`
	Title       string     `json:"title"                gorm:"type:varchar(512)"`
	SummaryText string     `json:"summary_text"         gorm:"type:text;not null"`
	SourceKey   *string    `json:"source_key,omitempty" gorm:"type:varchar(512)"`
}

func (Summary) TableName() string { return "summaries" }
