package db_models

import "github.com/lib/pq"

// Generation outcomes.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// GenerationLog is one row per itinerary request. It holds request metadata
// and the outcome only; generated itineraries are never stored.
type GenerationLog struct {
	BaseModel
	TraceID      string `gorm:"index"`
	UserID       string `gorm:"index"`
	RequestKind  string `gorm:"not null"`
	Destination  string
	Duration     int
	Interests    pq.StringArray `gorm:"type:text[]"`
	Provider     string
	Outcome      string `gorm:"not null"`
	ErrorKind    string
	Stage        string
	DaysReturned int
	LatencyMs    int64
}

func (GenerationLog) TableName() string {
	return "generation_logs"
}
