package response_models

import "tripgen/internal/models/db_models"

type GenerationLogResponse struct {
	ID           string   `json:"id"`
	CreatedAt    int64    `json:"createdAt"`
	TraceID      string   `json:"traceId"`
	UserID       string   `json:"userId,omitempty"`
	RequestKind  string   `json:"requestKind"`
	Destination  string   `json:"destination"`
	Duration     int      `json:"duration"`
	Interests    []string `json:"interests"`
	Provider     string   `json:"provider"`
	Outcome      string   `json:"outcome"`
	ErrorKind    string   `json:"errorKind,omitempty"`
	Stage        string   `json:"stage,omitempty"`
	DaysReturned int      `json:"daysReturned"`
	LatencyMs    int64    `json:"latencyMs"`
}

type GenerationLogPage struct {
	Page     int                     `json:"page"`
	PageSize int                     `json:"pageSize"`
	Items    []GenerationLogResponse `json:"items"`
}

func NewGenerationLogResponse(log db_models.GenerationLog) GenerationLogResponse {
	interests := []string(log.Interests)
	if interests == nil {
		interests = []string{}
	}
	return GenerationLogResponse{
		ID:           log.ID.String(),
		CreatedAt:    log.CreatedAt,
		TraceID:      log.TraceID,
		UserID:       log.UserID,
		RequestKind:  log.RequestKind,
		Destination:  log.Destination,
		Duration:     log.Duration,
		Interests:    interests,
		Provider:     log.Provider,
		Outcome:      log.Outcome,
		ErrorKind:    log.ErrorKind,
		Stage:        log.Stage,
		DaysReturned: log.DaysReturned,
		LatencyMs:    log.LatencyMs,
	}
}
