package dto

import "time"

type CollegeRecordDTO struct {
	College          string   `json:"college"`
	Branch           string   `json:"branch"`
	CutoffRank       *int     `json:"cutoff_rank,omitempty"`
	CutoffPercentile *float64 `json:"cutoff_percentile,omitempty"`
	Category         string   `json:"category,omitempty"`
	Location         string   `json:"location,omitempty"`
}

type SuggestRequest struct {
	Rank   int `json:"rank" validate:"required,gt=0"`
	Margin int `json:"margin,omitempty" validate:"gte=0"`
}

type SuggestResponse struct {
	Rank       int                `json:"rank"`
	Percentile float64            `json:"percentile"`
	Safe       []CollegeRecordDTO `json:"safe"`
	Ambitious  []CollegeRecordDTO `json:"ambitious"`
}

type PredictRequest struct {
	Percentile float64 `json:"percentile" validate:"required,gt=0,lte=100"`
	College    string  `json:"college" validate:"required"`
	Branch     string  `json:"branch,omitempty"`
}

type PredictResponse struct {
	College          string   `json:"college"`
	Branch           string   `json:"branch"`
	Chance           string   `json:"chance"`
	Delta            float64  `json:"delta"`
	CutoffPercentile *float64 `json:"cutoff_percentile,omitempty"`
}

type ChatRequest struct {
	SessionId string `json:"session_id,omitempty"`
	Message   string `json:"message" validate:"required"`
}

type ChatResponse struct {
	SessionId string             `json:"session_id"`
	Reply     string             `json:"reply"`
	Grounded  bool               `json:"grounded"`
	Sources   []CollegeRecordDTO `json:"sources,omitempty"`
}

type FeedbackRequest struct {
	Type       string `json:"type" validate:"required,oneof=up down correction"`
	Message    string `json:"message" validate:"required"`
	Response   string `json:"response,omitempty"`
	Correction string `json:"correction,omitempty"`
}

type ReloadResponse struct {
	Records  int       `json:"records"`
	LoadedAt time.Time `json:"loaded_at"`
}

// FeedbackMessage is the payload carried on the feedback topic between the
// API handler and the consumer that persists it.
type FeedbackMessage struct {
	Id         string `json:"id"`
	Type       string `json:"type"`
	Message    string `json:"message"`
	Response   string `json:"response"`
	Correction string `json:"correction"`
	CreatedAt  string `json:"created_at"`
}
