package dto

import "video-annotator/internal/domain/entities"

// Client events. Each carries the "type" field read by the queue.

type ProgressEvent struct {
	Seconds float64 `json:"seconds"`
}

type LoadEvent struct {
	Duration float64 `json:"duration"`
}

type StrokeEvent struct {
	Points      []entities.Point `json:"points"`
	Color       string           `json:"color"`
	StrokeWidth float64          `json:"strokeWidth"`
}

type CommentTextEvent struct {
	Text string `json:"text"`
}

type DrawingModeEvent struct {
	On bool `json:"on"`
}

type CommentRefEvent struct {
	CommentID string `json:"commentId"`
}

// Server messages.

const (
	MessageState   = "state"
	MessageCommand = "command"
	MessageError   = "error"

	CommandPause = "pause"
	CommandPlay  = "play"
	CommandSeek  = "seek"
)

type ServerMessage struct {
	Type    string   `json:"type"`
	State   any      `json:"state,omitempty"`
	Command string   `json:"command,omitempty"`
	Seconds *float64 `json:"seconds,omitempty"`
	Error   string   `json:"error,omitempty"`
	Message string   `json:"message,omitempty"`
}
