package queue

import (
	"encoding/json"
	"fmt"
)

type JobType string

// Session events sent by the client.
const (
	JobProgress      JobType = "progress"
	JobLoad          JobType = "load"
	JobStroke        JobType = "stroke"
	JobCommentText   JobType = "comment_text"
	JobFocus         JobType = "focus"
	JobSubmit        JobType = "submit"
	JobDrawingMode   JobType = "drawing_mode"
	JobSelectComment JobType = "select_comment"
	JobDeleteComment JobType = "delete_comment"
	JobClear         JobType = "clear"

	// JobClose is queued by the server when the client disconnects.
	JobClose JobType = "close"
)

// Job is one session event. Payload is the raw client message the event
// was decoded from.
type Job struct {
	SessionID string          `json:"-"`
	Type      JobType         `json:"type"`
	Payload   json.RawMessage `json:"-"`
}

// Droppable jobs are discarded rather than queued when a shard is full.
func (j Job) Droppable() bool {
	return j.Type == JobProgress
}

// DeserializeJob reads the event type of a client message and keeps the
// whole message as the payload.
func DeserializeJob(sessionID string, data []byte) (Job, error) {
	var job Job
	if err := json.Unmarshal(data, &job); err != nil {
		return Job{}, fmt.Errorf("failed to deserialize job: %w", err)
	}
	if job.Type == "" {
		return Job{}, fmt.Errorf("failed to deserialize job: missing type")
	}
	job.SessionID = sessionID
	job.Payload = append(json.RawMessage(nil), data...)
	return job, nil
}

// DecodePayload unmarshals the job payload into v.
func (j Job) DecodePayload(v any) error {
	if err := json.Unmarshal(j.Payload, v); err != nil {
		return fmt.Errorf("invalid %s payload: %w", j.Type, err)
	}
	return nil
}
