package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"time"
)

// PlanItems is the ordered list of drills of a training session. Clients
// written against the old API send it as a JSON-encoded string, so both
// `["a","b"]` and `"[\"a\",\"b\"]"` are accepted on input.
type PlanItems []string

func (p *PlanItems) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*p = nil
		return nil
	}

	var items []string
	if len(data) > 0 && data[0] == '"' {
		var encoded string
		if err := json.Unmarshal(data, &encoded); err != nil {
			return err
		}
		if encoded == "" {
			*p = PlanItems{}
			return nil
		}
		if err := json.Unmarshal([]byte(encoded), &items); err != nil {
			return errors.New("plan_content string must contain a JSON array of strings")
		}
	} else if err := json.Unmarshal(data, &items); err != nil {
		return err
	}

	*p = PlanItems(items)
	return nil
}

type TrainingSession struct {
	ID          int       `json:"id"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	PlanContent PlanItems `json:"plan_content"`
	AuthorID    int       `json:"author_id"`
	CreatedAt   time.Time `json:"created_at"`
}
