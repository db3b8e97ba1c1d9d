package amqp

import (
	"encoding/json"
	"time"
)

// Entities that mutation events are recorded against.
const (
	EntityUser        = "user"
	EntityTransaction = "transaction"
	EntityGoal        = "goal"
)

// Operations carried by mutation events.
const (
	OpCreate = "create"
	OpUpdate = "update"
	OpDelete = "delete"
)

// MutationMessage announces a write that the API applied to a record.
// It carries only the entity, operation and record ID; consumers fetch
// whatever else they need from the API or the database.
type MutationMessage struct {
	Entity    string    `json:"entity"`
	Op        string    `json:"op"`
	ID        int64     `json:"id"`
	Timestamp time.Time `json:"timestamp"`
}

func NewMutationMessage(entity, op string, id int64) *MutationMessage {
	return &MutationMessage{
		Entity:    entity,
		Op:        op,
		ID:        id,
		Timestamp: time.Now(),
	}
}

func (m *MutationMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func MutationMessageFromJSON(data []byte) (*MutationMessage, error) {
	var msg MutationMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
