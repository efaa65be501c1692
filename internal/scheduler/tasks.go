package scheduler

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const TaskNotifyGroups = "leads.notify_groups"

// NotifyGroupsPayload describes a new lead for the group broadcast.
type NotifyGroupsPayload struct {
	LeadID      int64     `json:"leadId"`
	FullName    string    `json:"fullName"`
	PhoneNumber string    `json:"phoneNumber"`
	CourseName  string    `json:"courseName"`
	NewContact  bool      `json:"newContact"`
	CreatedAt   time.Time `json:"createdAt"`
}

func NewNotifyGroupsTask(payload NotifyGroupsPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskNotifyGroups, data), nil
}

func ParseNotifyGroupsPayload(task *asynq.Task) (NotifyGroupsPayload, error) {
	var payload NotifyGroupsPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return NotifyGroupsPayload{}, err
	}
	return payload, nil
}
