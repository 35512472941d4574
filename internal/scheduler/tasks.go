package scheduler

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const TaskMaintenanceReminder = "maintenance.reminder"

type MaintenanceReminderPayload struct {
	MaintenanceID string `json:"maintenanceId"`
	PropertyID    string `json:"propertyId"`
	ScheduleDate  string `json:"scheduleDate"`
}

// FormatScheduleDate renders the schedule date the way reminder payloads
// carry it. The worker compares this against the current row to drop
// reminders made stale by a reschedule.
func FormatScheduleDate(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func NewMaintenanceReminderTask(payload MaintenanceReminderPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskMaintenanceReminder, data), nil
}

func ParseMaintenanceReminderPayload(task *asynq.Task) (MaintenanceReminderPayload, error) {
	var payload MaintenanceReminderPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return MaintenanceReminderPayload{}, err
	}
	return payload, nil
}
