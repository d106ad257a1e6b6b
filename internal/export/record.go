package export

import (
	"task-manager/internal/domain"
)

// Record is the on-disk shape of one exported task.
type Record struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Completed   bool     `json:"completed"`
	CreatedAt   string   `json:"created_at"`
	Tags        []string `json:"tags"`
}

// FromTask converts a domain Task to its export Record.
func FromTask(task *domain.Task) Record {
	tags := make([]string, len(task.Tags))
	copy(tags, task.Tags)

	return Record{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Completed:   task.Completed,
		CreatedAt:   domain.FormatTimestamp(task.CreatedAt),
		Tags:        tags,
	}
}

// FromTasks converts tasks to records, preserving order.
func FromTasks(tasks []*domain.Task) []Record {
	records := make([]Record, len(tasks))
	for i, task := range tasks {
		records[i] = FromTask(task)
	}
	return records
}

// ToTask converts a Record back to a domain Task.
func (r Record) ToTask() (*domain.Task, error) {
	createdAt, err := domain.ParseTimestamp(r.CreatedAt)
	if err != nil {
		return nil, err
	}
	task := domain.NewTask(r.ID, r.Title, r.Description, r.Tags, createdAt)
	task.Completed = r.Completed
	return task, nil
}
