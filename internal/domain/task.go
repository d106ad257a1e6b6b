package domain

import "time"

// Task represents one unit of trackable work.
// ID and CreatedAt are fixed at construction; Completed only ever moves from
// false to true.
type Task struct {
	ID          int64
	Title       string
	Description string
	Completed   bool
	CreatedAt   time.Time
	Tags        []string
}

// NewTask creates a pending Task stamped with createdAt.
// The tags slice is copied so later changes by the caller do not leak in; a
// nil slice becomes an empty one.
func NewTask(id int64, title, description string, tags []string, createdAt time.Time) *Task {
	copied := make([]string, len(tags))
	copy(copied, tags)

	return &Task{
		ID:          id,
		Title:       title,
		Description: description,
		CreatedAt:   createdAt,
		Tags:        copied,
	}
}

// IsPending reports whether the task has not been completed yet.
func (t *Task) IsPending() bool {
	return !t.Completed
}

// HasTag reports whether tag is one of the task's tags.
// Matching is exact and case-sensitive.
func (t *Task) HasTag(tag string) bool {
	for _, candidate := range t.Tags {
		if candidate == tag {
			return true
		}
	}
	return false
}

// String returns the task title for display purposes.
func (t *Task) String() string {
	return t.Title
}
