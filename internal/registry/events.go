package registry

import "context"

// EventKind names the mutation an Event describes.
type EventKind string

const (
	EventCourseAdded       EventKind = "course_added"
	EventStudentRegistered EventKind = "student_registered"
	EventEnrolled          EventKind = "enrolled"
	EventDropped           EventKind = "dropped"
)

// Event describes one successful registry mutation. Enrolled and Capacity
// reflect the course after the change and are zero for student events.
type Event struct {
	Kind       EventKind
	CourseCode string
	StudentID  string
	Enrolled   int
	Capacity   int
}

// Notifier receives registry events. Notify is called synchronously after
// the registry lock is released and must not block for long.
type Notifier interface {
	Notify(ctx context.Context, e Event)
}

// NotifierFunc adapts a plain function to the Notifier interface.
type NotifierFunc func(ctx context.Context, e Event)

// Notify calls f(ctx, e).
func (f NotifierFunc) Notify(ctx context.Context, e Event) {
	f(ctx, e)
}
