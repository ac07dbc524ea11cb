package registry

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"sync"

	"github.com/specialistvlad/rostergo/internal/ctxlog"
	"github.com/specialistvlad/rostergo/internal/model"
)

var (
	// ErrDuplicateCourse is returned when adding a course whose code is taken.
	ErrDuplicateCourse = errors.New("course already exists")
	// ErrDuplicateStudent is returned when registering a student whose id is taken.
	ErrDuplicateStudent = errors.New("student already exists")
	// ErrCourseNotFound is returned when a course code is unknown.
	ErrCourseNotFound = errors.New("course not found")
	// ErrStudentNotFound is returned when a student id is unknown.
	ErrStudentNotFound = errors.New("student not found")
)

// Stats is a point-in-time summary of the registry's contents.
type Stats struct {
	Courses     int `json:"courses"`
	Students    int `json:"students"`
	Enrollments int `json:"enrollments"`
}

// Option configures a Registry at construction time.
type Option func(*Registry)

// WithNotifier installs n to receive an Event after every successful mutation.
func WithNotifier(n Notifier) Option {
	return func(r *Registry) {
		r.notifier = n
	}
}

// Registry owns every Course and Student of a single roster.
type Registry struct {
	mu sync.RWMutex

	courses     map[string]*model.Course
	courseOrder []*model.Course

	students     map[string]*model.Student
	studentOrder []*model.Student

	notifier Notifier
}

// New creates an empty Registry.
func New(opts ...Option) *Registry {
	r := &Registry{
		courses:  make(map[string]*model.Course),
		students: make(map[string]*model.Student),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// AddCourse validates info and stores a new course. A code that is already
// present is rejected with ErrDuplicateCourse and the existing course is kept.
func (r *Registry) AddCourse(ctx context.Context, info model.CourseInfo) error {
	course, err := model.NewCourse(info)
	if err != nil {
		return err
	}

	r.mu.Lock()
	if _, exists := r.courses[course.Code()]; exists {
		r.mu.Unlock()
		return fmt.Errorf("course %q: %w", course.Code(), ErrDuplicateCourse)
	}
	r.courses[course.Code()] = course
	r.courseOrder = append(r.courseOrder, course)
	event := courseEvent(EventCourseAdded, "", course)
	r.mu.Unlock()

	ctxlog.FromContext(ctx).Debug("Course added.", "course_code", course.Code(), "capacity", course.Capacity())
	r.notify(ctx, event)
	return nil
}

// RegisterStudent validates info and stores a new student. An id that is
// already present is rejected with ErrDuplicateStudent.
func (r *Registry) RegisterStudent(ctx context.Context, info model.StudentInfo) error {
	student, err := model.NewStudent(info)
	if err != nil {
		return err
	}

	r.mu.Lock()
	if _, exists := r.students[student.ID()]; exists {
		r.mu.Unlock()
		return fmt.Errorf("student %q: %w", student.ID(), ErrDuplicateStudent)
	}
	r.students[student.ID()] = student
	r.studentOrder = append(r.studentOrder, student)
	r.mu.Unlock()

	ctxlog.FromContext(ctx).Debug("Student registered.", "student_id", student.ID())
	r.notify(ctx, Event{Kind: EventStudentRegistered, StudentID: student.ID()})
	return nil
}

// ListCourses returns a sequence of course snapshots in insertion order.
// Every range over the sequence re-reads the current state.
func (r *Registry) ListCourses() iter.Seq[model.CourseSnapshot] {
	return func(yield func(model.CourseSnapshot) bool) {
		r.mu.RLock()
		snaps := make([]model.CourseSnapshot, 0, len(r.courseOrder))
		for _, c := range r.courseOrder {
			snaps = append(snaps, c.Snapshot())
		}
		r.mu.RUnlock()

		for _, snap := range snaps {
			if !yield(snap) {
				return
			}
		}
	}
}

// Course returns a snapshot of the course with the given code.
func (r *Registry) Course(code string) (model.CourseSnapshot, error) {
	code = model.NormalizeKey(code)
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.courses[code]
	if !ok {
		return model.CourseSnapshot{}, fmt.Errorf("course %q: %w", code, ErrCourseNotFound)
	}
	return c.Snapshot(), nil
}

// Enroll registers the student for the course. The course code is resolved
// before the student id, so an unknown course is always reported as
// ErrCourseNotFound. Capacity and duplicate failures come from the model
// package and leave all state unchanged.
func (r *Registry) Enroll(ctx context.Context, studentID, code string) error {
	studentID, code = model.NormalizeKey(studentID), model.NormalizeKey(code)
	r.mu.Lock()
	course, student, err := r.lookup(studentID, code)
	if err != nil {
		r.mu.Unlock()
		return err
	}
	if err := student.RegisterCourse(course); err != nil {
		r.mu.Unlock()
		return err
	}
	event := courseEvent(EventEnrolled, studentID, course)
	r.mu.Unlock()

	ctxlog.FromContext(ctx).Debug("Student enrolled.",
		"student_id", studentID, "course_code", code,
		"enrolled", event.Enrolled, "capacity", event.Capacity)
	r.notify(ctx, event)
	return nil
}

// Drop removes the student from the course, with the same lookup order as
// Enroll. ErrNotRegistered is returned when the student does not hold it.
func (r *Registry) Drop(ctx context.Context, studentID, code string) error {
	studentID, code = model.NormalizeKey(studentID), model.NormalizeKey(code)
	r.mu.Lock()
	course, student, err := r.lookup(studentID, code)
	if err != nil {
		r.mu.Unlock()
		return err
	}
	if err := student.DropCourse(course); err != nil {
		r.mu.Unlock()
		return err
	}
	event := courseEvent(EventDropped, studentID, course)
	r.mu.Unlock()

	ctxlog.FromContext(ctx).Debug("Student dropped course.",
		"student_id", studentID, "course_code", code, "enrolled", event.Enrolled)
	r.notify(ctx, event)
	return nil
}

// StudentCourses returns the student's identity and registered courses.
func (r *Registry) StudentCourses(studentID string) (model.StudentSnapshot, error) {
	studentID = model.NormalizeKey(studentID)
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.students[studentID]
	if !ok {
		return model.StudentSnapshot{}, fmt.Errorf("student %q: %w", studentID, ErrStudentNotFound)
	}
	return s.Snapshot(), nil
}

// Stats counts courses, students and held enrollments.
func (r *Registry) Stats() Stats {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats := Stats{Courses: len(r.courseOrder), Students: len(r.studentOrder)}
	for _, c := range r.courseOrder {
		stats.Enrollments += c.Enrolled()
	}
	return stats
}

// lookup resolves both entities from normalized keys. The caller must hold
// r.mu.
func (r *Registry) lookup(studentID, code string) (*model.Course, *model.Student, error) {
	course, ok := r.courses[code]
	if !ok {
		return nil, nil, fmt.Errorf("course %q: %w", code, ErrCourseNotFound)
	}
	student, ok := r.students[studentID]
	if !ok {
		return nil, nil, fmt.Errorf("student %q: %w", studentID, ErrStudentNotFound)
	}
	return course, student, nil
}

func (r *Registry) notify(ctx context.Context, e Event) {
	if r.notifier == nil {
		return
	}
	r.notifier.Notify(ctx, e)
}

func courseEvent(kind EventKind, studentID string, c *model.Course) Event {
	return Event{
		Kind:       kind,
		CourseCode: c.Code(),
		StudentID:  studentID,
		Enrolled:   c.Enrolled(),
		Capacity:   c.Capacity(),
	}
}
