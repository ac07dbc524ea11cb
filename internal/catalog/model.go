package catalog

import "github.com/specialistvlad/rostergo/internal/model"

// Model is the merged content of one or more catalog files.
type Model struct {
	Courses  []*Course
	Students []*Student
}

// Course is a course declaration from a catalog file.
type Course struct {
	Code        string
	Title       string
	Description string
	Capacity    int
	Schedule    string
	Source      string // file the declaration came from
}

// Info converts the declaration into the registry's input record.
func (c *Course) Info() model.CourseInfo {
	return model.CourseInfo{
		Code:        c.Code,
		Title:       c.Title,
		Description: c.Description,
		Capacity:    c.Capacity,
		Schedule:    c.Schedule,
	}
}

// Student is a student declaration, optionally listing course codes to
// enroll in.
type Student struct {
	ID      string
	Name    string
	Courses []string
	Source  string
}

// Info converts the declaration into the registry's input record.
func (s *Student) Info() model.StudentInfo {
	return model.StudentInfo{ID: s.ID, Name: s.Name}
}

// Merge appends other's declarations after m's.
func (m *Model) Merge(other *Model) {
	if other == nil {
		return
	}
	m.Courses = append(m.Courses, other.Courses...)
	m.Students = append(m.Students, other.Students...)
}

// Empty reports whether the model declares nothing. A nil model is empty.
func (m *Model) Empty() bool {
	return m == nil || len(m.Courses) == 0 && len(m.Students) == 0
}
