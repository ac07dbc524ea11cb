// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines Student. A student holds non-owning handles to the
// courses it is registered in; each handle is added only after the course
// accepted the enrollment and removed only after the course released the seat.
package model

import (
	"fmt"
	"slices"
)

// StudentInfo is the caller-supplied description of a new student.
type StudentInfo struct {
	ID   string `validate:"required"`
	Name string
}

// StudentSnapshot is a read-only copy of a student and its registered courses.
type StudentSnapshot struct {
	ID      string
	Name    string
	Courses []CourseSnapshot
}

// Student is an enrollee with an ordered, duplicate-free list of courses.
type Student struct {
	info    StudentInfo
	courses []*Course
}

// NewStudent validates info and returns a student with no courses.
func NewStudent(info StudentInfo) (*Student, error) {
	info.ID = NormalizeKey(info.ID)
	if err := validateInput(info); err != nil {
		return nil, fmt.Errorf("student %q: %w", info.ID, err)
	}
	return &Student{info: info}, nil
}

// ID returns the student's unique identifier.
func (s *Student) ID() string {
	return s.info.ID
}

// Name returns the student's display name.
func (s *Student) Name() string {
	return s.info.Name
}

// RegisterCourse enrolls the student in c. The course is appended only when
// it accepts the enrollment; ErrCourseFull and ErrAlreadyRegistered leave both
// sides untouched.
func (s *Student) RegisterCourse(c *Course) error {
	if s.IsRegistered(c.Code()) {
		return fmt.Errorf("student %q, course %q: %w", s.info.ID, c.Code(), ErrAlreadyRegistered)
	}
	if err := c.TryEnroll(); err != nil {
		return err
	}
	s.courses = append(s.courses, c)
	return nil
}

// DropCourse removes c from the student's courses and releases its seat.
// It returns ErrNotRegistered without touching c when the student does not
// hold it.
func (s *Student) DropCourse(c *Course) error {
	i := s.indexOf(c)
	if i < 0 {
		return fmt.Errorf("student %q, course %q: %w", s.info.ID, c.Code(), ErrNotRegistered)
	}
	if err := c.TryDrop(); err != nil {
		return err
	}
	s.courses = slices.Delete(s.courses, i, i+1)
	return nil
}

// IsRegistered reports whether the student holds the course with the given code.
func (s *Student) IsRegistered(code string) bool {
	return slices.ContainsFunc(s.courses, func(c *Course) bool {
		return c.Code() == code
	})
}

// RegisteredCourses returns snapshots of the student's courses in
// registration order.
func (s *Student) RegisteredCourses() []CourseSnapshot {
	out := make([]CourseSnapshot, 0, len(s.courses))
	for _, c := range s.courses {
		out = append(out, c.Snapshot())
	}
	return out
}

// Snapshot returns the student's identity together with its courses.
func (s *Student) Snapshot() StudentSnapshot {
	return StudentSnapshot{
		ID:      s.info.ID,
		Name:    s.info.Name,
		Courses: s.RegisteredCourses(),
	}
}

func (s *Student) indexOf(c *Course) int {
	return slices.Index(s.courses, c)
}
