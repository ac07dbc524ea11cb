// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines Course, a capacity-limited offering. Its enrollment
// counter is private and only moves through TryEnroll and TryDrop, which keep
// 0 <= enrolled <= capacity.
package model

import "fmt"

// CourseInfo is the caller-supplied description of a new course.
type CourseInfo struct {
	Code        string `validate:"required"`
	Title       string
	Description string
	Capacity    int `validate:"gt=0"`
	Schedule    string
}

// CourseSnapshot is a read-only copy of a course's state at one moment.
type CourseSnapshot struct {
	Code        string
	Title       string
	Description string
	Capacity    int
	Enrolled    int
	Schedule    string
}

// String renders the snapshot as a single display line.
func (s CourseSnapshot) String() string {
	return fmt.Sprintf("Course Code: %s, Title: %s, Description: %s, Capacity: %d, Enrolled Students: %d, Schedule: %s",
		s.Code, s.Title, s.Description, s.Capacity, s.Enrolled, s.Schedule)
}

// Course is a single offering with a live enrollment counter.
type Course struct {
	info     CourseInfo
	enrolled int
}

// NewCourse validates info and returns a course with nobody enrolled.
func NewCourse(info CourseInfo) (*Course, error) {
	info.Code = NormalizeKey(info.Code)
	if err := validateInput(info); err != nil {
		return nil, fmt.Errorf("course %q: %w", info.Code, err)
	}
	return &Course{info: info}, nil
}

// Code returns the course's unique identifier.
func (c *Course) Code() string {
	return c.info.Code
}

// Capacity returns the maximum number of enrolled students.
func (c *Course) Capacity() int {
	return c.info.Capacity
}

// Enrolled returns the current number of enrolled students.
func (c *Course) Enrolled() int {
	return c.enrolled
}

// TryEnroll takes one seat. It returns ErrCourseFull, leaving the counter
// unchanged, when no seat is left.
func (c *Course) TryEnroll() error {
	if c.enrolled >= c.info.Capacity {
		return fmt.Errorf("course %q (%d/%d): %w", c.info.Code, c.enrolled, c.info.Capacity, ErrCourseFull)
	}
	c.enrolled++
	return nil
}

// TryDrop releases one seat. It returns ErrNoEnrollment, leaving the counter
// unchanged, when nobody is enrolled.
func (c *Course) TryDrop() error {
	if c.enrolled <= 0 {
		return fmt.Errorf("course %q: %w", c.info.Code, ErrNoEnrollment)
	}
	c.enrolled--
	return nil
}

// Snapshot returns a copy of every field for display.
func (c *Course) Snapshot() CourseSnapshot {
	return CourseSnapshot{
		Code:        c.info.Code,
		Title:       c.info.Title,
		Description: c.info.Description,
		Capacity:    c.info.Capacity,
		Enrolled:    c.enrolled,
		Schedule:    c.info.Schedule,
	}
}
