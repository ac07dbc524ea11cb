// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file lists the domain errors raised by Course and Student. Callers
// match them with errors.Is; the returned errors are usually wrapped with the
// code or id involved.
package model

import "errors"

var (
	// ErrInvalidInput is returned when a CourseInfo or StudentInfo fails validation.
	ErrInvalidInput = errors.New("invalid input")
	// ErrCourseFull is returned when enrolling into a course at capacity.
	ErrCourseFull = errors.New("course is full")
	// ErrNoEnrollment is returned when dropping from a course with nobody enrolled.
	ErrNoEnrollment = errors.New("course has no enrollment to drop")
	// ErrNotRegistered is returned when a student drops a course it does not hold.
	ErrNotRegistered = errors.New("student is not registered for course")
	// ErrAlreadyRegistered is returned when a student registers for a course twice.
	ErrAlreadyRegistered = errors.New("student is already registered for course")
)
