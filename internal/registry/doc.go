// Package registry provides the owning store for the roster.
//
// The Registry holds two lookup tables, course code to Course and student id
// to Student, each remembering insertion order. It is the only place Course
// and Student values are created, so the course handles a Student keeps
// always point into the Registry's own collection. Courses and students are
// never removed, which means those handles can never dangle.
//
// Operations that touch a course and a student together (Enroll, Drop) run
// inside a single critical section, so the enrolled count of every course
// always matches the number of students listing it. After a mutation
// succeeds, the Registry reports it to an optional Notifier outside the lock.
package registry
