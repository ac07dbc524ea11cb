package shell

import (
	"context"
	"errors"
	"strings"

	"github.com/specialistvlad/rostergo/internal/ctxlog"
	"github.com/specialistvlad/rostergo/internal/model"
	"github.com/specialistvlad/rostergo/internal/registry"
)

const (
	msgCourseAdded       = "Course added successfully."
	msgStudentRegistered = "Student registered successfully."
	msgNoCourses         = "No courses available."
	msgEnrolled          = "Course registered successfully."
	msgDropped           = "Course dropped successfully."
	msgGoodbye           = "Exiting the system. Goodbye!"

	msgInvalidChoice     = "Invalid choice. Please try again."
	msgStudentNotFound   = "Student not found."
	msgCourseNotFound    = "Course not found."
	msgEnrollFailed      = "Failed to register for the course. It might be full."
	msgDropFailed        = "Failed to drop the course. It might not be registered."
	msgAlreadyRegistered = "Student is already registered for this course."
	msgDuplicateCourse   = "A course with code %s already exists."
	msgDuplicateStudent  = "A student with ID %s is already registered."
	msgCapacityNotNumber = "Invalid input: capacity must be a whole number."
)

// commonMessage renders errors any command may produce.
func commonMessage(ctx context.Context, err error) string {
	switch {
	case errors.Is(err, registry.ErrCourseNotFound):
		return msgCourseNotFound
	case errors.Is(err, registry.ErrStudentNotFound):
		return msgStudentNotFound
	case errors.Is(err, model.ErrInvalidInput):
		return "Invalid input: " + invalidReason(err) + "."
	default:
		ctxlog.FromContext(ctx).Error("Unexpected command failure.", "error", err)
		return "Error: " + err.Error()
	}
}

// invalidReason extracts the validation reasons that follow the
// ErrInvalidInput text in a wrapped error message.
func invalidReason(err error) string {
	msg := err.Error()
	marker := model.ErrInvalidInput.Error() + ": "
	if i := strings.LastIndex(msg, marker); i >= 0 {
		return msg[i+len(marker):]
	}
	return msg
}
