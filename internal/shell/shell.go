// Package shell is the interactive front end of the roster. It prints a
// numbered menu, collects field values line by line, calls the registry and
// renders each outcome as a user-facing message. Domain errors never end the
// session.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/specialistvlad/rostergo/internal/ctxlog"
	"github.com/specialistvlad/rostergo/internal/model"
	"github.com/specialistvlad/rostergo/internal/registry"
)

const menu = `
Student Course Registration System:
1. Add Course
2. Register Student
3. List Available Courses
4. Register for a Course
5. Drop a Course
6. Display Student Courses
7. Exit
Enter your choice: `

const (
	choiceAddCourse = iota + 1
	choiceRegisterStudent
	choiceListCourses
	choiceEnroll
	choiceDrop
	choiceStudentCourses
	choiceExit
)

// errInputClosed signals that the input ended in the middle of a prompt.
var errInputClosed = errors.New("input closed")

// Shell runs the menu loop against a single registry.
type Shell struct {
	reg   *registry.Registry
	in    *bufio.Scanner
	out   io.Writer
	lines chan line
}

// line is one read from the input: either its text or the read error.
type line struct {
	text string
	err  error
}

// New creates a Shell reading commands from in and writing to out.
func New(reg *registry.Registry, in io.Reader, out io.Writer) *Shell {
	return &Shell{
		reg: reg,
		in:  bufio.NewScanner(in),
		out: out,
	}
}

// Run processes commands until Exit is chosen or the input ends. It returns
// an error when reading the input fails, or ctx's error when ctx is done
// while the shell waits for input.
//
// Input is read on a separate goroutine so a cancelled ctx ends the session
// even while a read is blocked. That goroutine exits at its next read after
// Run returns.
func (s *Shell) Run(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Shell session started.")
	defer logger.Debug("Shell session finished.")

	done := make(chan struct{})
	defer close(done)
	s.lines = make(chan line)
	go s.scan(done)

	for {
		fmt.Fprint(s.out, menu)
		input, err := s.readLine(ctx)
		if err != nil {
			return s.endOfInput(err)
		}

		choice, convErr := strconv.Atoi(input)
		if convErr != nil {
			s.println(msgInvalidChoice)
			continue
		}

		switch choice {
		case choiceAddCourse:
			err = s.addCourse(ctxlog.With(ctx, "command", "add_course"))
		case choiceRegisterStudent:
			err = s.registerStudent(ctxlog.With(ctx, "command", "register_student"))
		case choiceListCourses:
			s.listCourses()
		case choiceEnroll:
			err = s.enroll(ctxlog.With(ctx, "command", "enroll"))
		case choiceDrop:
			err = s.drop(ctxlog.With(ctx, "command", "drop"))
		case choiceStudentCourses:
			err = s.studentCourses(ctx)
		case choiceExit:
			s.println(msgGoodbye)
			return nil
		default:
			s.println(msgInvalidChoice)
		}
		if err != nil {
			return s.endOfInput(err)
		}
	}
}

func (s *Shell) addCourse(ctx context.Context) error {
	fields, err := s.promptAll(ctx, "Enter course code: ", "Enter course title: ", "Enter course description: ", "Enter course capacity: ", "Enter course schedule: ")
	if err != nil {
		return err
	}

	capacity, convErr := strconv.Atoi(fields[3])
	if convErr != nil {
		s.println(msgCapacityNotNumber)
		return nil
	}

	err = s.reg.AddCourse(ctx, model.CourseInfo{
		Code:        fields[0],
		Title:       fields[1],
		Description: fields[2],
		Capacity:    capacity,
		Schedule:    fields[4],
	})
	s.report(ctx, err, msgCourseAdded, func(err error) string {
		if errors.Is(err, registry.ErrDuplicateCourse) {
			return fmt.Sprintf(msgDuplicateCourse, fields[0])
		}
		return ""
	})
	return nil
}

func (s *Shell) registerStudent(ctx context.Context) error {
	fields, err := s.promptAll(ctx, "Enter student ID: ", "Enter student name: ")
	if err != nil {
		return err
	}

	err = s.reg.RegisterStudent(ctx, model.StudentInfo{ID: fields[0], Name: fields[1]})
	s.report(ctx, err, msgStudentRegistered, func(err error) string {
		if errors.Is(err, registry.ErrDuplicateStudent) {
			return fmt.Sprintf(msgDuplicateStudent, fields[0])
		}
		return ""
	})
	return nil
}

func (s *Shell) listCourses() {
	empty := true
	for c := range s.reg.ListCourses() {
		empty = false
		s.println(c.String())
	}
	if empty {
		s.println(msgNoCourses)
	}
}

func (s *Shell) enroll(ctx context.Context) error {
	fields, err := s.promptAll(ctx, "Enter student ID: ", "Enter course code: ")
	if err != nil {
		return err
	}

	err = s.reg.Enroll(ctx, fields[0], fields[1])
	s.report(ctx, err, msgEnrolled, func(err error) string {
		switch {
		case errors.Is(err, model.ErrCourseFull):
			return msgEnrollFailed
		case errors.Is(err, model.ErrAlreadyRegistered):
			return msgAlreadyRegistered
		}
		return ""
	})
	return nil
}

func (s *Shell) drop(ctx context.Context) error {
	fields, err := s.promptAll(ctx, "Enter student ID: ", "Enter course code: ")
	if err != nil {
		return err
	}

	err = s.reg.Drop(ctx, fields[0], fields[1])
	s.report(ctx, err, msgDropped, func(err error) string {
		if errors.Is(err, model.ErrNotRegistered) || errors.Is(err, model.ErrNoEnrollment) {
			return msgDropFailed
		}
		return ""
	})
	return nil
}

func (s *Shell) studentCourses(ctx context.Context) error {
	id, err := s.prompt(ctx, "Enter student ID: ")
	if err != nil {
		return err
	}

	snap, err := s.reg.StudentCourses(id)
	if err != nil {
		s.println(msgStudentNotFound)
		return nil
	}
	s.println(fmt.Sprintf("Student ID: %s, Name: %s", snap.ID, snap.Name))
	for _, c := range snap.Courses {
		s.println(c.String())
	}
	return nil
}

// report prints success when err is nil. Otherwise it prints the message
// returned by specific, falling back to the messages shared by all commands.
func (s *Shell) report(ctx context.Context, err error, success string, specific func(error) string) {
	if err == nil {
		s.println(success)
		return
	}
	ctxlog.FromContext(ctx).Debug("Command rejected.", "error", err)

	if msg := specific(err); msg != "" {
		s.println(msg)
		return
	}
	s.println(commonMessage(ctx, err))
}

func (s *Shell) promptAll(ctx context.Context, labels ...string) ([]string, error) {
	values := make([]string, 0, len(labels))
	for _, label := range labels {
		v, err := s.prompt(ctx, label)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, nil
}

func (s *Shell) prompt(ctx context.Context, label string) (string, error) {
	fmt.Fprint(s.out, label)
	return s.readLine(ctx)
}

// scan feeds s.lines until the input ends or done is closed. A read error is
// sent as the last line; s.lines is closed on return.
func (s *Shell) scan(done <-chan struct{}) {
	defer close(s.lines)
	for s.in.Scan() {
		select {
		case s.lines <- line{text: s.in.Text()}:
		case <-done:
			return
		}
	}
	if err := s.in.Err(); err != nil {
		select {
		case s.lines <- line{err: fmt.Errorf("failed to read input: %w", err)}:
		case <-done:
		}
	}
}

// readLine returns the next trimmed line, errInputClosed at end of input, or
// ctx's error once ctx is done.
func (s *Shell) readLine(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case l, ok := <-s.lines:
		if !ok {
			return "", errInputClosed
		}
		if l.err != nil {
			return "", l.err
		}
		return strings.TrimSpace(l.text), nil
	}
}

func (s *Shell) endOfInput(err error) error {
	switch {
	case errors.Is(err, errInputClosed):
		fmt.Fprintln(s.out)
		return nil
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		fmt.Fprintln(s.out)
	}
	return err
}

func (s *Shell) println(msg string) {
	fmt.Fprintln(s.out, msg)
}
