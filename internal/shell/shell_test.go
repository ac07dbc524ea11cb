package shell

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
	"testing/iotest"
	"time"

	"github.com/specialistvlad/rostergo/internal/model"
	"github.com/specialistvlad/rostergo/internal/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runScript feeds the given lines to a shell over reg and returns everything
// it printed.
func runScript(t *testing.T, reg *registry.Registry, lines ...string) string {
	t.Helper()
	if reg == nil {
		reg = registry.New()
	}
	var out bytes.Buffer
	in := strings.NewReader(strings.Join(lines, "\n") + "\n")

	err := New(reg, in, &out).Run(context.Background())

	require.NoError(t, err)
	return out.String()
}

func addCourseLines(code, capacity string) []string {
	return []string{"1", code, "Title " + code, "Desc " + code, capacity, "MWF 9-10"}
}

func seeded(t *testing.T) *registry.Registry {
	t.Helper()
	reg := registry.New()
	ctx := context.Background()
	require.NoError(t, reg.AddCourse(ctx, model.CourseInfo{Code: "CS101", Title: "Intro", Description: "Basics", Capacity: 1, Schedule: "MWF"}))
	require.NoError(t, reg.RegisterStudent(ctx, model.StudentInfo{ID: "S1", Name: "Ann"}))
	require.NoError(t, reg.RegisterStudent(ctx, model.StudentInfo{ID: "S2", Name: "Bob"}))
	return reg
}

func TestRun_ExitPrintsGoodbye(t *testing.T) {
	t.Parallel()

	out := runScript(t, nil, "7")

	assert.Contains(t, out, "Student Course Registration System:")
	assert.Contains(t, out, "Enter your choice: ")
	assert.Contains(t, out, msgGoodbye)
}

func TestRun_EndOfInputEndsSession(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	err := New(registry.New(), strings.NewReader(""), &out).Run(context.Background())

	require.NoError(t, err)
	assert.NotContains(t, out.String(), msgGoodbye)
}

func TestRun_EndOfInputMidPrompt(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	reg := registry.New()
	var out bytes.Buffer
	in := strings.NewReader("1\nCS101\nIntro\n")

	// --- Act ---
	err := New(reg, in, &out).Run(context.Background())

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, 0, reg.Stats().Courses)
}

func TestRun_ReadErrorIsReturned(t *testing.T) {
	t.Parallel()

	readErr := errors.New("boom")
	var out bytes.Buffer

	err := New(registry.New(), iotest.ErrReader(readErr), &out).Run(context.Background())

	require.ErrorIs(t, err, readErr)
}

// runBlocked starts a shell reading from a pipe and returns the pipe's
// writer, the cancel func for the session context and the channel that
// receives Run's result.
func runBlocked(t *testing.T, reg *registry.Registry, out io.Writer) (*io.PipeWriter, context.CancelFunc, <-chan error) {
	t.Helper()
	pr, pw := io.Pipe()
	t.Cleanup(func() { _ = pw.Close() })
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	result := make(chan error, 1)
	go func() { result <- New(reg, pr, out).Run(ctx) }()
	return pw, cancel, result
}

func TestRun_CancelWhileWaitingForChoice(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	_, cancel, result := runBlocked(t, registry.New(), io.Discard)
	time.Sleep(50 * time.Millisecond)

	// --- Act ---
	cancel()

	// --- Assert ---
	select {
	case err := <-result:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after the context was cancelled")
	}
}

func TestRun_CancelMidPromptAppliesNothing(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	reg := registry.New()
	pw, cancel, result := runBlocked(t, reg, io.Discard)
	_, err := io.WriteString(pw, "1\nCS101\n")
	require.NoError(t, err)

	// --- Act ---
	cancel()

	// --- Assert ---
	select {
	case err := <-result:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after the context was cancelled")
	}
	assert.Equal(t, registry.Stats{}, reg.Stats())
}

func TestRun_CancelledContextRunsNoCommand(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var out bytes.Buffer

	// --- Act ---
	err := New(registry.New(), strings.NewReader("3\n7\n"), &out).Run(ctx)

	// --- Assert ---
	require.ErrorIs(t, err, context.Canceled)
	assert.NotContains(t, out.String(), msgNoCourses)
	assert.NotContains(t, out.String(), msgGoodbye)
}

func TestRun_InvalidChoice(t *testing.T) {
	t.Parallel()

	out := runScript(t, nil, "9", "abc", "", "7")

	assert.Equal(t, 3, strings.Count(out, msgInvalidChoice))
	assert.Contains(t, out, msgGoodbye)
}

func TestRun_AddCourse(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		lines    []string
		want     string
		wantSize int
	}{
		{
			name:     "success",
			lines:    addCourseLines("CS101", "30"),
			want:     msgCourseAdded,
			wantSize: 1,
		},
		{
			name:     "non-numeric capacity",
			lines:    addCourseLines("CS101", "thirty"),
			want:     msgCapacityNotNumber,
			wantSize: 0,
		},
		{
			name:     "zero capacity",
			lines:    addCourseLines("CS101", "0"),
			want:     "Invalid input: capacity must be greater than 0.",
			wantSize: 0,
		},
		{
			name:     "empty code",
			lines:    addCourseLines("", "10"),
			want:     "Invalid input: code is required.",
			wantSize: 0,
		},
		{
			name:     "duplicate code",
			lines:    append(addCourseLines("CS101", "30"), addCourseLines("CS101", "5")...),
			want:     "A course with code CS101 already exists.",
			wantSize: 1,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			reg := registry.New()
			out := runScript(t, reg, append(tc.lines, "7")...)

			assert.Contains(t, out, tc.want)
			assert.Equal(t, tc.wantSize, reg.Stats().Courses)
		})
	}
}

func TestRun_RegisterStudent(t *testing.T) {
	t.Parallel()

	reg := registry.New()
	out := runScript(t, reg, "2", "S1", "Ann", "2", "S1", "Someone Else", "2", "", "Nobody", "7")

	assert.Equal(t, 1, strings.Count(out, msgStudentRegistered))
	assert.Contains(t, out, "A student with ID S1 is already registered.")
	assert.Contains(t, out, "Invalid input: id is required.")
	assert.Equal(t, 1, reg.Stats().Students)
}

func TestRun_ListCourses(t *testing.T) {
	t.Parallel()

	t.Run("empty", func(t *testing.T) {
		out := runScript(t, nil, "3", "7")
		assert.Contains(t, out, msgNoCourses)
	})

	t.Run("in insertion order", func(t *testing.T) {
		lines := append(addCourseLines("MATH200", "2"), addCourseLines("CS101", "3")...)
		out := runScript(t, nil, append(lines, "3", "7")...)

		first := strings.Index(out, "Course Code: MATH200, Title: Title MATH200, Description: Desc MATH200, Capacity: 2, Enrolled Students: 0, Schedule: MWF 9-10")
		second := strings.Index(out, "Course Code: CS101,")
		require.NotEqual(t, -1, first)
		require.NotEqual(t, -1, second)
		assert.Less(t, first, second)
		assert.NotContains(t, out, msgNoCourses)
	})
}

func TestRun_EnrollScenario(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	reg := seeded(t)

	// --- Act ---
	out := runScript(t, reg,
		"4", "S1", "CS101", // success
		"4", "S2", "CS101", // full
		"4", "S1", "CS101", // already registered
		"4", "S1", "NOPE", // unknown course
		"4", "S9", "CS101", // unknown student
		"4", "S9", "NOPE", // both unknown: course wins
		"7",
	)

	// --- Assert ---
	assert.Equal(t, 1, strings.Count(out, msgEnrolled))
	assert.Equal(t, 1, strings.Count(out, msgEnrollFailed))
	assert.Equal(t, 1, strings.Count(out, msgAlreadyRegistered))
	assert.Equal(t, 2, strings.Count(out, msgCourseNotFound))
	assert.Equal(t, 1, strings.Count(out, msgStudentNotFound))

	snap, err := reg.Course("CS101")
	require.NoError(t, err)
	assert.Equal(t, 1, snap.Enrolled)
}

func TestRun_DropScenario(t *testing.T) {
	t.Parallel()

	reg := seeded(t)
	out := runScript(t, reg,
		"5", "S1", "CS101", // not registered
		"4", "S1", "CS101",
		"5", "S1", "CS101", // success
		"5", "S1", "GONE",
		"7",
	)

	assert.Equal(t, 1, strings.Count(out, msgDropFailed))
	assert.Equal(t, 1, strings.Count(out, msgDropped))
	assert.Equal(t, 1, strings.Count(out, msgCourseNotFound))

	snap, err := reg.Course("CS101")
	require.NoError(t, err)
	assert.Equal(t, 0, snap.Enrolled)
}

func TestRun_DisplayStudentCourses(t *testing.T) {
	t.Parallel()

	reg := seeded(t)
	out := runScript(t, reg,
		"6", "S1",
		"4", "S1", "CS101",
		"6", "S1",
		"6", "S9",
		"7",
	)

	assert.Equal(t, 2, strings.Count(out, "Student ID: S1, Name: Ann"))
	assert.Contains(t, out, "Course Code: CS101, Title: Intro, Description: Basics, Capacity: 1, Enrolled Students: 1, Schedule: MWF")
	assert.Contains(t, out, msgStudentNotFound)
}

func TestInvalidReason(t *testing.T) {
	wrapped := fmt.Errorf("course %q: %w", "X", fmt.Errorf("%w: capacity must be greater than 0", model.ErrInvalidInput))
	assert.Equal(t, "capacity must be greater than 0", invalidReason(wrapped))
	assert.Equal(t, "plain", invalidReason(errors.New("plain")))
}
