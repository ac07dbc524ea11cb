package testutil

import (
	"strings"
	"testing"

	"github.com/specialistvlad/rostergo/internal/model"
	"github.com/stretchr/testify/require"
)

// AssertSaid checks that the session printed msg exactly times times. Menu
// and prompt text are counted too, so pick messages that only results print.
func AssertSaid(t *testing.T, result *HarnessResult, msg string, times int) {
	t.Helper()
	require.Equal(t, times, strings.Count(result.Output, msg),
		"expected %q %d time(s) in session output:\n%s", msg, times, result.Output)
}

// AssertSaidInOrder checks that every message appears in the session output
// after the previous one.
func AssertSaidInOrder(t *testing.T, result *HarnessResult, msgs ...string) {
	t.Helper()
	rest := result.Output
	for _, msg := range msgs {
		i := strings.Index(rest, msg)
		require.NotEqual(t, -1, i, "expected %q after the previous messages in session output:\n%s", msg, result.Output)
		rest = rest[i+len(msg):]
	}
}

// AssertEnrolled checks the enrolled count of a course in the App's registry.
func AssertEnrolled(t *testing.T, result *HarnessResult, code string, want int) {
	t.Helper()
	require.NotNil(t, result.App, "session did not start: %v", result.Err)
	snap, err := result.App.Registry().Course(code)
	require.NoError(t, err)
	require.Equal(t, want, snap.Enrolled, "enrolled count of %s", code)
}

// StudentCourseCodes returns the codes a student is registered for, in order.
func StudentCourseCodes(t *testing.T, result *HarnessResult, studentID string) []string {
	t.Helper()
	require.NotNil(t, result.App, "session did not start: %v", result.Err)
	snap, err := result.App.Registry().StudentCourses(studentID)
	require.NoError(t, err)
	return codes(snap.Courses)
}

func codes(courses []model.CourseSnapshot) []string {
	out := make([]string, 0, len(courses))
	for _, c := range courses {
		out = append(out, c.Code)
	}
	return out
}
