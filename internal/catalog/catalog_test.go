package catalog

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/specialistvlad/rostergo/internal/ctxlog"
	"github.com/specialistvlad/rostergo/internal/model"
	"github.com/specialistvlad/rostergo/internal/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// lineDecoder is a toy format: each line is "course CODE CAPACITY" or
// "student ID".
type lineDecoder struct {
	ext string
}

func (d lineDecoder) Extensions() []string { return []string{d.ext} }

func (d lineDecoder) DecodeFile(_ context.Context, path string) (*Model, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	m := &Model{}
	for _, line := range strings.Split(strings.TrimSpace(string(raw)), "\n") {
		fields := strings.Fields(line)
		switch {
		case len(fields) == 0:
		case len(fields) == 3 && fields[0] == "course":
			m.Courses = append(m.Courses, &Course{Code: fields[1], Capacity: len(fields[2]), Source: path})
		case len(fields) == 2 && fields[0] == "student":
			m.Students = append(m.Students, &Student{ID: fields[1], Source: path})
		default:
			return nil, errors.New("bad line: " + line)
		}
	}
	return m, nil
}

func TestFileLoader_MergesInLexicalOrder(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.roster"), []byte("course B xx\nstudent S2"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.roster"), []byte("course A xxx"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ignored.txt"), []byte("garbage"), 0644))
	loader := NewLoader(lineDecoder{ext: ".roster"})

	// --- Act ---
	m, err := loader.Load(context.Background(), dir)

	// --- Assert ---
	require.NoError(t, err)
	require.Len(t, m.Courses, 2)
	assert.Equal(t, "A", m.Courses[0].Code)
	assert.Equal(t, 3, m.Courses[0].Capacity)
	assert.Equal(t, "B", m.Courses[1].Code)
	require.Len(t, m.Students, 1)
	assert.Equal(t, filepath.Join(dir, "b.roster"), m.Students[0].Source)
}

func TestFileLoader_PropagatesDecodeError(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.roster"), []byte("nonsense here"), 0644))

	_, err := NewLoader(lineDecoder{ext: ".roster"}).Load(context.Background(), dir)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad line")
}

func TestFileLoader_EmptyDirectory(t *testing.T) {
	t.Parallel()

	m, err := NewLoader(lineDecoder{ext: ".roster"}).Load(context.Background(), t.TempDir())

	require.NoError(t, err)
	assert.True(t, m.Empty())
}

func TestFileLoader_WarnsAboutFilesThatDeclareNothing(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.roster"), []byte("course A xx"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "blank.roster"), []byte("\n\n"), 0644))
	var logs bytes.Buffer
	ctx := ctxlog.WithLogger(context.Background(), slog.New(slog.NewTextHandler(&logs, nil)))

	// --- Act ---
	m, err := NewLoader(lineDecoder{ext: ".roster"}).Load(ctx, dir)

	// --- Assert ---
	require.NoError(t, err)
	require.Len(t, m.Courses, 1)
	assert.Contains(t, logs.String(), "Catalog file declares nothing.")
	assert.Contains(t, logs.String(), "blank.roster")
	assert.NotContains(t, logs.String(), filepath.Join(dir, "a.roster"))
}

func TestFileLoader_NoDecoders(t *testing.T) {
	t.Parallel()

	_, err := NewLoader().Load(context.Background(), t.TempDir())

	require.Error(t, err)
}

func TestSeed_AppliesEverything(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	ctx := context.Background()
	reg := registry.New()
	m := &Model{
		Courses: []*Course{
			{Code: "CS101", Title: "Intro", Capacity: 2, Source: "a.hcl"},
			{Code: "MATH200", Title: "Calculus", Capacity: 1, Source: "a.hcl"},
		},
		Students: []*Student{
			{ID: "S1", Name: "Ada", Courses: []string{"CS101", "MATH200"}, Source: "b.hcl"},
			{ID: "S2", Name: "Alan", Courses: []string{"CS101"}, Source: "b.hcl"},
		},
	}

	// --- Act ---
	err := Seed(ctx, reg, m)

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, registry.Stats{Courses: 2, Students: 2, Enrollments: 3}, reg.Stats())
	s1, err := reg.StudentCourses("S1")
	require.NoError(t, err)
	require.Len(t, s1.Courses, 2)
	assert.Equal(t, "CS101", s1.Courses[0].Code)
}

func TestSeed_ReportsEveryFailure(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	ctx := context.Background()
	reg := registry.New()
	m := &Model{
		Courses: []*Course{
			{Code: "CS101", Capacity: 1, Source: "a.hcl"},
			{Code: "CS101", Capacity: 9, Source: "b.hcl"},
			{Code: "BAD", Capacity: 0, Source: "b.hcl"},
		},
		Students: []*Student{
			{ID: "S1", Courses: []string{"CS101"}, Source: "c.hcl"},
			{ID: "S2", Courses: []string{"CS101", "NOPE"}, Source: "c.hcl"},
		},
	}

	// --- Act ---
	err := Seed(ctx, reg, m)

	// --- Assert ---
	require.Error(t, err)
	assert.ErrorIs(t, err, registry.ErrDuplicateCourse)
	assert.ErrorIs(t, err, model.ErrInvalidInput)
	assert.ErrorIs(t, err, model.ErrCourseFull)
	assert.ErrorIs(t, err, registry.ErrCourseNotFound)
	assert.Contains(t, err.Error(), "b.hcl")

	snap, err := reg.Course("CS101")
	require.NoError(t, err)
	assert.Equal(t, 1, snap.Capacity, "the first declaration wins")
	assert.Equal(t, 1, snap.Enrolled)
}

func TestSeed_UsesStoredKeysForEnrollments(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	ctx := context.Background()
	reg := registry.New()
	m := &Model{
		Courses:  []*Course{{Code: " CS101 ", Capacity: 2, Source: "a.hcl"}},
		Students: []*Student{{ID: " S1 ", Courses: []string{" CS101"}, Source: "a.hcl"}},
	}

	// --- Act ---
	err := Seed(ctx, reg, m)

	// --- Assert ---
	require.NoError(t, err)
	s1, err := reg.StudentCourses("S1")
	require.NoError(t, err)
	require.Len(t, s1.Courses, 1)
	assert.Equal(t, "CS101", s1.Courses[0].Code)
}

func TestSeed_SkipsEnrollmentsOfRejectedStudents(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	ctx := context.Background()
	reg := registry.New()
	m := &Model{
		Courses: []*Course{
			{Code: "CS101", Capacity: 5, Source: "a.hcl"},
			{Code: "ART100", Capacity: 5, Source: "a.hcl"},
		},
		Students: []*Student{
			{ID: "S1", Name: "Ann", Courses: []string{"CS101"}, Source: "a.hcl"},
			{ID: "S1", Name: "Imposter", Courses: []string{"ART100", "GHOST"}, Source: "b.hcl"},
			{ID: "", Courses: []string{"CS101"}, Source: "b.hcl"},
		},
	}

	// --- Act ---
	err := Seed(ctx, reg, m)

	// --- Assert ---
	require.Error(t, err)
	assert.ErrorIs(t, err, registry.ErrDuplicateStudent)
	assert.ErrorIs(t, err, model.ErrInvalidInput)
	assert.NotErrorIs(t, err, registry.ErrCourseNotFound, "a rejected declaration must not enroll")

	s1, err := reg.StudentCourses("S1")
	require.NoError(t, err)
	assert.Equal(t, "Ann", s1.Name)
	require.Len(t, s1.Courses, 1)
	assert.Equal(t, "CS101", s1.Courses[0].Code)
	assert.Equal(t, registry.Stats{Courses: 2, Students: 1, Enrollments: 1}, reg.Stats())
}

func TestSeed_EmptyModelIsANoOp(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	var logs bytes.Buffer
	ctx := ctxlog.WithLogger(context.Background(), slog.New(slog.NewTextHandler(&logs, nil)))
	reg := registry.New()

	// --- Act ---
	err := Seed(ctx, reg, &Model{})

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, registry.Stats{}, reg.Stats())
	assert.Contains(t, logs.String(), "Catalog is empty, nothing to seed.")
	assert.NotContains(t, logs.String(), "Catalog seeded.")
}
