package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/specialistvlad/rostergo/internal/ctxlog"
	"github.com/specialistvlad/rostergo/internal/registry"
)

// Seed applies m to reg: all courses first, then all students, then the
// enrollments each student declares. Every step goes through the registry,
// so a declaration that breaks a rule is skipped and reported. Enrollments
// are applied only for declarations that registered their student. The
// returned error joins every failure; a nil error means the whole catalog
// applied.
func Seed(ctx context.Context, reg *registry.Registry, m *Model) error {
	logger := ctxlog.FromContext(ctx)
	if m.Empty() {
		logger.Info("Catalog is empty, nothing to seed.")
		return nil
	}
	var errs []error

	for _, c := range m.Courses {
		if err := reg.AddCourse(ctx, c.Info()); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", c.Source, err))
		}
	}

	registered := make([]bool, len(m.Students))
	for i, s := range m.Students {
		if err := reg.RegisterStudent(ctx, s.Info()); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", s.Source, err))
			continue
		}
		registered[i] = true
	}
	for i, s := range m.Students {
		if !registered[i] {
			continue
		}
		for _, code := range s.Courses {
			if err := reg.Enroll(ctx, s.ID, code); err != nil {
				errs = append(errs, fmt.Errorf("%s: enrolling %q in %q: %w", s.Source, s.ID, code, err))
			}
		}
	}

	stats := reg.Stats()
	logger.Info("Catalog seeded.",
		"courses", stats.Courses, "students", stats.Students,
		"enrollments", stats.Enrollments, "failures", len(errs))
	return errors.Join(errs...)
}
