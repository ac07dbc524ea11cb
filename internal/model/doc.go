// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package model defines the two roster entities, Course and Student, together
// with their input records, read-only snapshots and the domain errors raised
// when a capacity or membership rule is violated.
//
// # Core Concepts
//
//   - Course: an offering with a fixed capacity and a live enrollment counter.
//     The counter only moves through TryEnroll and TryDrop and always stays
//     within [0, capacity].
//
//   - Student: an enrollee holding an ordered, duplicate-free list of handles
//     to the courses it is registered in. Every handle it holds has been
//     counted by the course it points to.
//
//   - Snapshots: CourseSnapshot and StudentSnapshot are value copies handed to
//     presentation code. Mutating a snapshot never touches the entity.
//
// Entities in this package do not know about each other's owners. Lookup by
// code or id, and the guarantee that handles never dangle, belong to the
// registry package.
package model
