// Package projector computes the filtered and sorted view of a task collection.
package projector

import (
	"cmp"
	"slices"
	"strings"

	"task-list/internal/models"
)

// Project returns the tasks matching query, ordered by priority (high first)
// and then by creation time, newest first. The match is a case-insensitive
// substring test over title, description and priority; an empty query matches
// everything. The input slice is not modified.
func Project(tasks []models.Task, query string) []models.Task {
	q := strings.ToLower(query)
	out := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if Matches(t, q) {
			out = append(out, t)
		}
	}
	slices.SortStableFunc(out, Compare)
	return out
}

// Matches reports whether the lowercased query occurs in the task's title,
// description or priority.
func Matches(t models.Task, lowerQuery string) bool {
	return strings.Contains(strings.ToLower(t.Title), lowerQuery) ||
		strings.Contains(strings.ToLower(t.Description), lowerQuery) ||
		strings.Contains(strings.ToLower(string(t.Priority)), lowerQuery)
}

// Compare orders a before b when it has the higher priority, or the same
// priority and a later createdAt. A zero createdAt sorts as the epoch.
func Compare(a, b models.Task) int {
	if d := a.Priority.Rank() - b.Priority.Rank(); d != 0 {
		return d
	}
	return cmp.Compare(createdMillis(b), createdMillis(a))
}

func createdMillis(t models.Task) int64 {
	if t.CreatedAt.IsZero() {
		return 0
	}
	return t.CreatedAt.UnixMilli()
}
