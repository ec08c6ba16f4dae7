// Package tracker holds the in-memory task, workspace, and rating model.
//
// A Store is the single source of truth for one user's data:
//
//	tasks       id -> Task{Description, Workspace, Criteria}
//	ratings     "YYYY-MM-DD" -> task id -> 1..5
//	workspaces  ordered list of unique names
//
// # Rules
//
//   - At least one workspace exists once the store has been seeded.
//     DeleteWorkspace refuses to remove the last one.
//   - Deleting a workspace keeps its tasks and moves them to the
//     Uncategorized workspace, which is added to the list when needed.
//   - Ratings are integers in 1..5. Anything else is never stored.
//     Re-rating overwrites the previous value.
//   - Ratings cannot be recorded for dates after the store clock's today.
//   - Deleting a task removes its ratings from every day.
//
// Every operation validates first and mutates second, so a returned
// error means the store is unchanged. Store is not safe for concurrent use.
package tracker
