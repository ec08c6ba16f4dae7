package cmd

import (
	"fmt"
	"strings"

	"github.com/nibzard/dayrate/internal/tracker"
)

// workspaceCommand dispatches ws ls|add|rm.
func (e *env) workspaceCommand(args []string) error {
	action := "ls"
	if len(args) > 0 {
		action, args = args[0], args[1:]
	}
	switch action {
	case "ls", "list":
		return e.workspaceList()
	case "add", "new":
		return e.workspaceAdd(strings.Join(args, " "))
	case "rm", "delete":
		return e.workspaceRemove(strings.Join(args, " "))
	default:
		return fmt.Errorf("unknown ws action %q (want ls, add, or rm)", action)
	}
}

func (e *env) workspaceList() error {
	store := e.open().Store
	for _, ws := range store.Workspaces() {
		n := len(store.TasksInWorkspace(ws))
		fmt.Printf("%s (%d %s)\n", ws, n, plural(n, "task", "tasks"))
	}
	return nil
}

func (e *env) workspaceAdd(name string) error {
	sess := e.open()
	if err := sess.Store.CreateWorkspace(name); err != nil {
		return err
	}
	if err := sess.Commit(); err != nil {
		return err
	}
	fmt.Printf("Created workspace %q\n", name)
	return nil
}

func (e *env) workspaceRemove(name string) error {
	sess := e.open()
	moved, err := sess.Store.DeleteWorkspace(name)
	if err != nil {
		return err
	}
	if err := sess.Commit(); err != nil {
		return err
	}
	if moved > 0 {
		fmt.Printf("Deleted workspace %q, moved %d %s to %s\n", name, moved, plural(moved, "task", "tasks"), tracker.Uncategorized)
		return nil
	}
	fmt.Printf("Deleted workspace %q\n", name)
	return nil
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
