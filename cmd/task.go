package cmd

import (
	"flag"
	"fmt"
	"slices"
	"strings"

	"github.com/nibzard/dayrate/internal/tracker"
)

// taskCommand dispatches task ls|add|edit|rm.
func (e *env) taskCommand(args []string) error {
	action := "ls"
	if len(args) > 0 {
		action, args = args[0], args[1:]
	}
	switch action {
	case "ls", "list":
		return e.taskList(args)
	case "add", "new":
		return e.taskAdd(args)
	case "edit":
		return e.taskEdit(args)
	case "rm", "delete":
		return e.taskRemove(args)
	default:
		return fmt.Errorf("unknown task action %q (want ls, add, edit, or rm)", action)
	}
}

func (e *env) taskList(args []string) error {
	fs := newFlagSet("task ls")
	workspace := fs.String("ws", "", "Only list tasks of this workspace")
	if _, err := parseArgs(fs, args); err != nil {
		return err
	}

	store := e.open().Store
	workspaces := store.Workspaces()
	if *workspace != "" {
		if !store.HasWorkspace(*workspace) {
			return fmt.Errorf("%w: %q", tracker.ErrWorkspaceNotFound, *workspace)
		}
		workspaces = []string{*workspace}
	} else {
		// Tasks whose workspace was removed are still listed.
		for _, t := range store.Tasks() {
			if !slices.Contains(workspaces, t.Workspace) {
				workspaces = append(workspaces, t.Workspace)
			}
		}
	}

	for _, ws := range workspaces {
		tasks := store.TasksInWorkspace(ws)
		fmt.Println(ws)
		if len(tasks) == 0 {
			fmt.Println("  (no tasks)")
			continue
		}
		for _, t := range tasks {
			printTask(t)
		}
	}
	return nil
}

func printTask(t tracker.Task) {
	fmt.Printf("  %s  %s\n", shortID(t.ID), t.Description)
	if t.Criteria != "" {
		fmt.Printf("            %s\n", t.Criteria)
	}
}

func (e *env) taskAdd(args []string) error {
	fs := newFlagSet("task add")
	workspace := fs.String("ws", "", "Workspace (default: first workspace)")
	criteria := fs.String("criteria", "", "Rating criteria")
	words, err := parseArgs(fs, args)
	if err != nil {
		return err
	}

	sess := e.open()
	store := sess.Store
	ws := *workspace
	if ws == "" {
		if all := store.Workspaces(); len(all) > 0 {
			ws = all[0]
		}
	} else if !store.HasWorkspace(ws) {
		return fmt.Errorf("%w: %q", tracker.ErrWorkspaceNotFound, ws)
	}

	task, err := store.AddTask(strings.Join(words, " "), ws)
	if err != nil {
		return err
	}
	if *criteria != "" {
		if err := store.EditTask(task.ID, task.Description, *criteria); err != nil {
			return err
		}
	}
	if err := sess.Commit(); err != nil {
		return err
	}
	fmt.Printf("Added task %s %q to %s\n", shortID(task.ID), task.Description, ws)
	return nil
}

func (e *env) taskEdit(args []string) error {
	fs := newFlagSet("task edit")
	desc := fs.String("desc", "", "New description")
	criteria := fs.String("criteria", "", "New rating criteria")
	positional, err := parseArgs(fs, args)
	if err != nil {
		return err
	}
	if len(positional) != 1 {
		return fmt.Errorf("usage: task edit <task> [-desc text] [-criteria text]")
	}
	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if !set["desc"] && !set["criteria"] {
		return fmt.Errorf("nothing to change: pass -desc and/or -criteria")
	}

	sess := e.open()
	task, err := resolveTask(sess.Store, positional[0])
	if err != nil {
		return err
	}
	newDesc, newCriteria := task.Description, task.Criteria
	if set["desc"] {
		newDesc = *desc
	}
	if set["criteria"] {
		newCriteria = *criteria
	}
	if err := sess.Store.EditTask(task.ID, newDesc, newCriteria); err != nil {
		return err
	}
	if err := sess.Commit(); err != nil {
		return err
	}
	fmt.Printf("Updated task %s\n", shortID(task.ID))
	return nil
}

func (e *env) taskRemove(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: task rm <task>")
	}
	sess := e.open()
	task, err := resolveTask(sess.Store, args[0])
	if err != nil {
		return err
	}
	if err := sess.Store.DeleteTask(task.ID); err != nil {
		return err
	}
	if err := sess.Commit(); err != nil {
		return err
	}
	fmt.Printf("Deleted task %s %q\n", shortID(task.ID), task.Description)
	return nil
}
