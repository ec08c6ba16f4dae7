package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/nibzard/dayrate/internal/config"
)

// configCommand prints the effective configuration with sources.
func (e *env) configCommand(args []string) error {
	action := "show"
	if len(args) > 0 {
		action = args[0]
	}
	switch action {
	case "show":
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "KEY\tVALUE\tSOURCE")
		for _, f := range e.sources.Fields() {
			fmt.Fprintf(w, "%s\t%s\t%s\n", f.Name, f.Value, f.Source)
		}
		if err := w.Flush(); err != nil {
			return err
		}
		if file := e.sources.ConfigFile(); file != "" {
			fmt.Printf("\nConfig file: %s\n", file)
		}
		return nil
	case "example":
		fmt.Print(config.ExampleConfig())
		return nil
	case "path":
		fmt.Println(e.sources.ConfigFile())
		return nil
	default:
		return fmt.Errorf("unknown config action %q (want show, example, or path)", action)
	}
}
