package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/LISSConsulting/LISSTech.Debugshell/internal/config"
	"github.com/LISSConsulting/LISSTech.Debugshell/internal/source"
	"github.com/LISSConsulting/LISSTech.Debugshell/internal/store"
)

func initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Scaffold dbgsh.toml and ignore .dbgsh/ in the current directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("get working directory: %w", err)
			}
			created, err := config.ScaffoldProject(dir)
			if err != nil {
				return err
			}
			if len(created) == 0 {
				fmt.Println("All files already exist — nothing to create.")
				return nil
			}
			for _, path := range created {
				fmt.Printf("Created %s\n", path)
			}
			return nil
		},
	}
}

func sourcesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sources [dir]",
		Short: "List the source files the shell would show",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags, err := readFlags(cmd, args)
			if err != nil {
				return err
			}
			cfg, err := loadConfig(flags.ConfigPath, flags.Dir)
			if err != nil {
				return err
			}
			files, err := source.List(cfg.Project.Root, cfg.Project.Extensions)
			if err != nil {
				return err
			}
			fmt.Print(formatSourceList(cfg.Project.Root, files))
			return nil
		},
	}
	cmd.Flags().String("config", "", "path to dbgsh.toml")
	return cmd
}

func historyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history <journal>",
		Short: "Print a session journal and the state it replays to",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := store.ReadJournal(args[0])
			if err != nil {
				return err
			}
			fmt.Print(formatHistory(entries))
			return nil
		},
	}
}

// formatSourceList renders the discovered sources for the sources command.
func formatSourceList(root string, files []source.File) string {
	if len(files) == 0 {
		return fmt.Sprintf("No sources found in %s\n", root)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Sources (%d)\n", len(files))
	b.WriteString("───────\n")
	for _, f := range files {
		ext := f.Ext
		if ext == "" {
			ext = "-"
		}
		fmt.Fprintf(&b, "  %-5s %s\n", ext, f.ID)
	}
	return b.String()
}

// formatHistory renders journal entries followed by a summary of the state
// they replay to.
func formatHistory(entries []store.Entry) string {
	if len(entries) == 0 {
		return "Journal is empty\n"
	}
	var b strings.Builder
	b.WriteString("History\n")
	b.WriteString("───────\n")
	for _, e := range entries {
		fmt.Fprintf(&b, "  %4d  %s  %-20s %s\n",
			e.Seq, e.Time.Format("15:04:05"), e.Action.Kind, describeAction(e.Action))
	}

	st := store.Replay(entries)
	bps := 0
	for _, lines := range st.Breakpoints {
		bps += len(lines)
	}
	selected := st.SelectedSourceID
	if selected == "" {
		selected = "—"
	}
	b.WriteString("\nFinal state\n")
	fmt.Fprintf(&b, "  %-12s %d\n", "sources:", len(st.Sources))
	fmt.Fprintf(&b, "  %-12s %s\n", "selected:", selected)
	fmt.Fprintf(&b, "  %-12s %d\n", "breakpoints:", bps)
	return b.String()
}

func describeAction(a store.Action) string {
	switch a.Kind {
	case store.ActSelectSource:
		if a.SourceID == "" {
			return "(cleared)"
		}
		return a.SourceID
	case store.ActSetActiveSearch:
		return a.Search
	case store.ActTogglePaneCollapse:
		return string(a.Side)
	case store.ActSetSources:
		return fmt.Sprintf("%d files", len(a.Sources))
	case store.ActToggleBreakpoint:
		return fmt.Sprintf("%s:%d", a.SourceID, a.Line)
	default:
		return ""
	}
}
