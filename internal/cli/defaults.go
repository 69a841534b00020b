package cli

import (
	"fmt"

	"github.com/pfrederiksen/henley-schedule/internal/filter"
	"github.com/pfrederiksen/henley-schedule/internal/preferences"
	"github.com/pfrederiksen/henley-schedule/internal/timetable"
	"github.com/spf13/cobra"
)

// newDefaultsCmd creates the "defaults" command group
func newDefaultsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "defaults",
		Short: "Show, save or clear the default options",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the saved defaults",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store := preferences.NewFileStorage(a.cfg.ConfigDir)
			d, err := store.Load()
			if err != nil {
				return err
			}
			writeDefaults(cmd, store.Path(), d)
			return nil
		},
	})

	var (
		crew   []string
		gmt    int
		boat   string
		trophy string
	)
	save := &cobra.Command{
		Use:   "save",
		Short: "Save default options (only the given flags are changed)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store := preferences.NewFileStorage(a.cfg.ConfigDir)
			current, err := store.Load()
			if err != nil {
				return err
			}

			var update preferences.Defaults
			flags := cmd.Flags()
			if flags.Changed("crew") {
				update.Crew = filter.ParseCrew(crew)
			}
			if flags.Changed("gmt") {
				if err := timetable.ValidateOffset(gmt); err != nil {
					return err
				}
				update.GMT = &gmt
			}
			if flags.Changed("boat") {
				update.Boat = boat
			}
			if flags.Changed("trophy") {
				update.Trophy = trophy
			}
			if update.IsEmpty() {
				return fmt.Errorf("nothing to save: pass at least one of --crew, --gmt, --boat, --trophy")
			}

			merged := current.Merge(update)
			if err := store.Save(merged); err != nil {
				return err
			}
			writeDefaults(cmd, store.Path(), merged)
			return nil
		},
	}
	save.Flags().StringArrayVar(&crew, "crew", nil, "Default crew name (repeat for several)")
	save.Flags().IntVar(&gmt, "gmt", defaultGMTOffset, "Default GMT offset")
	save.Flags().StringVar(&boat, "boat", "", "Default boat class")
	save.Flags().StringVar(&trophy, "trophy", "", "Default trophy")
	cmd.AddCommand(save)

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove the saved defaults",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store := preferences.NewFileStorage(a.cfg.ConfigDir)
			if err := store.Clear(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Defaults cleared.")
			return nil
		},
	})

	return cmd
}

func writeDefaults(cmd *cobra.Command, path string, d preferences.Defaults) {
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Defaults file: %s\n", path)
	if d.IsEmpty() {
		fmt.Fprintln(w, "No defaults saved.")
		return
	}
	if len(d.Crew) > 0 {
		fmt.Fprintf(w, "  crew:   %s\n", joinComma(d.Crew))
	}
	if d.GMT != nil {
		fmt.Fprintf(w, "  gmt:    %s\n", timetable.OffsetLabel(*d.GMT))
	}
	if d.Boat != "" {
		fmt.Fprintf(w, "  boat:   %s\n", d.Boat)
	}
	if d.Trophy != "" {
		fmt.Fprintf(w, "  trophy: %s\n", d.Trophy)
	}
}

// newTrophiesCmd creates the "trophies" command
func newTrophiesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "trophies",
		Short: "List the trophy to boat class table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := a.loadTable()
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(table))
			for _, e := range table {
				rows = append(rows, []string{e.Fragment, e.Boat})
			}
			writeColumns(cmd.OutOrStdout(), []string{"Trophy", "Boat"}, rows, nil)
			return nil
		},
	}
}
