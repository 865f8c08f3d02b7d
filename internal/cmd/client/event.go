package client

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	transports "github.com/rzbill/eventreg/internal/cmd/client/transports"
)

// NewEventCommand constructs the `event` command group and subcommands.
func NewEventCommand() *cobra.Command {
	eventCmd := &cobra.Command{Use: "event", Short: "Event registry operations"}
	eventCmd.PersistentFlags().StringP("namespace", "n", "default", "Namespace")

	eventCmd.AddCommand(
		newEventCreateCommand(),
		newEventGetCommand(),
		newEventUpdateCommand(),
		newEventDeleteCommand(),
		newEventListCommand(),
		newEventCountCommand(),
		newEventAtCommand(),
		newEventHistoryCommand(),
	)
	return eventCmd
}

func namespaceFlag(cmd *cobra.Command) string {
	ns, _ := cmd.Flags().GetString("namespace")
	return ns
}

func addEventFieldFlags(cmd *cobra.Command) {
	cmd.Flags().String("name", "", "Event name")
	cmd.Flags().String("description", "", "Event description")
	cmd.Flags().Uint64("start", 0, "Start date (opaque integer, e.g. unix seconds)")
	cmd.Flags().Uint64("end", 0, "End date (opaque integer, e.g. unix seconds)")
}

func eventFieldsFromFlags(cmd *cobra.Command) transports.EventFields {
	var f transports.EventFields
	f.Name, _ = cmd.Flags().GetString("name")
	f.Description, _ = cmd.Flags().GetString("description")
	f.StartDate, _ = cmd.Flags().GetUint64("start")
	f.EndDate, _ = cmd.Flags().GetUint64("end")
	return f
}

func requireID(cmd *cobra.Command) (uint32, error) {
	if !cmd.Flags().Changed("id") {
		return 0, errors.New("--id is required")
	}
	id, _ := cmd.Flags().GetUint32("id")
	return id, nil
}

func newEventCreateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an event (status Active)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			id, err := getTransport().Create(cmd.Context(), namespaceFlag(cmd), eventFieldsFromFlags(cmd))
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), map[string]uint32{"event_id": id})
		},
	}
	addEventFieldFlags(cmd)
	return cmd
}

// printOptionalEvent prints the event or {"found":false}.
func printOptionalEvent(cmd *cobra.Command, ev *transports.Event) error {
	if ev == nil {
		return printJSON(cmd.OutOrStdout(), map[string]bool{"found": false})
	}
	return printJSON(cmd.OutOrStdout(), ev)
}

func newEventGetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get",
		Short: "Read an event by ID",
		RunE: func(cmd *cobra.Command, _ []string) error {
			id, err := requireID(cmd)
			if err != nil {
				return err
			}
			ev, err := getTransport().Read(cmd.Context(), namespaceFlag(cmd), id)
			if err != nil {
				return err
			}
			return printOptionalEvent(cmd, ev)
		},
	}
	cmd.Flags().Uint32("id", 0, "Event ID")
	return cmd
}

func newEventUpdateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Replace every mutable field of an event (no-op if absent)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			id, err := requireID(cmd)
			if err != nil {
				return err
			}
			f := eventFieldsFromFlags(cmd)
			f.Status, _ = cmd.Flags().GetString("status")
			if err := getTransport().Update(cmd.Context(), namespaceFlag(cmd), id, f); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), map[string]any{"event_id": id, "status": "updated"})
		},
	}
	addEventFieldFlags(cmd)
	cmd.Flags().Uint32("id", 0, "Event ID")
	cmd.Flags().String("status", "Active", "Status: Active|Completed")
	return cmd
}

func newEventDeleteCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete an event (no-op if absent)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			id, err := requireID(cmd)
			if err != nil {
				return err
			}
			if err := getTransport().Delete(cmd.Context(), namespaceFlag(cmd), id); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), map[string]any{"event_id": id, "status": "deleted"})
		},
	}
	cmd.Flags().Uint32("id", 0, "Event ID")
	return cmd
}

func newEventListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List live events, one JSON line each",
		RunE: func(cmd *cobra.Command, _ []string) error {
			filter, _ := cmd.Flags().GetString("filter")
			events, err := getTransport().List(cmd.Context(), namespaceFlag(cmd), filter)
			if err != nil {
				return err
			}
			for _, ev := range events {
				if err := printJSON(cmd.OutOrStdout(), ev); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().String("filter", "", `CEL filter, e.g. status == "Active" && start_date > 1700000000`)
	return cmd
}

func newEventCountCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "count",
		Short: "Number of events ever created",
		RunE: func(cmd *cobra.Command, _ []string) error {
			n, err := getTransport().Count(cmd.Context(), namespaceFlag(cmd))
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), map[string]uint32{"count": n})
		},
	}
}

func newEventAtCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "at",
		Short: "Event at positional index (index k is event ID k+1)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("index") {
				return errors.New("--index is required")
			}
			index, _ := cmd.Flags().GetUint32("index")
			ev, err := getTransport().ByIndex(cmd.Context(), namespaceFlag(cmd), index)
			if err != nil {
				return err
			}
			return printOptionalEvent(cmd, ev)
		},
	}
	cmd.Flags().Uint32("index", 0, "Zero-based position")
	return cmd
}

func newEventHistoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded changes; prints a trailing {\"next\":N} when more remain",
		RunE: func(cmd *cobra.Command, _ []string) error {
			start, _ := cmd.Flags().GetUint64("start")
			limit, _ := cmd.Flags().GetInt("limit")
			reverse, _ := cmd.Flags().GetBool("reverse")
			if limit < 0 {
				return fmt.Errorf("invalid --limit %d", limit)
			}
			items, next, err := getTransport().History(cmd.Context(), transports.HistoryRequest{
				Namespace: namespaceFlag(cmd),
				Start:     start,
				Limit:     limit,
				Reverse:   reverse,
			})
			if err != nil {
				return err
			}
			for _, it := range items {
				if err := printJSON(cmd.OutOrStdout(), it); err != nil {
					return err
				}
			}
			if next != 0 {
				return printJSON(cmd.OutOrStdout(), map[string]uint64{"next": next})
			}
			return nil
		},
	}
	cmd.Flags().Uint64("start", 0, "Start token (sequence, inclusive)")
	cmd.Flags().Int("limit", 100, "Maximum entries")
	cmd.Flags().Bool("reverse", false, "Newest first")
	return cmd
}
