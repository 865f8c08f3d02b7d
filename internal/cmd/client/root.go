package client

import (
	"github.com/spf13/cobra"
)

// NewRoot constructs a root Cobra command for the eventreg client.
// It registers the event and namespace command groups.
func NewRoot() *cobra.Command {
	root := &cobra.Command{
		Use:   "eventreg",
		Short: "eventreg client commands",
	}
	root.AddCommand(NewEventCommand())
	root.AddCommand(NewNamespaceCommand())
	return root
}
