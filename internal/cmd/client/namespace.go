package client

import (
	"github.com/spf13/cobra"
)

// NewNamespaceCommand constructs the `namespace` command group.
func NewNamespaceCommand() *cobra.Command {
	nsCmd := &cobra.Command{Use: "namespace", Aliases: []string{"ns"}, Short: "Namespace operations"}

	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a namespace",
		RunE: func(cmd *cobra.Command, _ []string) error {
			name, _ := cmd.Flags().GetString("name")
			if err := getTransport().CreateNamespace(cmd.Context(), name); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), map[string]string{"namespace": name, "status": "created"})
		},
	}
	createCmd.Flags().String("name", "default", "Namespace name")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List namespaces",
		RunE: func(cmd *cobra.Command, _ []string) error {
			names, err := getTransport().ListNamespaces(cmd.Context())
			if err != nil {
				return err
			}
			if names == nil {
				names = []string{}
			}
			return printJSON(cmd.OutOrStdout(), map[string]any{"namespaces": names})
		},
	}

	nsCmd.AddCommand(createCmd, listCmd)
	return nsCmd
}
