package cli

import (
	"currency-converter/internal/tui"

	"github.com/spf13/cobra"
)

func newFormCmd(root *rootCommander) *cobra.Command {
	return &cobra.Command{
		Use:   "form",
		Short: "Interactive conversion form",
		Long: `Open the conversion form in the terminal.

tab/shift+tab move between fields, ←/→ pick a currency, ctrl+s swaps
the pair, enter converts, esc quits.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return tui.Run(cmd.Context(), root.client())
		},
	}
}
