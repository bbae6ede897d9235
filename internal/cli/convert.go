package cli

import (
	"fmt"

	"currency-converter/internal/form"

	"github.com/spf13/cobra"
)

const convertLongDesc string = `Convert an amount between two supported currencies.

Input is checked locally the same way the web form does it, so an invalid
amount or an unknown currency never reaches the service.

Examples:
  converter convert --amount 100 --from USD --to EUR
  converter convert -a 0.5 -f BTC -t USD`

const convertShortDesc string = "Convert an amount"

type convertCommander struct {
	root   *rootCommander
	amount string
	from   string
	to     string
}

func newConvertCmd(root *rootCommander) *cobra.Command {
	cmder := &convertCommander{root: root}

	cmd := &cobra.Command{
		Use:   "convert",
		Short: convertShortDesc,
		Long:  convertLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmder.run(cmd)
		},
	}

	cmd.Flags().StringVarP(&cmder.amount, "amount", "a", form.DefaultAmount, "Amount to convert")
	cmd.Flags().StringVarP(&cmder.from, "from", "f", form.DefaultFrom, "Source currency code")
	cmd.Flags().StringVarP(&cmder.to, "to", "t", form.DefaultTo, "Target currency code")

	return cmd
}

func (c *convertCommander) run(cmd *cobra.Command) error {
	f := form.New()
	f.SetAmount(c.amount)
	if err := f.SetFrom(c.from); err != nil {
		return err
	}
	if err := f.SetTo(c.to); err != nil {
		return err
	}

	if err := f.Convert(cmd.Context(), c.root.client()); err != nil {
		return err
	}

	_, err := fmt.Fprintln(cmd.OutOrStdout(), f.Summary())
	return err
}
