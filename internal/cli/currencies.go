package cli

import (
	"fmt"
	"io"

	"currency-converter/internal/model"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var headerStyle = lipgloss.NewStyle().Bold(true)

const currenciesShortDesc string = "List supported currencies"

func newCurrenciesCmd(root *rootCommander) *cobra.Command {
	var local bool

	cmd := &cobra.Command{
		Use:   "currencies",
		Short: currenciesShortDesc,
		Long: `List the currencies the service accepts, grouped as in the form.

With --local the built-in list is printed without contacting the service.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			resp := model.Currencies()
			if !local {
				remote, err := root.client().Currencies(cmd.Context())
				if err != nil {
					return err
				}
				resp = *remote
			}
			return printCurrencies(cmd.OutOrStdout(), resp)
		},
	}

	cmd.Flags().BoolVar(&local, "local", false, "Print the built-in list without calling the service")

	return cmd
}

func printCurrencies(w io.Writer, resp model.CurrenciesResponse) error {
	groups := []struct {
		title string
		items []model.Currency
	}{
		{"Currencies", resp.Fiat},
		{"Cryptocurrencies", resp.Crypto},
	}
	for i, g := range groups {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w, headerStyle.Render(g.title)); err != nil {
			return err
		}
		for _, c := range g.items {
			if _, err := fmt.Fprintf(w, "  %s\n", c.Label()); err != nil {
				return err
			}
		}
	}
	return nil
}
