// Package cli - команды консольного клиента converter (cobra + viper).
package cli

import (
	"os"
	"strings"
	"time"

	"currency-converter/pkg/client"
	"currency-converter/pkg/logger"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	defaultServer  = "http://localhost:8080"
	defaultTimeout = 10 * time.Second
	envPrefix      = "CONVERTER"
)

const rootLongDesc string = `Console client for the currency converter service.

Commands:
  converter convert --from USD --to EUR --amount 100
  converter currencies
  converter form

Settings resolve as flag > environment (CONVERTER_SERVER, CONVERTER_TIMEOUT,
CONVERTER_DEBUG) > default.`

const rootShortDesc string = "Currency converter client"

// rootCommander - общие настройки для всех подкоманд
type rootCommander struct {
	v      *viper.Viper
	logger *zap.Logger
}

func NewRootCmd() *cobra.Command {
	cmder := &rootCommander{v: newViper()}

	cmd := &cobra.Command{
		Use:           "converter",
		Short:         rootShortDesc,
		Long:          rootLongDesc,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			cmder.logger = logger.NewWithWriter(cmder.v.GetBool("debug"), cmd.ErrOrStderr())
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if cmder.logger != nil {
				_ = cmder.logger.Sync()
			}
		},
	}

	cmd.PersistentFlags().StringP("server", "s", defaultServer, "Base URL of the converter service")
	cmd.PersistentFlags().Duration("timeout", defaultTimeout, "Request timeout")
	cmd.PersistentFlags().BoolP("debug", "d", false, "Enable debug logging")
	_ = cmder.v.BindPFlags(cmd.PersistentFlags())

	cmd.AddCommand(newConvertCmd(cmder))
	cmd.AddCommand(newCurrenciesCmd(cmder))
	cmd.AddCommand(newFormCmd(cmder))

	return cmd
}

// newViper: CONVERTER_SERVER, CONVERTER_TIMEOUT, CONVERTER_DEBUG
func newViper() *viper.Viper {
	v := viper.New()
	v.SetDefault("server", defaultServer)
	v.SetDefault("timeout", defaultTimeout)
	v.SetDefault("debug", false)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

func (c *rootCommander) client() *client.Client {
	log := c.logger
	if log == nil {
		log = logger.NewWithWriter(false, os.Stderr)
	}
	return client.New(c.v.GetString("server"), c.v.GetDuration("timeout"), log.Named("client"))
}
