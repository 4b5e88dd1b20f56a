package cli

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const envPrefix = "COLLECTIONS"

// NewViper returns a viper instance reading COLLECTIONS_* environment variables,
// with dashes in flag names mapped to underscores.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// MustBindPFlags binds every flag of cmd to v and panics if the binding fails.
// Flags set on the command line win over the environment.
func MustBindPFlags(v *viper.Viper, cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(flag *pflag.Flag) {
		if err := v.BindPFlag(flag.Name, flag); err != nil {
			panic("failed to bind pflag: " + err.Error())
		}
	})
}

// AddLogFlags registers --log-format and --log-level.
func AddLogFlags(flags *pflag.FlagSet) {
	flags.String("log-format", "text", "log format: text or json")
	flags.String("log-level", "info", "log level: none, debug, info, warn or error")
}
