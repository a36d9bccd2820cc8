package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/PressureTank/authdemo/backend/config"
)

func RootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "authdemo",
		Short:        "authdemo is an in-memory user registry with register, login and list endpoints",
		Long:         ``,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			initConfig()
		},
	}

	cmd.PersistentFlags().String("log-level", config.DefaultLogLevel, "set the log level (info or debug)")

	cmd.AddCommand(APICmd())

	return cmd
}

func InitAndExecute() {
	if err := RootCmd().Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func initConfig() {
	config.BindEnv(viper.GetViper())
}
