package main

import (
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"ats-backend/internal/shared/telemetry"
)

const (
	app       = "atsscore"
	envPrefix = "ATSSCORE"
)

func newRootCmd(in io.Reader, out io.Writer) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	rootCmd := &cobra.Command{
		Use:           app,
		Short:         "atsscore rates how well a resume will parse in an applicant tracking system",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			level := "warn"
			if v.GetBool("debug") {
				level = "debug"
			}
			return telemetry.Init(telemetry.Options{
				JSON:   v.GetBool("json"),
				Level:  level,
				Output: "stderr",
			})
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			telemetry.Sync()
		},
	}
	rootCmd.SetIn(in)
	rootCmd.SetOut(out)

	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	_ = v.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = v.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))

	rootCmd.AddCommand(newScoreCmd(v), newVersionCmd())
	return rootCmd
}
