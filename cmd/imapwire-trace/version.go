package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags; left as a default for local
// builds.
var version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "print the imapwire-trace version",
	Run: func(cmd *cobra.Command, args []string) {
		logrus.WithField("version", version).Info("imapwire-trace")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
