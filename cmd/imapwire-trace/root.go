package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "imapwire-trace",
	Short: "demo/reference driver for the imapwire codec",
	Long: `imapwire-trace is a demo binary over the wire-format codec and
pipelining governor. It is not a mail client or server: it encodes sample
commands from a config file and prints the resulting wire bytes and
scheduling decisions.`,
}

var (
	verbose    bool
	configPath string
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"print out more debug information")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c",
		"imapwire-trace.yaml", "path to the configuration file")
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if verbose {
			logrus.SetLevel(logrus.DebugLevel)
		} else {
			logrus.SetLevel(logrus.InfoLevel)
		}
	}
}
