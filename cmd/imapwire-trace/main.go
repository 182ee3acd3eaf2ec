// Command imapwire-trace is a demo/reference driver over the imapwire
// codec: it encodes a small set of sample commands from a config file and
// prints both their wire bytes and the pipelining governor's scheduling
// decisions. It is not a mail client or server.
package main

import (
	"os"

	"github.com/sirupsen/logrus"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		logrus.WithError(err).Error("imapwire-trace failed")
		os.Exit(1)
	}
}
