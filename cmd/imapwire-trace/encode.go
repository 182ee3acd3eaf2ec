package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	imap "github.com/imapwire/codec"
	"github.com/imapwire/codec/pipeline"
	"github.com/imapwire/codec/wire"
)

var encodeCmd = &cobra.Command{
	Use:   "encode",
	Short: "encode a handful of sample commands and trace their wire bytes",
	RunE:  runEncode,
}

func init() {
	rootCmd.AddCommand(encodeCmd)
}

// sampleCommands returns a small, illustrative pipeline of commands: a
// mailbox selection followed by two commands that are safe to run
// concurrently against it (a UID FETCH reading flags and a disjoint-UID
// UID STORE), demonstrating both the grammar encoder and the governor in
// the same trace.
func sampleCommands() []*imap.Command {
	return []*imap.Command{
		{
			Tag: imap.NewTag(),
			Body: &imap.MailboxSelectionCommand{
				Verb:    imap.VerbSelect,
				Mailbox: "INBOX",
			},
		},
		{
			Tag: imap.NewTag(),
			Body: &imap.FetchCommand{
				UID:     true,
				Numbers: imap.NewMessageIdentifierSet[imap.UID](1, 2, 3, 4, 5),
				Attrs:   []imap.FetchAttribute{imap.FetchAttrFlags{}},
			},
		},
		{
			Tag: imap.NewTag(),
			Body: &imap.StoreCommand{
				UID:     true,
				Numbers: imap.NewMessageIdentifierSet[imap.UID](20, 21, 22),
				Flags:   imap.StoreFlags{Action: imap.StoreFlagsAdd, Flags: []imap.Flag{imap.FlagSeen}},
			},
		},
	}
}

func runEncode(cmd *cobra.Command, args []string) error {
	mode, err := loadConfig(configPath)
	if err != nil {
		return eris.Wrap(err, "loading config")
	}
	if !mode.IsClient() {
		return eris.New("encode: only client-role config is supported")
	}

	sched := pipeline.NewScheduler(logrus.StandardLogger())

	for _, c := range sampleCommands() {
		if !sched.TryStart(c.Tag, c.Body) {
			logrus.WithField("tag", c.Tag).Warn("command rejected by pipelining governor, would queue behind running commands")
			continue
		}

		buf := wire.NewEncodeBuffer(mode)
		wire.WriteCommand(buf, c)
		buf.MarkStopPoint()
		chunk := buf.NextChunk()

		fmt.Printf("%s %s\n", c.Tag, chunk.Bytes)

		sched.Complete(c.Tag)
	}
	return nil
}
