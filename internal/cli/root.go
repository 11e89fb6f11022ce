// SPDX-License-Identifier: EPL-2.0

// Package cli implements the audvox command.
package cli

import (
	"io"

	"github.com/ik5/audvox"
	"github.com/ik5/audvox/audio"
	"github.com/ik5/audvox/internal/config"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// app is the state shared by every subcommand of one invocation.
type app struct {
	v        *viper.Viper
	settings *config.Settings
	registry *audio.Registry
	log      *logrus.Entry
	out      io.Writer
}

// Command returns the root command. Output and log lines go to out and
// errOut.
func Command(out, errOut io.Writer) *cobra.Command {
	a := &app{
		v:        config.New(),
		registry: audvox.NewRegistry(),
		out:      out,
	}

	var configFile string

	root := &cobra.Command{
		Use:           "audvox",
		Short:         "Play sound files through the audvox backends",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := config.ReadFile(a.v, configFile); err != nil {
				return err
			}
			if err := config.BindFlags(a.v, cmd.Flags()); err != nil {
				return err
			}

			s, err := config.Load(a.v)
			if err != nil {
				return err
			}
			a.settings = s

			l := logrus.New()
			l.SetOutput(errOut)
			l.SetLevel(s.Level())
			a.log = logrus.NewEntry(l)
			return nil
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)

	pf := root.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file (default $XDG_CONFIG_HOME/audvox/audvox.yaml)")
	pf.String("log-level", "info", "log level: debug, info, warn, error")
	pf.String("device", "", "backend device name")
	pf.Int("sample-rate", 44100, "device mixing rate in Hz")

	root.AddCommand(
		playCommand(a),
		formatsCommand(a),
		infoCommand(a),
		convertCommand(a),
	)

	return root
}
