// SPDX-License-Identifier: EPL-2.0

package cli

import (
	"fmt"
	"os"

	"github.com/ik5/audvox"
	"github.com/ik5/audvox/formats/wav"
	"github.com/ik5/audvox/sample"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func convertCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert IN OUT.wav",
		Short: "Decode a file, optionally resample or downmix it, and write WAV",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			return a.convert(args[0], args[1])
		},
	}

	f := cmd.Flags()
	f.Bool("mono", false, "downmix to mono")
	f.Int("bits", 0, "output 8 or 16 bits")
	f.Int("rate", 0, "resample to this rate")

	return cmd
}

func (a *app) convert(in, out string) error {
	m, err := audvox.Decode(a.registry, in)
	if err != nil {
		return err
	}

	var src sample.Source = m
	if opts := a.convertOptions(); len(opts) > 0 {
		if src, err = audvox.Convert(m, opts...); err != nil {
			return err
		}
	}

	f, err := os.Create(out)
	if err != nil {
		return err
	}
	if err := wav.Encode(f, src); err != nil {
		_ = f.Close()
		return fmt.Errorf("writing %s: %w", out, err)
	}
	if err := f.Close(); err != nil {
		return err
	}

	a.log.WithFields(logrus.Fields{
		"from": m.Info().String(),
		"to":   src.Info().String(),
		"file": out,
	}).Info("converted")
	return nil
}
