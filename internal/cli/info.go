// SPDX-License-Identifier: EPL-2.0

package cli

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/ik5/audvox"
	"github.com/spf13/cobra"
)

func infoCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "info FILE",
		Short: "Decode a file and print its PCM layout",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			m, err := audvox.Decode(a.registry, args[0])
			if err != nil {
				return err
			}

			info := m.Info()
			dur := time.Duration(m.Frames()) * time.Second / time.Duration(info.SampleRate)

			_, err = fmt.Fprintf(a.out, "%s: %s, %d frames, %s\n",
				filepath.Base(args[0]), info, m.Frames(), dur.Round(time.Millisecond))
			return err
		},
	}
}
