// SPDX-License-Identifier: EPL-2.0

package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func formatsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List the file extensions that can be decoded",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			for _, ext := range a.registry.Formats() {
				if _, err := fmt.Fprintln(a.out, ext); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
