package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/headerguard/headerguard/pkg/config"
	"github.com/headerguard/headerguard/pkg/errors"
)

// sampleTemplate is the header template written by init, an Apache-2.0
// style header with the standard placeholders.
const sampleTemplate = `Copyright {inceptionYear} {copyrightOwner}

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
`

var (
	initForce bool
	initOwner string
	initYear  string
)

var initCmd = &cobra.Command{
	Use:   "init [DIR]",
	Short: "Write a starter configuration and header template",
	Long: `Write a commented .headerguard.toml and a LICENSE_HEADER.txt template
into DIR (default: the current directory). Existing files are left alone
unless --force is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "."
		if len(args) == 1 {
			dir = args[0]
		}

		starter, err := config.RenderStarter(initOwner, initYear)
		if err != nil {
			return err
		}

		written, err := writeIfAbsent(filepath.Join(dir, ".headerguard.toml"), starter, initForce)
		if err != nil {
			return err
		}
		if written {
			fmt.Fprintln(cmd.OutOrStdout(), "wrote .headerguard.toml")
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), ".headerguard.toml already exists, skipping (use --force to overwrite)")
		}

		written, err = writeIfAbsent(filepath.Join(dir, "LICENSE_HEADER.txt"), []byte(sampleTemplate), initForce)
		if err != nil {
			return err
		}
		if written {
			fmt.Fprintln(cmd.OutOrStdout(), "wrote LICENSE_HEADER.txt")
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), "LICENSE_HEADER.txt already exists, skipping (use --force to overwrite)")
		}

		return nil
	},
}

func writeIfAbsent(path string, data []byte, force bool) (bool, error) {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return false, nil
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return false, errors.Wrapf(err, errors.ErrFileWrite, "cannot write %s", path)
	}
	return true, nil
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite existing files")
	initCmd.Flags().StringVar(&initOwner, "owner", "", "Value for the copyrightOwner property")
	initCmd.Flags().StringVar(&initYear, "year", "", "Value for the inceptionYear property")
}
