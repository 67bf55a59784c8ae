package main

import (
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
)

const starterConfig = `# srctally configuration
scan:
  # module_roots: [internal, cmd]
  module_depth: 1
  max_file_bytes: 2097152

git:
  disabled: false
  max_commits: 500

context:
  budget: 128k
  strategy: greedy
  rank_by: code
  # exclude:
  #   - "*.pb.go"
  #   - "vendor/**"

handoff:
  out_dir: .srctally-handoff
  tree_depth: 4
  max_risks: 20

store:
  path: .srctally/runs.db

log:
  level: warn
  format: console
`

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter configuration file",
	Long:  "Creates .srctally.yaml in the current directory with documented defaults. Refuses to overwrite an existing file.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		const name = ".srctally.yaml"
		if _, err := os.Stat(name); err == nil {
			return eris.Errorf("%s already exists", name)
		}
		if err := os.WriteFile(name, []byte(starterConfig), 0o644); err != nil {
			return eris.Wrapf(err, "write %s", name)
		}
		fmt.Fprintf(os.Stderr, "wrote %s\n", name)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
