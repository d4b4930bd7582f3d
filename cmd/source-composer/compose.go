package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"source-composer/internal/export"
)

var composeCmd = &cobra.Command{
	Use:   "compose [flags] <file.yaml|directory>...",
	Short: "Compose declaration files and write the type graph as YAML",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCompose,
}

func init() {
	composeCmd.Flags().StringP("out", "o", "", "write the graph to this file instead of stdout")
	composeCmd.Flags().Bool("report-unresolved", false, "report type names that resolve to no declaration")
	composeCmd.Flags().Bool("warnings-as-errors", false, "fail when any warning is reported")
	composeCmd.Flags().Bool("dump", false, "dump the composed graph structure to stderr")
}

func runCompose(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}

	reportUnresolved, err := cmd.Flags().GetBool("report-unresolved")
	if err != nil {
		return fmt.Errorf("failed to get report-unresolved flag: %w", err)
	}

	if reportUnresolved {
		s.cfg.ReportUnresolved = true
	}

	res, err := s.compose(args)
	if err != nil {
		return err
	}

	printDiagnostics(cmd.ErrOrStderr(), &res.Diagnostics, s.cfg.ReportUnresolved)

	if dump, _ := cmd.Flags().GetBool("dump"); dump {
		cfg := spew.ConfigState{Indent: "  ", MaxDepth: 3, DisablePointerAddresses: true, SortKeys: true}
		cfg.Fdump(cmd.ErrOrStderr(), res.Types)
	}

	data, err := export.YAML(res)
	if err != nil {
		return err
	}

	out, err := cmd.Flags().GetString("out")
	if err != nil {
		return fmt.Errorf("failed to get out flag: %w", err)
	}

	if out == "" {
		_, err = cmd.OutOrStdout().Write(data)
	} else {
		err = os.WriteFile(out, data, 0o644)
	}

	if err != nil {
		return fmt.Errorf("failed to write graph: %w", err)
	}

	if res.Diagnostics.HasErrors() {
		return fmt.Errorf("composition failed (%s): %w", summary(&res.Diagnostics), res.Diagnostics.Error())
	}

	if strict, _ := cmd.Flags().GetBool("warnings-as-errors"); strict && len(res.Diagnostics.Warnings) > 0 {
		return errors.New("composition failed: " + summary(&res.Diagnostics))
	}

	return nil
}
