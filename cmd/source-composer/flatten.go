package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var flattenCmd = &cobra.Command{
	Use:   "flatten <identity> <file.yaml|directory>...",
	Short: "List every member a type gets from itself and its protocols",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runFlatten,
}

func runFlatten(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}

	identity := args[0]

	res, err := s.compose(args[1:])
	if err != nil {
		return err
	}

	printDiagnostics(cmd.ErrOrStderr(), &res.Diagnostics, false)

	vars, methods, ok := res.Flattened(identity)
	if !ok {
		if t := res.ResolveTypeName(identity, ""); t != nil {
			vars, methods, _ = res.Flattened(t.Identity)
		} else {
			return fmt.Errorf("no type %q in the composed graph", identity)
		}
	}

	w := cmd.OutOrStdout()

	for _, v := range vars {
		fmt.Fprintf(w, "%s  // %s%s\n", v.Signature(), v.DefinedIn, defaultMark(v.IsDefault))
	}

	for _, m := range methods {
		fmt.Fprintf(w, "%s  // %s%s\n", m.Signature(), m.DefinedIn, defaultMark(m.IsDefault))
	}

	return nil
}

func defaultMark(isDefault bool) string {
	if isDefault {
		return ", default"
	}

	return ""
}
