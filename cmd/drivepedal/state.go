package main

import (
	"fmt"
	"os"

	"github.com/cwbudde/algo-drive/dsp/effects/drive"
	"github.com/cwbudde/algo-drive/dsp/param"
	"github.com/cwbudde/algo-drive/internal/cli"
)

// StateCmd groups the state subcommands.
type StateCmd struct {
	Dump StateDumpCmd `cmd:"" help:"Print the parameters stored in a state file."`
}

// StateDumpCmd prints a saved state.
type StateDumpCmd struct {
	File string `arg:"" type:"existingfile" help:"State file written by --save-state."`
}

// Run executes the dump command.
func (c *StateDumpCmd) Run(g *Globals) error {
	data, err := os.ReadFile(c.File)
	if err != nil {
		return err
	}

	values, err := param.DecodeState(data)
	if err != nil {
		return fmt.Errorf("%s: %w", c.File, err)
	}

	known := drive.NewParameterSet()

	tbl := cli.Table{Headers: []string{"id", "stored", "applied"}}
	for _, v := range values {
		applied := "ignored"
		if p := known.Param(v.ID); p != nil {
			applied = fmt.Sprintf("%g", p.Spec().Constrain(v.Value))
		}

		tbl.AddRow(v.ID, fmt.Sprintf("%g", v.Value), applied)
	}

	cli.PrintKeyValue(g.out, "State", fmt.Sprintf("%s, %d values", c.File, len(values)))
	fmt.Fprint(g.out, tbl.String())

	return nil
}
