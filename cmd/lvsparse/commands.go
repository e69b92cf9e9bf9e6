// SPDX-License-Identifier: MIT

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gonum.org/v1/plot/vg"

	"github.com/katalvlaran/lvsparse/csr"
	"github.com/katalvlaran/lvsparse/csrio"
	"github.com/katalvlaran/lvsparse/dispatch"
	"github.com/katalvlaran/lvsparse/spy"
)

func newTransposeCmd(a *app) *cobra.Command {
	var (
		output   string
		parallel bool
		dump     bool
	)
	cmd := &cobra.Command{
		Use:   "transpose IN",
		Short: "Transpose a matrix",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := csrio.ReadFile(args[0])
			if err != nil {
				return err
			}
			var t *csr.Matrix
			if parallel {
				d, release, err := a.cfg.OpenDispatcher()
				if err != nil {
					return err
				}
				defer release()
				if t, err = csr.TransposeParallel(cmd.Context(), m, d); err != nil {
					return err
				}
			} else {
				t = csr.Transpose(m)
			}
			fmt.Fprintf(a.out, "T: %dx%d nnz=%d\n", t.Rows(), t.Cols(), t.NNZ())
			if dump {
				if err = csrio.Fprint(a.out, t); err != nil {
					return err
				}
			}
			if output != "" {
				return csrio.WriteFile(output, t)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the transpose to this file")
	cmd.Flags().BoolVar(&parallel, "parallel", false, "use the blocked parallel transpose")
	cmd.Flags().BoolVar(&dump, "print", false, "dump the arrays of the transpose")

	return cmd
}

func newConvertCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "convert IN OUT",
		Short: "Convert between text and binary (.bin) formats",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			m, err := csrio.ReadFile(args[0])
			if err != nil {
				return err
			}
			if err = csrio.WriteFile(args[1], m); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "%s -> %s: %dx%d nnz=%d\n", args[0], args[1], m.Rows(), m.Cols(), m.NNZ())
			return nil
		},
	}
}

func newSpyCmd(a *app) *cobra.Command {
	var (
		title  string
		sizeCm float64
	)
	cmd := &cobra.Command{
		Use:   "spy IN OUT",
		Short: "Plot the nonzero pattern (png, svg or pdf by extension)",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			m, err := csrio.ReadFile(args[0])
			if err != nil {
				return err
			}
			opts := spy.Options{Title: title, Size: vg.Length(sizeCm) * vg.Centimeter}
			if err = spy.Render(m, args[1], opts); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "wrote %s\n", args[1])
			return nil
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "plot title")
	cmd.Flags().Float64Var(&sizeCm, "size", 12, "image edge length in cm")

	return cmd
}

func newDevicesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "devices",
		Short: "List execution backends available on this host",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			devs := dispatch.Devices()
			best, err := dispatch.Select(devs, dispatch.PreferParallel)
			if err != nil {
				return err
			}
			for _, d := range devs {
				mark := " "
				if d.Backend == best.Backend {
					mark = "*"
				}
				fmt.Fprintf(a.out, "%s %s\n", mark, d)
			}
			return nil
		},
	}
}
