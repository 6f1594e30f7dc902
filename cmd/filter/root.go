package main

import (
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/filterkata/filter"
	"github.com/filterkata/filter/internal/aplog"
	"github.com/filterkata/filter/internal/predicate"
	"github.com/filterkata/filter/internal/seqio"
	"github.com/filterkata/filter/internal/util"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func cmdRoot() *cobra.Command {
	var o *options

	cmd := &cobra.Command{
		Use:   "filter [FILE]",
		Short: "Keep the elements of a YAML or JSON sequence that match an expression",
		Long: `Reads a sequence from FILE, or stdin when FILE is absent or '-', and writes
the elements matching every --where expression in their original order.

A FILE named after a subcommand runs that subcommand instead; use a path
such as ./schema to read the file.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) > 0 {
				path = args[0]
			}
			return runFilter(cmd, o, path)
		},
	}

	o = withFilterParams(cmd)

	return cmd
}

func runFilter(cmd *cobra.Command, o *options, path string) error {
	cfg, err := o.resolveConfig()
	if err != nil {
		return err
	}

	log := aplog.NewBuilder(cfg.Logging.GetRootLogger(cmd.OutOrStdout(), cmd.ErrOrStderr())).
		WithComponent("cli").
		WithCommand(cmd.Name()).
		WithInput(path).
		Build()

	pred, err := predicate.Compile(o.where, o.mode())
	if err != nil {
		return errors.Wrap(err, "invalid --where")
	}

	inFormat, outFormat, err := o.resolveFormats(path, cfg)
	if err != nil {
		return err
	}

	in, closeIn, err := openInput(cmd, path)
	if err != nil {
		return err
	}
	defer closeIn()

	seq, err := seqio.Decode(in, inFormat)
	if err != nil {
		return errors.Wrapf(err, "failed to read %s input", inFormat)
	}

	index := 0
	kept := filter.Filter(func(v any) bool {
		keep := pred(v)
		log.Debug("evaluated element", "index", index, "keep", keep)
		index++
		return keep
	}, seq)

	log.Info("filtered sequence",
		"kept", humanize.Comma(int64(len(kept))),
		"total", humanize.Comma(int64(len(seq))),
	)

	return seqio.Encode(cmd.OutOrStdout(), outFormat, kept)
}

func openInput(cmd *cobra.Command, path string) (io.Reader, func(), error) {
	if path == "" || path == "-" {
		return cmd.InOrStdin(), func() {}, nil
	}

	expanded, err := util.ExpandPath(path)
	if err != nil {
		return nil, nil, err
	}

	f, err := os.Open(expanded)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "failed to open input '%s'", path)
	}

	return f, func() { _ = f.Close() }, nil
}
