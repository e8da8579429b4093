package main

import (
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nareix/h264bits/format"
)

type tool struct {
	cfg Config
	log *zap.SugaredLogger
	out io.Writer
}

func main() {
	cfg, err := loadConfig()
	if err != nil {
		log.Fatalln(err)
	}
	t := &tool{cfg: cfg, out: os.Stdout}

	run := func(fn func(cmd *cobra.Command, args []string) error) func(cmd *cobra.Command, args []string) {
		return func(cmd *cobra.Command, args []string) {
			if err := t.cfg.Validate(); err != nil {
				log.Println(err)
				cmd.Help()
				os.Exit(1)
			}
			l, err := newLogger(t.cfg.LogLevel)
			if err != nil {
				log.Println(err)
				os.Exit(1)
			}
			defer l.Sync()
			t.log = l
			if err := fn(cmd, args); err != nil {
				l.Errorw("command failed", "cmd", cmd.Name(), "error", err)
				l.Sync()
				os.Exit(1)
			}
		}
	}

	cmdSplit := &cobra.Command{
		Use:   "split SRC DIR",
		Short: "write every NAL unit of src to its own file in dir",
		Args:  cobra.ExactArgs(2),
		Run: run(func(cmd *cobra.Command, args []string) error {
			return t.split(args[0], args[1])
		}),
	}

	cmdInspect := &cobra.Command{
		Use:   "inspect SRC",
		Short: "list NAL units with parameter set and slice header details",
		Args:  cobra.ExactArgs(1),
		Run: run(func(cmd *cobra.Command, args []string) error {
			return t.inspect(args[0])
		}),
	}

	cmdAnnexb2Avcc := &cobra.Command{
		Use:   "annexb2avcc SRC DST",
		Short: "convert a start code delimited stream to length prefixed units",
		Args:  cobra.ExactArgs(2),
		Run: run(func(cmd *cobra.Command, args []string) error {
			return t.conv(args[0], args[1], format.KindAnnexB, format.KindAVCC)
		}),
	}

	cmdAvcc2Annexb := &cobra.Command{
		Use:   "avcc2annexb SRC DST",
		Short: "convert length prefixed units to a start code delimited stream",
		Args:  cobra.ExactArgs(2),
		Run: run(func(cmd *cobra.Command, args []string) error {
			return t.conv(args[0], args[1], format.KindAVCC, format.KindAnnexB)
		}),
	}

	var golombSigned, golombDecode bool
	cmdGolomb := &cobra.Command{
		Use:   "golomb VALUE...",
		Short: "print Exp-Golomb codes of values, or decode bit strings with -d",
		Args:  cobra.MinimumNArgs(1),
		Run: run(func(cmd *cobra.Command, args []string) error {
			if golombDecode {
				return t.golombDecode(args, golombSigned)
			}
			return t.golombEncode(args, golombSigned)
		}),
	}
	cmdGolomb.Flags().BoolVarP(&golombSigned, "signed", "s", false, "se(v) instead of ue(v)")
	cmdGolomb.Flags().BoolVarP(&golombDecode, "decode", "d", false, "arguments are bit strings such as 00111")

	var unescapeReverse bool
	cmdUnescape := &cobra.Command{
		Use:   "unescape HEX",
		Short: "remove emulation prevention bytes from a hex payload, or insert them with -r",
		Args:  cobra.ExactArgs(1),
		Run: run(func(cmd *cobra.Command, args []string) error {
			if unescapeReverse {
				return t.escape(args[0])
			}
			return t.unescape(args[0])
		}),
	}
	cmdUnescape.Flags().BoolVarP(&unescapeReverse, "reverse", "r", false, "escape instead")

	rootCmd := &cobra.Command{Use: "naltool"}
	t.cfg.AddFlags(rootCmd.PersistentFlags())
	rootCmd.AddCommand(cmdSplit)
	rootCmd.AddCommand(cmdInspect)
	rootCmd.AddCommand(cmdAnnexb2Avcc)
	rootCmd.AddCommand(cmdAvcc2Annexb)
	rootCmd.AddCommand(cmdGolomb)
	rootCmd.AddCommand(cmdUnescape)
	rootCmd.Execute()
}
