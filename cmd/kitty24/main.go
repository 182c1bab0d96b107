// Command kitty24 is the single binary hosting the assembler and VM:
// assemble, headless run, interactive debug stepper, and a native
// windowed+audio player.
package main

import (
	"flag"
	"os"

	"github.com/golang/glog"
	"github.com/spf13/cobra"
)

func main() {
	// glog registers its flags on the default FlagSet; mark it parsed once at
	// startup and hand its flags to cobra as persistent flags, so -v and
	// --logtostderr are accepted by every subcommand and take effect before
	// it runs.
	flag.CommandLine.Parse(nil)
	defer glog.Flush()

	root := &cobra.Command{
		Use:   "kitty24",
		Short: "Fantasy-console assembler and VM",
	}
	root.PersistentFlags().AddGoFlagSet(flag.CommandLine)
	root.AddCommand(newAsmCmd(), newRunCmd(), newDebugCmd(), newPlayCmd())

	if err := root.Execute(); err != nil {
		glog.Errorf("kitty24: %v", err)
		os.Exit(1)
	}
}
