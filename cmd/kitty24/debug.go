package main

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/emma-elyon/kitty24/console"
	"github.com/emma-elyon/kitty24/disasm"
)

// debugger is an interactive stepper over a single CPU: a tiny stdin
// command loop with step, print, breakpoint, reset, and quit commands.
type debugger struct {
	rom         []byte
	cpu         *console.CPU
	cycles      uint64
	breakpoints []console.Word
}

func newDebugger(rom []byte) (*debugger, error) {
	d := &debugger{rom: rom}
	if err := d.reset(); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *debugger) reset() error {
	d.cycles = 0
	mem, err := console.NewMemory(d.rom)
	if err != nil {
		return err
	}
	d.cpu = console.NewCPU(console.NewBanks(), mem)
	return nil
}

func (d *debugger) checkBreak() bool {
	pc := d.cpu.Banks().Get(console.RegProgramCounter)
	for _, bp := range d.breakpoints {
		if bp == pc {
			fmt.Printf("break at: 0x%06x\n", bp)
			return true
		}
	}
	return false
}

func (d *debugger) basePrint() {
	fmt.Println("--------------------------------------------------")
	fmt.Printf("executed steps: %d\n", d.cycles)
	pc := d.cpu.Banks().Get(console.RegProgramCounter)
	word, err := d.cpu.Memory().FetchInstruction(pc)
	if err != nil {
		fmt.Printf("pc=0x%06x: <fault: %v>\n", pc, err)
		return
	}
	fmt.Printf("pc=0x%06x: %s\n", pc, disasm.Decode(word).String())
	fmt.Printf("condition=%v context=%d ri=0x%06x\n",
		d.cpu.Banks().Condition(), d.cpu.Banks().Current(), d.cpu.Banks().Get(console.RegInterrupt))
}

func (d *debugger) printCommand(args []string) {
	if len(args) < 2 {
		d.basePrint()
		return
	}
	switch args[1] {
	case "r", "registers":
		ctx := d.cpu.Banks().Current()
		for i := 0; i < console.RegisterCount; i++ {
			fmt.Printf("r%02x=0x%06x ", i, d.cpu.Banks().GetContext(ctx, console.Word(i)))
			if i%8 == 7 {
				fmt.Println()
			}
		}
	case "b", "breakpoints":
		fmt.Printf("%v\n", d.breakpoints)
	}
}

func (d *debugger) stepCommand(args []string) error {
	num := 1
	if len(args) >= 2 {
		re := regexp.MustCompile(`^([0-9]+)`)
		if re.MatchString(args[1]) {
			num, _ = strconv.Atoi(re.FindString(args[1]))
		}
	}
	for i := 0; i < num; i++ {
		if err := d.cpu.Step(); err != nil {
			return err
		}
		d.cycles++
		if d.checkBreak() {
			return nil
		}
	}
	return nil
}

func (d *debugger) breakpointCommand(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: br <address>")
	}
	var addr int
	if _, err := fmt.Sscanf(args[1], "0x%x", &addr); err != nil {
		return fmt.Errorf("parsing address %q: %w", args[1], err)
	}
	d.breakpoints = append(d.breakpoints, console.Word(addr))
	return nil
}

func (d *debugger) run() {
	in := bufio.NewReader(os.Stdin)
	for {
		fmt.Print("kitty24-debug, 'q' to quit\n>> ")
		line, err := in.ReadString('\n')
		if err != nil {
			return
		}
		args := strings.Fields(line)
		if len(args) == 0 {
			continue
		}
		switch args[0] {
		case "p", "print":
			d.printCommand(args)
		case "s", "step":
			if err := d.stepCommand(args); err != nil {
				fmt.Printf("trapped: %v\n", err)
			}
			d.basePrint()
		case "br", "breakpoint":
			if err := d.breakpointCommand(args); err != nil {
				fmt.Println(err)
			}
		case "r", "reset":
			if err := d.reset(); err != nil {
				fmt.Println(err)
			}
		case "q", "quit":
			fmt.Println("quitting.")
			return
		default:
			fmt.Printf("unknown command %q\n", args[0])
		}
	}
}

func newDebugCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "debug [rom]",
		Short: "Interactively step a ROM from stdin",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rom, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}
			d, err := newDebugger(rom)
			if err != nil {
				return fmt.Errorf("starting debugger: %w", err)
			}
			d.run()
			return nil
		},
	}
}
