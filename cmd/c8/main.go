// Command c8 executes a CHIP-8 ROM, by default in an SDL window.
package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/retroenv/retrogolib/log"
	"github.com/sqweek/dialog"
	"github.com/urfave/cli"

	"c8/chip8"
)

var (
	// VM is the virtual machine being driven.
	VM *chip8.VM

	// Keys is the key pad state fed to every step.
	Keys chip8.Keys

	// Frame is the most recent display frame returned by the VM.
	Frame *chip8.Display
)

func init() {
	// SDL requires the main loop to stay on its thread
	runtime.LockOSThread()
}

func main() {
	logger := log.NewWithConfig(log.DefaultConfig())

	app := cli.NewApp()
	app.Name = "c8"
	app.Usage = "run a CHIP-8 ROM"
	app.ArgsUsage = "[rom]"
	app.HideVersion = true

	app.Flags = []cli.Flag{
		cli.Float64Flag{
			Name:  "frequency, f",
			Usage: "clock frequency in Hz",
			Value: 700.0,
		},
		cli.BoolFlag{
			Name:  "terminal, t",
			Usage: "render to the terminal instead of an SDL window",
		},
	}

	app.Action = func(c *cli.Context) error {
		return run(c, logger)
	}

	if err := app.Run(os.Args); err != nil {
		logger.Fatal(err.Error())
	}
}

func run(c *cli.Context, logger *log.Logger) error {
	file := c.Args().First()

	if file == "" {
		if c.Bool("terminal") {
			return cli.NewExitError("no ROM file given", 1)
		}

		// without an argument, let the user pick a ROM
		dlg := dialog.File().Title("Load CHIP-8 ROM")
		dlg.Filter("All Files", "*")
		dlg.Filter("ROMs", "rom", "ch8")

		picked, err := dlg.Load()
		if err != nil {
			return cli.NewExitError(err.Error(), 1)
		}

		file = picked
	}

	rom, err := os.ReadFile(file)
	if err != nil {
		return cli.NewExitError(fmt.Sprintf("reading %q: %v", file, err), 1)
	}

	VM = chip8.New(rom, c.Float64("frequency"))

	logger.Info("ROM loaded",
		log.String("file", file),
		log.String("size", fmt.Sprintf("%d bytes", len(rom))),
		log.String("frequency", fmt.Sprintf("%.1f Hz", c.Float64("frequency"))))

	if c.Bool("terminal") {
		return runTerminal()
	}

	return runSDL()
}
