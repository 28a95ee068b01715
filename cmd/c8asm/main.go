// Command c8asm assembles CHIP-8 source files into ROM images.
package main

import (
	"fmt"
	"os"

	"github.com/retroenv/retrogolib/log"
	"github.com/urfave/cli"

	"c8/asm"
	"c8/chip8"
	"c8/diag"
)

func main() {
	logger := log.NewWithConfig(log.DefaultConfig())

	app := cli.NewApp()
	app.Name = "c8asm"
	app.Usage = "assemble CHIP-8 source into a ROM"
	app.ArgsUsage = "file"
	app.HideVersion = true

	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "output, o",
			Usage: "write the assembled ROM to `FILE`",
		},
		cli.BoolFlag{
			Name:  "disassemble, d",
			Usage: "print the decoded listing instead of writing a ROM",
		},
	}

	app.Action = func(c *cli.Context) error {
		return assemble(c, logger)
	}

	if err := app.Run(os.Args); err != nil {
		logger.Fatal(err.Error())
	}
}

func assemble(c *cli.Context, logger *log.Logger) error {
	file := c.Args().First()
	if file == "" {
		return cli.NewExitError("no input file given", 1)
	}

	output := c.String("output")
	if output == "" && !c.Bool("disassemble") {
		return cli.NewExitError("no output file given", 1)
	}

	source, err := os.ReadFile(file)
	if err != nil {
		return cli.NewExitError(fmt.Sprintf("reading %q: %v", file, err), 1)
	}

	rom, err := asm.Assemble(string(source), diag.New())
	if err != nil {
		// the diagnostics were already printed
		return cli.NewExitError("", 1)
	}

	if c.Bool("disassemble") {
		listing(rom)
		return nil
	}

	if err := os.WriteFile(output, rom, 0o644); err != nil {
		return cli.NewExitError(fmt.Sprintf("writing %q: %v", output, err), 1)
	}

	logger.Info("ROM written",
		log.String("file", output),
		log.String("size", fmt.Sprintf("%d bytes", len(rom))))

	return nil
}

// listing prints the decoded instruction at every 2-byte offset of the ROM.
// Words with no decoding are shown as raw data.
func listing(rom []byte) {
	for offset := 0; offset+1 < len(rom); offset += 2 {
		addr := 0x200 + offset

		inst, err := chip8.Decode([2]byte{rom[offset], rom[offset+1]})
		if err != nil {
			fmt.Printf("%04X - .byte #%02X, #%02X\n", addr, rom[offset], rom[offset+1])
			continue
		}

		fmt.Printf("%04X - %s\n", addr, inst)
	}

	if len(rom)%2 != 0 {
		fmt.Printf("%04X - .byte #%02X\n", 0x200+len(rom)-1, rom[len(rom)-1])
	}
}
