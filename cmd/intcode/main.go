// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/ezrec/icvm/emulator"
	"github.com/ezrec/icvm/intcode"
	"github.com/ezrec/icvm/pipeline"
)

func main() {
	var text string
	var assemble string
	var save bool
	var disassemble bool
	var input string
	var output string
	var ascii bool
	var config string
	var verbose bool

	flag.StringVar(&text, "p", "", "program text file")
	flag.StringVar(&assemble, "a", "", "assembly file to compile")
	flag.BoolVar(&save, "s", false, "Write program text to output, do not execute")
	flag.BoolVar(&disassemble, "d", false, "Disassemble to output, do not execute")
	flag.StringVar(&input, "i", "-", "Tape input")
	flag.StringVar(&output, "o", "-", "Tape output")
	flag.BoolVar(&ascii, "A", false, "ASCII tape")
	flag.StringVar(&config, "c", "", "pipeline config file")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	var prog intcode.Program

	// Load a program text.
	if len(text) != 0 {
		inf, err := os.Open(text)
		if err != nil {
			log.Fatalf("%v: %v", text, err)
		}
		defer inf.Close()

		prog, err = intcode.ParseProgram(inf)
		if err != nil {
			log.Fatalf("%v: %v", text, err)
		}
	}

	// Compile a new program.
	if len(assemble) != 0 {
		inf, err := os.Open(assemble)
		if err != nil {
			log.Fatalf("%v: %v", assemble, err)
		}
		defer inf.Close()

		asm := &intcode.Assembler{Verbose: verbose}
		prog, err = asm.Parse(inf)
		if err != nil {
			log.Fatalf("%v: %v", assemble, err)
		}
	}

	var ouf io.Writer = os.Stdout
	if output != "-" {
		file, err := os.Create(output)
		if err != nil {
			log.Fatalf("%v: %v", output, err)
		}
		defer file.Close()
		ouf = file
	}

	if save {
		fmt.Fprintln(ouf, prog.String())
		return
	}

	if disassemble {
		for pc, line := range prog.Disassemble() {
			fmt.Fprintf(ouf, "%04d: %v\n", pc, line)
		}
		return
	}

	if len(config) != 0 {
		inf, err := os.Open(config)
		if err != nil {
			log.Fatalf("%v: %v", config, err)
		}
		defer inf.Close()

		cfg, err := pipeline.LoadConfig(inf)
		if err != nil {
			log.Fatalf("%v: %v", config, err)
		}

		if len(prog) == 0 {
			prog, err = cfg.LoadProgram(filepath.Dir(config))
			if err != nil {
				log.Fatalf("%v: %v", cfg.Program, err)
			}
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		// A second interrupt terminates the process.
		go func() {
			<-ctx.Done()
			stop()
		}()

		best, err := cfg.Run(ctx, prog, verbose)
		if err != nil {
			log.Fatalf("%v: %v", config, err)
		}

		fmt.Fprintf(ouf, "%d %v\n", best.Signal, best.Phases)
		return
	}

	if len(prog) == 0 {
		log.Fatalf("%v: no program (-p or -a)", os.Args[0])
	}

	emu := emulator.NewEmulator(prog)
	emu.Verbose = verbose
	emu.Tape.Output = ouf
	emu.Tape.Ascii = ascii

	if input == "-" {
		emu.Tape.Input = os.Stdin
	} else {
		inf, err := os.Open(input)
		if err != nil {
			log.Fatalf("%v: %v", input, err)
		}
		defer inf.Close()
		emu.Tape.Input = inf
	}

	emu.Reset()
	for done, err := emu.Tick(); !done; done, err = emu.Tick() {
		if err != nil {
			log.Fatal(err)
		}
	}

	if verbose {
		log.Printf("ticks: %d", emu.Machine.Ticks)
	}
}
