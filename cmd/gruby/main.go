// Command gruby runs Ruby programs on the embedded runtime.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/gruby/gruby"
	"go.uber.org/zap"
)

func usage(name string) {
	fmt.Printf("Usage: %v [switches] [programfile]\n", name)
	for _, line := range []string{
		"-e 'command' one line of script",
		"-w           wrap the program file in an anonymous module",
		"-verbose     enable runtime logging",
		"-version     print the version",
	} {
		fmt.Printf("  %v\n", line)
	}
}

func main() {
	exitCode := 0
	defer func() { os.Exit(exitCode) }()

	eline := flag.String("e", "", "one line of script")
	wrap := flag.Bool("w", false, "wrap the program file in an anonymous module")
	verbose := flag.Bool("verbose", false, "enable runtime logging")
	version := flag.Bool("version", false, "print the version")
	flag.Parse()

	if *verbose {
		l, err := zap.NewDevelopment()
		if err == nil {
			gruby.SetLogger(l)
		}
	}

	ex := gruby.NewExecutor()
	defer ex.Stop()

	if *version {
		_ = ex.Submit(func() error {
			fmt.Println(gruby.Description())
			return nil
		})
		return
	}

	path := flag.Arg(0)
	if *eline == "" && path == "" {
		usage(os.Args[0])
		exitCode = 2
		return
	}

	err := ex.Submit(func() error {
		if *eline != "" {
			_, err := gruby.EvalString(*eline)
			return err
		}
		gruby.Script(path)
		return gruby.LoadFile(path, *wrap)
	})
	if err != nil {
		log.Printf("%v: %v", os.Args[0], err)
		exitCode = 1
	}
}
