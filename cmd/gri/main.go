// Command gri is an interactive shell for the embedded Ruby runtime.
//
// It takes code from the user and executes it immediately, printing the
// inspect form of each result.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/docopt/docopt-go"
	"github.com/gruby/gruby"
	"github.com/mattn/go-isatty"
	"github.com/peterh/liner"
	"go.uber.org/zap"
)

const historyFileName = ".gri_history"

const usageText = `gri - interactive shell for the embedded Ruby runtime.

Usage:
  gri [--verbose]
  gri -h | --help
  gri --version

Options:
  --verbose   Enable runtime logging.
  -h --help   Show this screen.
  --version   Show runtime version.`

func historyPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, historyFileName), nil
}

// needMoreInput guesses whether the user wants to keep typing: MRI reports
// an unterminated expression as a SyntaxError mentioning end-of-input.
func needMoreInput(err error) bool {
	exc, ok := err.(*gruby.Exception)
	if !ok {
		return false
	}
	msg := exc.Error()
	return strings.Contains(msg, "SyntaxError") &&
		(strings.Contains(msg, "unexpected end-of-input") ||
			strings.Contains(msg, "unterminated"))
}

func printResult(v gruby.Value, err error) {
	if err != nil {
		fmt.Println(err)
		return
	}
	ins, insErr := gruby.Inspect(v)
	if insErr != nil {
		fmt.Println(" => ", v)
		return
	}
	fmt.Println(" => " + gruby.GoString(ins))
}

func repl(ex *gruby.Executor) {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	hist, histErr := historyPath()
	if histErr == nil {
		if f, err := os.Open(hist); err == nil {
			_, _ = line.ReadHistory(f)
			f.Close()
		}
	}
	defer func() {
		if histErr != nil {
			return
		}
		if f, err := os.Create(hist); err == nil {
			_, _ = line.WriteHistory(f)
			f.Close()
		}
	}()

	var buffer string
	for {
		prompt := "> "
		if buffer != "" {
			prompt = "* "
		}

		input, err := line.Prompt(prompt)
		if err == liner.ErrPromptAborted {
			buffer = ""
			continue
		}
		if err == io.EOF {
			fmt.Println()
			return
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return
		}

		buffer += input + "\n"
		code := buffer

		var continuing bool
		_ = ex.Submit(func() error {
			v, evalErr := gruby.EvalString(code)
			if evalErr != nil && needMoreInput(evalErr) {
				continuing = true
				return nil
			}
			printResult(v, evalErr)
			return nil
		})
		if continuing {
			continue
		}

		line.AppendHistory(strings.TrimSuffix(code, "\n"))
		buffer = ""
	}
}

func main() {
	opts, err := docopt.ParseDoc(usageText)
	if err != nil {
		os.Exit(2)
	}

	if v, _ := opts.Bool("--verbose"); v {
		if l, lerr := zap.NewDevelopment(); lerr == nil {
			gruby.SetLogger(l)
		}
	}

	ex := gruby.NewExecutor()
	defer ex.Stop()

	if v, _ := opts.Bool("--version"); v {
		_ = ex.Submit(func() error {
			fmt.Println(gruby.Description())
			return nil
		})
		return
	}

	if !isatty.IsTerminal(os.Stdin.Fd()) {
		// Not a terminal: evaluate stdin as one program.
		src, rerr := io.ReadAll(os.Stdin)
		if rerr != nil {
			fmt.Fprintln(os.Stderr, rerr)
			os.Exit(1)
		}
		if serr := ex.Submit(func() error {
			_, evalErr := gruby.EvalString(string(src))
			return evalErr
		}); serr != nil {
			fmt.Fprintln(os.Stderr, serr)
			os.Exit(1)
		}
		return
	}

	repl(ex)
}
