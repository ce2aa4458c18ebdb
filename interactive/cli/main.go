//go:build unix

package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/Trinoooo/dastcom/storage/cli"
	"github.com/Trinoooo/dastcom/storage/logs"
	"github.com/Trinoooo/dastcom/utils"
	"github.com/chzyer/readline"
)

// Global flags given to the REPL itself, e.g. --dir, are passed on to
// every command typed at the prompt.
func main() {
	defer logs.Sync()
	if err := repl(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}

func repl(globalArgs []string) error {
	wrapper := cli.NewWrapper()

	items := make([]readline.PrefixCompleterInterface, 0)
	for _, name := range wrapper.Commands() {
		items = append(items, readline.PcItem(name))
	}
	items = append(items, readline.PcItem("help"), readline.PcItem("exit"))

	input, err := readline.NewEx(&readline.Config{
		Prompt:       "dastcom> ",
		AutoComplete: readline.NewPrefixCompleter(items...),
		HistoryFile:  fmt.Sprintf("/tmp/dastcom/cli/cmd_history_%s", time.Now().Format("20060102")),
	})
	if err != nil {
		return err
	}
	defer input.Close()
	input.CaptureExitSignal()
	fmt.Println(utils.WrapInfo("type help for the command list, exit to quit"))

	for {
		line, err := input.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
				return nil
			}
			fmt.Fprintln(os.Stderr, utils.WrapWarn("%v", err))
			continue
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if strings.EqualFold(fields[0], "exit") {
			return nil
		}

		args := append([]string{"dastcom"}, globalArgs...)
		if err := wrapper.Run(append(args, fields...)); err != nil {
			fmt.Fprintln(os.Stderr, utils.WrapError("%v", err))
		}
	}
}
