package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn and printFn are test seams for user-facing output.
var (
	printlnFn = fmt.Println
	printFn   = fmt.Print
)

// execIface is the command surface the REPL dispatches to. App satisfies it;
// tests can provide a lightweight stub.
type execIface interface {
	List(ctx context.Context, args []string) error
	Recent(ctx context.Context, args []string) error
	Show(ctx context.Context, args []string) error
	Add(ctx context.Context, args []string) error
	Capture(ctx context.Context, args []string) error
	Edit(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
	Pin(ctx context.Context, args []string) error
	Move(ctx context.Context, args []string) error
	Copy(ctx context.Context, args []string) error
	Search(ctx context.Context, args []string) error
	Filter(ctx context.Context, args []string) error
	Sort(ctx context.Context, args []string) error
	Settings(ctx context.Context, args []string) error
	Import(ctx context.Context, args []string) error
	Export(ctx context.Context, args []string) error
	Backups(ctx context.Context, args []string) error
	Restore(ctx context.Context, args []string) error
	Usage(ctx context.Context, args []string) error
	Stats(ctx context.Context, args []string) error
	Wipe(ctx context.Context, args []string) error
}

const helpText = `Available commands:
  list | l [n]                 pinned entries, then the filtered list
  recent                       recently used entries
  show <id>                    print an entry and select it
  add                          create an entry interactively
  capture [name] [--clipboard] store pasted or clipboard text, normalized
  edit <id>                    edit name, content, category and tags
  delete <id>                  delete an entry
  pin <id>                     pin or unpin an entry
  move <id> <target-id>        move an entry to the target's position
  copy <id>                    copy content to the clipboard
  search [text]                set (or clear) the search query
  filter [tag|-tag|category|-category <v>] [unconfigured] [clear]
  sort [mode]                  show or set the sort mode
  settings [key value]         show or change settings
  import <file> [--replace]    import a .json or .csv file
  export [json|csv|per-category] [--category c] [--tag t]
  backups                      list stored backups
  restore                      load the newest valid backup
  usage                        storage usage
  stats                        entry counts
  wipe                         delete all data
  exit | quit                  leave the program`

// runREPL reads one command per line from r and dispatches it to a. The loop
// ends at end of input or on "exit"/"quit". Errors from handlers are printed
// and the loop continues.
func runREPL(ctx context.Context, a execIface, promptFn func() string, r *bufio.Reader) {
	for {
		if p := promptFn(); p != "" {
			printFn(p)
		}
		line, err := r.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var cmdErr error
		switch cmd {
		case "help", "?":
			printlnFn(helpText)
		case "l", "list":
			cmdErr = a.List(ctx, args)
		case "recent":
			cmdErr = a.Recent(ctx, args)
		case "show":
			cmdErr = a.Show(ctx, args)
		case "add":
			cmdErr = a.Add(ctx, args)
		case "capture":
			cmdErr = a.Capture(ctx, args)
		case "edit":
			cmdErr = a.Edit(ctx, args)
		case "delete", "rm":
			cmdErr = a.Delete(ctx, args)
		case "pin":
			cmdErr = a.Pin(ctx, args)
		case "move":
			cmdErr = a.Move(ctx, args)
		case "copy":
			cmdErr = a.Copy(ctx, args)
		case "search":
			cmdErr = a.Search(ctx, args)
		case "filter":
			cmdErr = a.Filter(ctx, args)
		case "sort":
			cmdErr = a.Sort(ctx, args)
		case "settings":
			cmdErr = a.Settings(ctx, args)
		case "import":
			cmdErr = a.Import(ctx, args)
		case "export":
			cmdErr = a.Export(ctx, args)
		case "backups":
			cmdErr = a.Backups(ctx, args)
		case "restore":
			cmdErr = a.Restore(ctx, args)
		case "usage":
			cmdErr = a.Usage(ctx, args)
		case "stats":
			cmdErr = a.Stats(ctx, args)
		case "wipe":
			cmdErr = a.Wipe(ctx, args)
		case "exit", "quit":
			printlnFn("Bye!")
			return
		default:
			printlnFn("Unknown command:", cmd)
		}
		if cmdErr != nil {
			printlnFn("Error:", cmdErr)
		}
	}
}
