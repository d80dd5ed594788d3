// Command oidregctl drives an oidreg registry.Registry from a line-oriented
// script, for manual exploration and smoke testing of the split/merge and
// index-allocation behavior without embedding the library in a real agent.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/snmpregistry/oidreg"
	"github.com/snmpregistry/oidreg/index"
	"github.com/snmpregistry/oidreg/oid"
)

const usage = `oidregctl - drive an oidreg Registry from a script

Usage:
  oidregctl [options] [script-file]

Reads commands one per line from script-file, or stdin if omitted.

Commands:
  register <label> <priority> <oid>         register a cover-only module
  unregister <priority> <oid>                unregister at priority
  find <oid>                                 print the node covering oid
  index <oid>                                allocate the next INTEGER index under oid
  dump                                       print the spine
  # ...                                      comment, ignored

Options:
  -v    enable debug logging
`

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("oidregctl", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { fmt.Fprint(stderr, usage) }
	verbose := fs.Bool("v", false, "enable debug logging")
	if err := fs.Parse(args); err != nil {
		return 1
	}

	var logger *slog.Logger
	if *verbose {
		logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	var in io.Reader = os.Stdin
	if fs.NArg() > 0 {
		f, err := os.Open(fs.Arg(0))
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
		defer f.Close()
		in = f
	}

	reg := registry.New(registry.Config{Role: registry.RoleMaster, Logger: logger})
	ctx := context.Background()
	if err := reg.SetupTree(ctx); err != nil {
		fmt.Fprintln(stderr, "setup:", err)
		return 1
	}

	sc := bufio.NewScanner(in)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := exec(ctx, reg, line, stdout); err != nil {
			fmt.Fprintf(stderr, "%s: %v\n", line, err)
		}
	}
	return 0
}

func exec(ctx context.Context, reg *registry.Registry, line string, out io.Writer) error {
	fields := strings.Fields(line)
	switch fields[0] {
	case "register":
		if len(fields) != 4 {
			return fmt.Errorf("usage: register <label> <priority> <oid>")
		}
		priority, err := strconv.Atoi(fields[2])
		if err != nil {
			return err
		}
		name, err := oid.Parse(fields[3])
		if err != nil {
			return err
		}
		return reg.RegisterMIBPriority(ctx, fields[1], nil, 0, name, priority, nil)

	case "unregister":
		if len(fields) != 3 {
			return fmt.Errorf("usage: unregister <priority> <oid>")
		}
		priority, err := strconv.Atoi(fields[1])
		if err != nil {
			return err
		}
		name, err := oid.Parse(fields[2])
		if err != nil {
			return err
		}
		return reg.UnregisterMIBPriority(ctx, name, priority)

	case "find":
		if len(fields) != 2 {
			return fmt.Errorf("usage: find <oid>")
		}
		name, err := oid.Parse(fields[1])
		if err != nil {
			return err
		}
		node := reg.FindSubtree(name)
		if node == nil {
			fmt.Fprintf(out, "%s: no node\n", fields[1])
			return nil
		}
		fmt.Fprintf(out, "%s: %s\n", fields[1], node)
		return nil

	case "index":
		if len(fields) != 2 {
			return fmt.Errorf("usage: index <oid>")
		}
		name, err := oid.Parse(fields[1])
		if err != nil {
			return err
		}
		entry, err := reg.RegisterIndex(ctx, name, index.Integer(0), index.AllocateNewIndex, nil)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s: allocated %s\n", fields[1], entry.Value)
		return nil

	case "dump":
		return reg.WriteDumpRegistry(out)

	default:
		return fmt.Errorf("unknown command %q", fields[0])
	}
}
