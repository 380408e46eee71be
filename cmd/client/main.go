package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/atinyakov/AuthKeeper/internal/config"
	"github.com/atinyakov/AuthKeeper/internal/logger"
	"github.com/atinyakov/AuthKeeper/internal/models"
	"github.com/atinyakov/AuthKeeper/internal/repository"
	"github.com/atinyakov/AuthKeeper/internal/store"
	"github.com/atinyakov/AuthKeeper/internal/tags"
)

var (
	version   string
	buildDate string
)

const helpText = "Available commands: help, list, add, drop <id>, tags <id> <input>, auth <id> ldap|local|none, " +
	"user <id> <name>, secret <id> <value>, commit, discard, status, exit"

var authTypes = map[string]models.AuthType{
	"ldap":  models.AuthLDAP,
	"local": models.AuthLocal,
	"none":  models.AuthUnset,
}

// repl runs the interactive shell loop, accepting commands to edit entries.
func repl(ctx context.Context, in io.Reader, out io.Writer, s *store.Store) {
	scanner := bufio.NewScanner(in)

	for {
		prompt := "authkeeper> "
		if s.Dirty() {
			prompt = "authkeeper*> "
		}
		fmt.Fprint(out, prompt)
		if !scanner.Scan() {
			break
		}
		cmd, id, rest := splitCommand(scanner.Text())
		if cmd == "" {
			continue
		}
		switch cmd {
		case "help":
			fmt.Fprintln(out, helpText)
		case "list":
			printEntries(out, s.List())
		case "add":
			e := s.Append()
			fmt.Fprintf(out, "Entry added: %s\n", e.ID)
		case "drop":
			if id == "" {
				fmt.Fprintln(out, "Usage: drop <id>")
				continue
			}
			s.Drop(id)
		case "tags":
			if id == "" {
				fmt.Fprintln(out, "Usage: tags <id> <input>")
				continue
			}
			s.Patch(id, models.Fields{TagsInput: &rest})
		case "auth":
			at, ok := authTypes[strings.ToLower(rest)]
			if id == "" || !ok {
				fmt.Fprintln(out, "Usage: auth <id> ldap|local|none")
				continue
			}
			s.Patch(id, models.Fields{AuthType: &at})
		case "user":
			if id == "" {
				fmt.Fprintln(out, "Usage: user <id> <name>")
				continue
			}
			s.Patch(id, models.Fields{Username: &rest})
		case "secret":
			if id == "" {
				fmt.Fprintln(out, "Usage: secret <id> <value>")
				continue
			}
			s.Patch(id, models.Fields{Secret: &rest})
		case "commit":
			if err := s.Commit(ctx); err != nil {
				fmt.Fprintln(out, "Commit failed:", err)
				continue
			}
			fmt.Fprintln(out, "Committed")
		case "discard":
			s.Discard()
			fmt.Fprintln(out, "Draft reset to committed entries")
		case "status":
			fmt.Fprintf(out, "Entries: %d\nCommitted: %d\nDirty: %t\nVersion: %d\n",
				len(s.List()), len(s.Committed()), s.Dirty(), s.Version())
		case "exit":
			fmt.Fprintln(out, "Bye")
			return
		default:
			fmt.Fprintln(out, "Unknown command. Type 'help' for a list of commands.")
		}
	}
}

// splitCommand splits a line into the command, the entry id and the raw
// remainder, which is kept verbatim apart from the separating space.
func splitCommand(line string) (cmd, id, rest string) {
	line = strings.TrimLeft(line, " \t")
	cmd, line, _ = strings.Cut(line, " ")
	line = strings.TrimLeft(line, " \t")
	id, rest, _ = strings.Cut(line, " ")
	return strings.TrimSpace(cmd), strings.TrimSpace(id), rest
}

func printEntries(out io.Writer, entries []models.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(out, "No entries")
		return
	}
	for _, e := range entries {
		secret := "-"
		if e.Secret != nil {
			secret = strings.Repeat("*", len(*e.Secret))
		}
		authType := string(e.AuthType)
		if authType == "" {
			authType = "unset"
		}
		fmt.Fprintf(out, "ID: %s\nType: %s\nUser: %s\nTags: %s\nSecret: %s\n---\n",
			e.ID, authType, e.Username, tags.Join(e.Tags), secret)
	}
}

// main parses flags and runs the shell against the configured local backend.
func main() {
	var (
		showVer  bool
		dumpJSON bool
	)
	flag.BoolVar(&showVer, "version", false, "show build version and date")
	flag.BoolVar(&dumpJSON, "dump", false, "print committed entries as JSON and exit")
	options := config.Parse()

	if showVer {
		fmt.Printf("AuthKeeper Client\nVersion: %s\nBuild Date: %s\n", version, buildDate)
		return
	}

	log := logger.New()
	if err := log.Init(options.LogLevel); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = log.Log.Sync() }()

	kv, closeKV, err := repository.Open(options)
	if err != nil {
		log.Log.Fatal("cannot open storage", zap.Error(err))
	}
	defer func() { _ = closeKV() }()

	ctx := context.Background()
	s := store.New(ctx, repository.NewSnapshotRepository(kv, log.Log), log.Log)
	s.Subscribe(func(ev store.Event) {
		log.Log.Debug("draft changed", zap.String("kind", string(ev.Kind)), zap.String("id", ev.ID), zap.Uint64("version", ev.Version))
	})

	if dumpJSON {
		b, _ := json.MarshalIndent(s.Committed(), "", "  ")
		fmt.Println(string(b))
		return
	}

	repl(ctx, os.Stdin, os.Stdout, s)
}
