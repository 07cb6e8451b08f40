// Package shell implements the line-oriented CMS command interpreter.
package shell

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/aita/cms/db"
)

const prompt = "CMS: "

type State int

const (
	Running State = iota
	AwaitingExitConfirm
	Terminated
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case AwaitingExitConfirm:
		return "awaiting-exit-confirm"
	case Terminated:
		return "terminated"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Shell reads commands one line at a time and applies them to a DB.
type Shell struct {
	db    *db.DB
	in    *bufio.Reader
	out   io.Writer
	msg   *catalog
	state State
	log   *slog.Logger
}

func New(database *db.DB, in io.Reader, out io.Writer, logger *slog.Logger) *Shell {
	if logger == nil {
		logger = slog.Default()
	}
	return &Shell{
		db:    database,
		in:    bufio.NewReader(in),
		out:   out,
		msg:   loadCatalog(),
		state: Running,
		log:   logger,
	}
}

func (sh *Shell) State() State { return sh.state }

// Run opens the database, then executes commands until exit or end of input.
func (sh *Shell) Run() {
	fmt.Fprintf(sh.out, "\n%s%s\n", prompt, sh.msg.text("banner.init"))
	fmt.Fprintln(sh.out, sh.msg.text("banner.file", sh.db.Filename()))
	fmt.Fprintf(sh.out, "%s\n\n", sh.msg.text("banner.help"))

	if sh.open() {
		sh.say("open.loaded", sh.db.Len())
	}

	for sh.state != Terminated {
		fmt.Fprint(sh.out, prompt)
		line, ok := sh.readLine()
		if !ok {
			sh.state = Terminated
			break
		}
		sh.Execute(line)
	}
}

// Execute normalizes one input line and dispatches it.
func (sh *Shell) Execute(line string) {
	line = strings.ToLower(strings.TrimSpace(line))
	if line == "" {
		return
	}
	for _, c := range commands {
		if c.matches(line) {
			sh.log.Debug("dispatch", "command", c.name, "state", sh.state)
			c.run(sh, line)
			return
		}
	}
	sh.say("unknown", line)
}

// readLine returns the next input line without its terminator. ok is false
// only once the input is exhausted.
func (sh *Shell) readLine() (string, bool) {
	line, err := sh.in.ReadString('\n')
	if err != nil {
		if err != io.EOF {
			sh.log.Warn("read input", "error", err)
		}
		if line == "" {
			return "", false
		}
	}
	return strings.TrimRight(line, "\r\n"), true
}

// ask prints a prompt and reads the trimmed answer.
func (sh *Shell) ask(key string, args ...interface{}) (string, bool) {
	fmt.Fprintf(sh.out, "%s%s ", prompt, sh.msg.text(key, args...))
	line, ok := sh.readLine()
	return strings.TrimSpace(line), ok
}

func (sh *Shell) say(key string, args ...interface{}) {
	fmt.Fprintf(sh.out, "%s%s\n", prompt, sh.msg.text(key, args...))
}

func (sh *Shell) print(key string, args ...interface{}) {
	fmt.Fprintln(sh.out, sh.msg.text(key, args...))
}
