package runner

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/mattn/go-shellwords"

	"runer/logging"
)

// Shell returns the command interpreter and its "run this string" flag for goos.
func Shell(goos string) (string, string) {
	if goos == "windows" {
		return "cmd", "/C"
	}
	return "sh", "-c"
}

// Result is the outcome of a finished command.
type Result struct {
	Stdout   string
	ExitCode int
	Duration time.Duration
}

// Capture runs line through the host shell, waits for it and returns its
// stdout. A non-zero exit is reported in Result, not as an error; only a
// failure to start the process is.
func Capture(ctx context.Context, line string) (Result, error) {
	shell, flag := Shell(runtime.GOOS)
	return capture(exec.CommandContext(ctx, shell, flag, line))
}

// CaptureSafe splits line with shell-word rules and executes the first word
// directly, without a shell. Lines using pipes, redirects or command
// separators are rejected.
func CaptureSafe(ctx context.Context, line string) (Result, error) {
	p := shellwords.NewParser()
	args, err := p.Parse(line)
	if err != nil {
		return Result{}, fmt.Errorf("tokenizing command: %w", err)
	}
	if p.Position >= 0 {
		return Result{}, fmt.Errorf("shell operator at offset %d is not allowed in safe mode", p.Position)
	}
	if len(args) == 0 {
		return Result{}, errors.New("empty command")
	}
	return capture(exec.CommandContext(ctx, args[0], args[1:]...))
}

func capture(c *exec.Cmd) (Result, error) {
	logging.L().Debugw("executing", "argv", c.Args)

	start := time.Now()
	out, err := c.Output()
	res := Result{
		Stdout:   strings.ToValidUTF8(string(out), "\uFFFD"),
		Duration: time.Since(start),
	}
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return Result{}, fmt.Errorf("failed to execute process: %w", err)
		}
		res.ExitCode = exitErr.ExitCode()
	}
	logging.L().Debugw("finished", "argv", c.Args, "exit", res.ExitCode, "duration", res.Duration)
	return res, nil
}

// MaxLineSize bounds a single streamed line. Longer lines end the stream
// with an error while the rest of the output is discarded.
const MaxLineSize = 1024 * 1024

// OutputMsg is sent through the channel for each line of output
type OutputMsg struct {
	Line     string
	IsErr    bool
	Done     bool
	ExitCode int
	ErrMsg   string
}

// Stream executes line through the host shell and streams output through a
// channel. The last message has Done set; the channel is closed after it.
func Stream(line string, output chan<- OutputMsg) {
	defer close(output)

	shell, flag := Shell(runtime.GOOS)
	c := exec.Command(shell, flag, line)

	stdout, err := c.StdoutPipe()
	if err != nil {
		output <- OutputMsg{Done: true, ExitCode: -1, ErrMsg: err.Error()}
		return
	}

	stderr, err := c.StderrPipe()
	if err != nil {
		output <- OutputMsg{Done: true, ExitCode: -1, ErrMsg: err.Error()}
		return
	}

	if err := c.Start(); err != nil {
		output <- OutputMsg{Done: true, ExitCode: -1, ErrMsg: err.Error()}
		return
	}

	// Stream stdout and stderr concurrently
	readErrs := make(chan error, 2)

	streamReader := func(r io.Reader, isErr bool) {
		scanner := bufio.NewScanner(r)
		scanner.Buffer(make([]byte, 0, 64*1024), MaxLineSize)
		for scanner.Scan() {
			output <- OutputMsg{Line: strings.ToValidUTF8(scanner.Text(), "\uFFFD"), IsErr: isErr}
		}
		err := scanner.Err()
		if err != nil {
			// keep the pipe drained so the child never blocks on write
			io.Copy(io.Discard, r)
		}
		readErrs <- err
	}

	go streamReader(stdout, false)
	go streamReader(stderr, true)

	var readErr error
	for i := 0; i < 2; i++ {
		if err := <-readErrs; err != nil && readErr == nil {
			readErr = fmt.Errorf("reading output: %w", err)
		}
	}

	err = errors.Join(c.Wait(), readErr)
	if err != nil {
		output <- OutputMsg{Done: true, ExitCode: c.ProcessState.ExitCode(), ErrMsg: err.Error()}
	} else {
		output <- OutputMsg{Done: true}
	}
}
