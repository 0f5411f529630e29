package runner

import (
	"context"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func skipOnWindows(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("uses POSIX shell syntax")
	}
}

func TestShell(t *testing.T) {
	tests := []struct {
		goos      string
		wantShell string
		wantFlag  string
	}{
		{"windows", "cmd", "/C"},
		{"linux", "sh", "-c"},
		{"darwin", "sh", "-c"},
	}
	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			shell, flag := Shell(tt.goos)
			require.Equal(t, tt.wantShell, shell)
			require.Equal(t, tt.wantFlag, flag)
		})
	}
}

func TestCapture(t *testing.T) {
	skipOnWindows(t)

	tests := []struct {
		name     string
		line     string
		wantOut  string
		wantCode int
	}{
		{"stdout only", "echo out; echo err >&2", "out\n", 0},
		{"exit status is not an error", "echo partial; exit 3", "partial\n", 3},
		{"shell features", "printf 'a\\nb\\n' | wc -l | tr -d ' '", "2\n", 0},
		{"invalid utf8 replaced", `printf '\377ok'`, "\uFFFDok", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Capture(context.Background(), tt.line)
			require.NoError(t, err)
			require.Equal(t, tt.wantOut, res.Stdout)
			require.Equal(t, tt.wantCode, res.ExitCode)
		})
	}
}

func TestCaptureSafe(t *testing.T) {
	skipOnWindows(t)

	res, err := CaptureSafe(context.Background(), `echo "a  b" 'c'`)
	require.NoError(t, err)
	require.Equal(t, "a  b c\n", res.Stdout)
}

func TestCaptureSafeErrors(t *testing.T) {
	_, err := CaptureSafe(context.Background(), "   ")
	require.Error(t, err)

	_, err = CaptureSafe(context.Background(), `echo "unterminated`)
	require.Error(t, err)

	_, err = CaptureSafe(context.Background(), `echo a | wc`)
	require.Error(t, err)

	_, err = CaptureSafe(context.Background(), "runer-no-such-binary-xyz --flag")
	require.Error(t, err)
}

func TestStream(t *testing.T) {
	skipOnWindows(t)

	ch := make(chan OutputMsg)
	go Stream("echo out; echo err >&2; exit 2", ch)

	var msgs []OutputMsg
	for m := range ch {
		msgs = append(msgs, m)
	}
	require.NotEmpty(t, msgs)

	last := msgs[len(msgs)-1]
	require.True(t, last.Done)
	require.Equal(t, 2, last.ExitCode)
	require.NotEmpty(t, last.ErrMsg)

	lines := msgs[:len(msgs)-1]
	require.ElementsMatch(t, []OutputMsg{
		{Line: "out"},
		{Line: "err", IsErr: true},
	}, lines)
}

func collect(t *testing.T, line string) []OutputMsg {
	t.Helper()
	ch := make(chan OutputMsg)
	go Stream(line, ch)

	var msgs []OutputMsg
	timeout := time.After(20 * time.Second)
	for {
		select {
		case m, ok := <-ch:
			if !ok {
				return msgs
			}
			msgs = append(msgs, m)
		case <-timeout:
			t.Fatalf("stream of %q did not finish", line)
		}
	}
}

func TestStreamLongLines(t *testing.T) {
	skipOnWindows(t)

	t.Run("within limit", func(t *testing.T) {
		msgs := collect(t, "head -c 500000 /dev/zero | tr '\\0' a; echo; echo after")
		require.Len(t, msgs, 3)
		require.Equal(t, strings.Repeat("a", 500000), msgs[0].Line)
		require.Equal(t, "after", msgs[1].Line)
		require.Equal(t, OutputMsg{Done: true}, msgs[2])
	})

	t.Run("over limit", func(t *testing.T) {
		msgs := collect(t, "head -c 2000000 /dev/zero | tr '\\0' a; echo after")
		last := msgs[len(msgs)-1]
		require.True(t, last.Done)
		require.Contains(t, last.ErrMsg, "token too long")
		for _, m := range msgs[:len(msgs)-1] {
			require.NotEqual(t, "after", m.Line)
		}
	})
}
