//go:build e2e && unix

package main

import (
	"bytes"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/creack/pty"
	"github.com/stretchr/testify/require"
)

// Keys as the terminal sends them
const (
	keyEnter     = "\r"
	keyCtrlC     = "\x03"
	keyEsc       = "\x1b"
	keyTab       = "\t"
	keySpace     = " "
	keyDown      = "j"
	keyAccept    = "q"
	keySelectAll = "a"
	keyMoveRight = ">"
	keyMoveLeft  = "<"
	keyFilter    = "/"
)

const (
	readyMarker = "__READY__"
	waitTimeout = 3 * time.Second
)

// escapes matches CSI, OSC, charset and keypad sequences plus carriage returns
var escapes = regexp.MustCompile(`\x1b\[[0-9;?]*[ -/]*[@-~]|\x1b\][^\x07]*\x07|\x1b[()][A-Za-z]|\x1b[=>]|\r`)

// session runs one shuttle process on a pseudo terminal inside a scratch directory
type session struct {
	t   *testing.T
	dir string

	cmd     *exec.Cmd
	ptmx    *os.File
	done    chan struct{} // closed once the process was reaped
	waitErr error

	mu  sync.Mutex
	out bytes.Buffer
}

func newSession(t *testing.T) *session {
	t.Helper()
	s := &session{t: t, dir: t.TempDir()}
	t.Cleanup(s.close)
	return s
}

// writeFile creates name inside the session directory and returns its path
func (s *session) writeFile(name, content string) string {
	s.t.Helper()
	path := filepath.Join(s.dir, name)
	require.NoError(s.t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(s.t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// writeItems creates an items file with one key per line
func (s *session) writeItems(name string, keys ...string) string {
	s.t.Helper()
	return s.writeFile(name, strings.Join(keys, "\n")+"\n")
}

// start launches shuttle with args on a 120x40 terminal
func (s *session) start(args ...string) {
	s.t.Helper()

	s.cmd = exec.Command(shuttleBin, args...)
	s.cmd.Dir = s.dir
	s.cmd.Env = append(os.Environ(),
		"TERM=xterm-256color",
		"LANG=C.UTF-8",
		"HOME="+s.dir,
		"XDG_CONFIG_HOME="+s.dir,
		"SHUTTLE_E2E_TEST=1",
	)

	ptmx, err := pty.StartWithSize(s.cmd, &pty.Winsize{Rows: 40, Cols: 120})
	require.NoError(s.t, err, "starting shuttle")
	s.ptmx = ptmx

	s.done = make(chan struct{})
	go s.capture()
	go func() {
		s.waitErr = s.cmd.Wait()
		close(s.done)
	}()
}

func (s *session) capture() {
	buf := make([]byte, 4096)
	for {
		n, err := s.ptmx.Read(buf)
		if n > 0 {
			s.mu.Lock()
			s.out.Write(buf[:n])
			s.mu.Unlock()
		}
		if err != nil {
			return
		}
	}
}

// press writes keys to the terminal
func (s *session) press(keys ...string) {
	s.t.Helper()
	for _, k := range keys {
		_, err := s.ptmx.Write([]byte(k))
		require.NoError(s.t, err, "writing %q", k)
	}
}

// screen returns everything printed so far with escape sequences removed
func (s *session) screen() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return escapes.ReplaceAllString(s.out.String(), "")
}

// sees waits until text shows up on the screen
func (s *session) sees(text string) bool {
	s.t.Helper()
	deadline := time.Now().Add(waitTimeout)
	for time.Now().Before(deadline) {
		if strings.Contains(s.screen(), text) {
			return true
		}
		time.Sleep(20 * time.Millisecond)
	}
	s.dumpTail(2048)
	return false
}

// ready waits for the first frame
func (s *session) ready() bool {
	s.t.Helper()
	return s.sees(readyMarker)
}

// exit waits for the process to end and returns its exit code
func (s *session) exit() int {
	s.t.Helper()
	select {
	case <-s.done:
		var exitErr *exec.ExitError
		if errors.As(s.waitErr, &exitErr) {
			return exitErr.ExitCode()
		}
		require.NoError(s.t, s.waitErr, "waiting for shuttle")
		return 0
	case <-time.After(waitTimeout):
		s.dumpTail(4096)
		s.t.Fatal("shuttle did not exit")
		return -1
	}
}

func (s *session) dumpTail(n int) {
	out := s.screen()
	if len(out) > n {
		out = out[len(out)-n:]
	}
	s.t.Logf("--- screen tail ---\n%s", out)
}

func (s *session) close() {
	if s.done != nil {
		select {
		case <-s.done:
		default:
			_ = s.cmd.Process.Kill()
			<-s.done
		}
	}
	if s.ptmx != nil {
		_ = s.ptmx.Close()
	}
}
