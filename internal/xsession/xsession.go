// Package xsession finds the X display and authority file of the user's
// graphical session, for processes started outside it (MCP hosts, cron,
// ssh).
package xsession

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/1broseidon/winshift/internal/logging"
)

var (
	runCommandOutputFn        = runCommandOutput
	readFileFn                = os.ReadFile
	readDirFn                 = os.ReadDir
	detectSessionX11EnvFn     = detectSessionX11Env
	detectDisplayFromSocketFn = detectDisplayFromSockets
)

const socketDir = "/tmp/.X11-unix"

// Env is the connection environment of an X session.
type Env struct {
	Display    string
	XAuthority string
}

// Resolve fills in whatever display and xauthority leave empty, trying the
// process environment, the user's logind sessions, and finally the X
// sockets on disk.
func Resolve(display, xauthority string) (Env, error) {
	env := Env{
		Display:    strings.TrimSpace(display),
		XAuthority: strings.TrimSpace(xauthority),
	}
	if env.Display == "" {
		env.Display = strings.TrimSpace(os.Getenv("DISPLAY"))
	}
	if env.XAuthority == "" {
		env.XAuthority = strings.TrimSpace(os.Getenv("XAUTHORITY"))
	}

	if env.Display == "" || env.XAuthority == "" {
		detectedDisplay, detectedXAuthority := detectSessionX11EnvFn()
		if env.Display == "" {
			env.Display = strings.TrimSpace(detectedDisplay)
		}
		if env.XAuthority == "" {
			env.XAuthority = strings.TrimSpace(detectedXAuthority)
		}
	}

	if env.Display == "" {
		env.Display = detectDisplayFromSocketFn(socketDir)
	}
	if env.Display == "" {
		return Env{}, fmt.Errorf("no X display found; export DISPLAY or set display in the config file (e.g. display: \":0\")")
	}

	if env.XAuthority == "" {
		if home, err := os.UserHomeDir(); err == nil {
			candidate := filepath.Join(home, ".Xauthority")
			if _, err := os.Stat(candidate); err == nil {
				env.XAuthority = candidate
			}
		}
	}
	return env, nil
}

// Export publishes XAUTHORITY to the process environment, where the X
// client library reads it.
func (e Env) Export() error {
	if e.XAuthority == "" || os.Getenv("XAUTHORITY") == e.XAuthority {
		return nil
	}
	logging.Debug().Str("xauthority", e.XAuthority).Msg("using detected xauthority")
	return os.Setenv("XAUTHORITY", e.XAuthority)
}

func runCommandOutput(name string, args ...string) (string, error) {
	out, err := exec.Command(name, args...).Output()
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func detectSessionX11Env() (display string, xauthority string) {
	uid := strconv.Itoa(os.Getuid())
	out, err := runCommandOutputFn("loginctl", "list-sessions", "--no-legend")
	if err != nil {
		return "", ""
	}
	for _, sessionID := range parseLoginctlSessions(out, uid) {
		d := loginctlShowSessionProp(sessionID, "Display")
		if d == "" || strings.EqualFold(d, "n/a") {
			continue
		}

		xauth := ""
		leader := loginctlShowSessionProp(sessionID, "Leader")
		if leader != "" && leader != "0" {
			if envMap, err := readProcEnviron(leader); err == nil {
				if ed := strings.TrimSpace(envMap["DISPLAY"]); ed != "" {
					d = ed
				}
				xauth = strings.TrimSpace(envMap["XAUTHORITY"])
			}
		}
		return d, xauth
	}
	return "", ""
}

// parseLoginctlSessions returns the session ids owned by uid.
func parseLoginctlSessions(output string, uid string) []string {
	var sessions []string
	for _, line := range strings.Split(output, "\n") {
		fields := strings.Fields(line)
		if len(fields) >= 2 && fields[1] == uid {
			sessions = append(sessions, fields[0])
		}
	}
	return sessions
}

func loginctlShowSessionProp(sessionID string, prop string) string {
	out, err := runCommandOutputFn("loginctl", "show-session", sessionID, "-p", prop, "--value")
	if err != nil {
		return ""
	}
	return strings.TrimSpace(out)
}

func readProcEnviron(pid string) (map[string]string, error) {
	data, err := readFileFn(filepath.Join("/proc", pid, "environ"))
	if err != nil {
		return nil, err
	}

	env := make(map[string]string)
	for _, part := range strings.Split(string(data), "\x00") {
		if k, v, ok := strings.Cut(part, "="); ok {
			env[k] = v
		}
	}
	return env, nil
}

// detectDisplayFromSockets picks the highest-numbered X socket in dir.
func detectDisplayFromSockets(dir string) string {
	entries, err := readDirFn(dir)
	if err != nil {
		return ""
	}

	var displays []int
	for _, entry := range entries {
		name := entry.Name()
		if len(name) < 2 || name[0] != 'X' {
			continue
		}
		if n, err := strconv.Atoi(name[1:]); err == nil {
			displays = append(displays, n)
		}
	}
	if len(displays) == 0 {
		return ""
	}
	sort.Ints(displays)
	return fmt.Sprintf(":%d", displays[len(displays)-1])
}
