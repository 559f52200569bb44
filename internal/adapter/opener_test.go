package adapter

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type started struct {
	name string
	args []string
}

func newTestOpener(command string, args []string, goos string, available ...string) (*Opener, *[]started) {
	var calls []started
	o := NewOpener(command, args, slog.New(slog.NewTextHandler(io.Discard, nil)))
	o.goos = goos
	o.lookPath = func(file string) (string, error) {
		for _, a := range available {
			if a == file {
				return "/usr/bin/" + file, nil
			}
		}
		return "", errors.New("not found")
	}
	o.start = func(name string, args ...string) error {
		calls = append(calls, started{name: name, args: args})
		return nil
	}
	return o, &calls
}

func TestOpenConfiguredBrowser(t *testing.T) {
	o, calls := newTestOpener("firefox", []string{"--new-tab"}, "linux")
	require.NoError(t, o.Open("https://www.themoviedb.org/movie/1"))
	require.Len(t, *calls, 1)
	assert.Equal(t, started{name: "firefox", args: []string{"--new-tab", "https://www.themoviedb.org/movie/1"}}, (*calls)[0])
}

func TestOpenSystemDefault(t *testing.T) {
	o, calls := newTestOpener("", nil, "linux", "sensible-browser")
	require.NoError(t, o.Open("https://example.org"))
	require.Len(t, *calls, 1)
	assert.Equal(t, "sensible-browser", (*calls)[0].name)

	win, calls := newTestOpener("", nil, "windows", "rundll32")
	require.NoError(t, win.Open("https://example.org"))
	assert.Equal(t, []string{"url.dll,FileProtocolHandler", "https://example.org"}, (*calls)[0].args)
}

func TestOpenNothingAvailable(t *testing.T) {
	o, calls := newTestOpener("", nil, "plan9")
	assert.Error(t, o.Open("https://example.org"))
	assert.Empty(t, *calls)
}
