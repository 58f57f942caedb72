package main

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the CLI against srvURL with logs kept in a temp dir
func execute(t *testing.T, srvURL string, args ...string) (string, error) {
	t.Helper()

	dir := t.TempDir()
	cfgFile := filepath.Join(dir, "config.yaml")
	cfgBody := fmt.Sprintf("server:\n  url: %s\nlogging:\n  file: %s\nstorage:\n  persist: false\n",
		srvURL, filepath.Join(dir, "tunedl.log"))
	require.NoError(t, os.WriteFile(cfgFile, []byte(cfgBody), 0644))

	var out bytes.Buffer
	cmd := newRootCmd(viper.New(), &out)
	cmd.SetArgs(append(args, "--config", cfgFile))
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	err := cmd.Execute()
	return out.String(), err
}

func TestDownloadCommand(t *testing.T) {
	var posted string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		posted = r.FormValue("url")
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"success":true,"message":"Fetched 2 tracks","files":["one.mp3","two three.mp3"]}`)
	}))
	defer srv.Close()

	out, err := execute(t, srv.URL, "download", "https://example.com/playlist")
	require.NoError(t, err)

	assert.Equal(t, "https://example.com/playlist", posted)
	assert.Contains(t, out, "Fetched 2 tracks")
	assert.Contains(t, out, "one.mp3")
	assert.Contains(t, out, srv.URL+"/download/two%20three.mp3")
}

func TestDownloadCommandSavesFiles(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/download":
			if r.Method == http.MethodPost {
				fmt.Fprint(w, `{"success":true,"files":["one.mp3"]}`)
				return
			}
		case "/download/one.mp3":
			fmt.Fprint(w, "audio")
			return
		}
		http.NotFound(w, r)
	}))
	defer srv.Close()

	dest := t.TempDir()
	out, err := execute(t, srv.URL, "download", "https://example.com/track", "--output", dest)
	require.NoError(t, err)
	assert.Contains(t, out, "saved "+filepath.Join(dest, "one.mp3"))

	data, err := os.ReadFile(filepath.Join(dest, "one.mp3"))
	require.NoError(t, err)
	assert.Equal(t, "audio", string(data))
}

func TestDownloadCommandErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"details":"unsupported site"}`)
	}))
	defer srv.Close()

	out, err := execute(t, srv.URL, "download", "https://example.com/track")
	assert.ErrorIs(t, err, errStatus)
	assert.Contains(t, out, "unsupported site")
}

func TestDownloadCommandRejectsBadURL(t *testing.T) {
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer srv.Close()

	out, err := execute(t, srv.URL, "download", "example.com/no-scheme")
	assert.ErrorIs(t, err, errStatus)
	assert.Contains(t, out, "Please enter a valid URL format")
	assert.Equal(t, 0, requests)
}

func TestOrganizeCommand(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/organize", r.URL.Path)
		fmt.Fprint(w, `{"message":"Sorted 12 files"}`)
	}))
	defer srv.Close()

	out, err := execute(t, srv.URL, "organize")
	require.NoError(t, err)
	assert.Contains(t, out, "Sorted 12 files")
}

func TestOrganizeCommandOffline(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	out, err := execute(t, url, "organize")
	assert.ErrorIs(t, err, errStatus)
	assert.Contains(t, out, "Network error")
}

func TestConfigInit(t *testing.T) {
	dir := t.TempDir()
	out, err := execute(t, "http://nas:5000", "config", "init", "--dir", dir)
	require.NoError(t, err)

	path := filepath.Join(dir, "config.yaml")
	assert.Contains(t, out, path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "http://nas:5000")
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "http://nas:5000", "version")
	require.NoError(t, err)
	assert.Equal(t, "tunedl dev\n", out)
}
