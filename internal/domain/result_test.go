package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDownloadResultToleratesPartialPayloads(t *testing.T) {
	cases := []struct {
		name     string
		body     string
		failure  bool
		success  bool
		warning  bool
		files    []string
		errorMsg string
	}{
		{name: "empty object", body: `{}`},
		{name: "explicit success", body: `{"success":true,"files":["a.mp3"]}`, success: true, files: []string{"a.mp3"}},
		{name: "explicit failure", body: `{"success":false,"error":"disk full"}`, failure: true, errorMsg: "disk full"},
		{name: "string success is not false", body: `{"success":"false"}`},
		{name: "null success", body: `{"success":null}`},
		{name: "warning string", body: `{"warning":"partial"}`, warning: true},
		{name: "warning empty string", body: `{"warning":""}`},
		{name: "warning number", body: `{"warning":1}`, warning: true},
		{name: "warning zero", body: `{"warning":0}`},
		{name: "files with junk", body: `{"files":["a.mp3",null,3,"","b.mp3"]}`, files: []string{"a.mp3", "b.mp3"}},
		{name: "files not array", body: `{"files":"a.mp3"}`},
		{name: "numeric error", body: `{"error":500}`, errorMsg: "500"},
		{name: "object error", body: `{"error":{"code":1}}`},
		{name: "false error", body: `{"success":false,"error":false}`, failure: true},
		{name: "zero error", body: `{"error":0}`},
		{name: "true error", body: `{"error":true}`, errorMsg: "true"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var r DownloadResult
			require.NoError(t, json.Unmarshal([]byte(tc.body), &r))

			assert.Equal(t, tc.failure, r.ExplicitFailure())
			assert.Equal(t, tc.success, r.ExplicitSuccess())
			assert.Equal(t, tc.warning, r.Warning)
			assert.Equal(t, tc.files, r.Files)
			assert.Equal(t, tc.errorMsg, r.Error)
		})
	}
}

func TestFalsyErrorFallsThroughToDetails(t *testing.T) {
	for _, body := range []string{
		`{"success":false,"error":false,"details":"spotdl: no such track"}`,
		`{"error":0,"details":"spotdl: no such track"}`,
		`{"error":"","details":"spotdl: no such track"}`,
	} {
		var r DownloadResult
		require.NoError(t, json.Unmarshal([]byte(body), &r))
		assert.Empty(t, r.Error, body)
		assert.Equal(t, "spotdl: no such track", r.Details, body)

		var o OrganizeResult
		require.NoError(t, json.Unmarshal([]byte(body), &o))
		assert.Empty(t, o.Error, body)
		assert.Equal(t, "spotdl: no such track", o.Details, body)
	}
}

func TestDownloadResultRejectsNonObjects(t *testing.T) {
	var r DownloadResult
	assert.Error(t, json.Unmarshal([]byte(`<html>`), &r))
	assert.Error(t, json.Unmarshal([]byte(`["a"]`), &r))
}

func TestOrganizeResult(t *testing.T) {
	var r OrganizeResult
	require.NoError(t, json.Unmarshal([]byte(`{"message":"Music organized successfully","extra":1}`), &r))
	assert.Equal(t, "Music organized successfully", r.Message)
	assert.Empty(t, r.Error)
}

func TestTheme(t *testing.T) {
	assert.Equal(t, ThemeDark, ParseTheme("dark"))
	assert.Equal(t, ThemeLight, ParseTheme("light"))
	assert.Equal(t, ThemeLight, ParseTheme("DARK"))
	assert.Equal(t, ThemeLight, ParseTheme(""))

	assert.Equal(t, ThemeDark, ThemeLight.Toggle())
	assert.Equal(t, ThemeLight, ThemeDark.Toggle())
	assert.Equal(t, ThemeLight, ThemeLight.Toggle().Toggle())
}
