package tui

import (
	"testing"

	"github.com/mmcdole/tunedl/internal/controller"
	"github.com/mmcdole/tunedl/internal/domain"
	"github.com/mmcdole/tunedl/internal/tui/styles"
	"github.com/stretchr/testify/assert"
)

func TestWordWrapKeepsLineBreaks(t *testing.T) {
	details := "ERROR: unsupported URL\nspotdl exited with status 1\n\n  see log"

	assert.Equal(t,
		"ERROR: unsupported URL\nspotdl exited with status 1\n\nsee log",
		wordWrap(details, 40))

	assert.Equal(t,
		"ERROR:\nunsupported\nURL\nspotdl\nexited with\nstatus 1",
		wordWrap("ERROR: unsupported URL\r\nspotdl exited with status 1", 11))
}

func TestWordWrapMeasuresDisplayWidth(t *testing.T) {
	assert.Equal(t, "héllo wörld", wordWrap("héllo wörld", 11))
	assert.Equal(t, "text", wordWrap("text", 0))
}

func TestRenderStatusKeepsDetailLines(t *testing.T) {
	status := controller.Status{
		Kind:    controller.StatusError,
		Message: "ERROR: unsupported URL\nspotdl exited with status 1",
	}

	out := RenderStatus(styles.For(domain.ThemeLight), status, 80)
	assert.Contains(t, out, "ERROR: unsupported URL")
	assert.Contains(t, out, "spotdl exited with status 1")
	assert.NotContains(t, out, "URL spotdl")
}
