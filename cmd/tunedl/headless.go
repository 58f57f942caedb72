package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/mmcdole/tunedl/internal/controller"
	"github.com/mmcdole/tunedl/internal/domain"
	"github.com/mmcdole/tunedl/internal/tui"
	"github.com/mmcdole/tunedl/internal/tui/styles"
)

// errStatus means the command already printed an error status
var errStatus = errors.New("request failed")

const statusWidth = 80

// runDownload drives the same controller flow as the TUI without a terminal
// UI and prints the resulting status and links. Files are saved into
// saveDir when it is set.
func runDownload(ctx context.Context, a *app, rawURL, saveDir string, out io.Writer) error {
	state := controller.NewState()
	d := controller.NewDispatcher(a.download.FileURL, a.logger)

	d.Dispatch(state, controller.Event{Name: controller.EventURLInput, Value: rawURL})
	effect := d.Dispatch(state, controller.Event{Name: controller.EventDownloadSubmit})
	if effect.Kind == controller.EffectDownload {
		resp := a.download.Submit(ctx, effect.URL)
		d.Dispatch(state, controller.Event{Name: controller.EventDownloadResult, Download: &resp})
	}

	st := a.styles()
	fmt.Fprintln(out, tui.RenderStatus(st, state.Download.Status, statusWidth))
	for _, link := range state.Download.Links {
		fmt.Fprintf(out, "  %s\n    %s\n", link.Name, st.Link.Render(link.Href))
	}

	if state.Download.Status.Kind == controller.StatusError {
		return errStatus
	}

	if saveDir == "" {
		return nil
	}

	var errs []error
	for _, link := range state.Download.Links {
		path, err := a.download.Save(ctx, link.Name, saveDir)
		if err != nil {
			fmt.Fprintln(out, st.Error.Render(styles.ErrorChar+" "+link.Name+": "+err.Error()))
			errs = append(errs, err)
			continue
		}
		fmt.Fprintln(out, st.Success.Render(styles.SuccessChar+" saved "+path))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %d of %d files not saved", errStatus, len(errs), len(state.Download.Links))
	}
	return nil
}

// runOrganize triggers library organization and prints the status
func runOrganize(ctx context.Context, a *app, out io.Writer) error {
	state := controller.NewState()
	d := controller.NewDispatcher(a.download.FileURL, a.logger)

	effect := d.Dispatch(state, controller.Event{Name: controller.EventOrganizeTrigger})
	if effect.Kind == controller.EffectOrganize {
		resp := a.organize.Run(ctx)
		d.Dispatch(state, controller.Event{Name: controller.EventOrganizeResult, Organize: &resp})
	}

	fmt.Fprintln(out, tui.RenderStatus(a.styles(), state.Organize.Status, statusWidth))
	if state.Organize.Status.Kind == controller.StatusError {
		return errStatus
	}
	return nil
}

// styles follows the stored theme so output matches the TUI
func (a *app) styles() styles.Styles {
	theme := domain.ParseTheme(a.cfg.UI.Theme)
	if stored, ok := a.preferences.Theme(); ok {
		theme = domain.ParseTheme(stored)
	}
	return styles.For(theme)
}
