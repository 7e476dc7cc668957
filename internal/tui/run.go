package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Zachkp/showcase/internal/carousel"
)

// Run shows the preview until the user quits or ctx is done. Autoplay is
// started for the duration of the preview.
func Run(ctx context.Context, ctrl *carousel.Controller) error {
	m := New(ctrl)
	defer m.Close()

	ctrl.Start()
	defer ctrl.Stop()

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
