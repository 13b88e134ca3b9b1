package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/noborus/ov/oviewer"

	"github.com/blockedby/starred-jobs/internal/models"
)

// pagerDoneMsg contains the result of a pager run
type pagerDoneMsg struct {
	err error
}

type pauseRenderingMsg struct{}

type resumeRenderingMsg struct{}

// Pager shows job descriptions in ov.
type Pager struct {
	program *tea.Program
}

// SetProgram sets the program reference for terminal management
func (p *Pager) SetProgram(program *tea.Program) {
	p.program = program
}

// Show hands the terminal to ov until the user quits it.
func (p *Pager) Show(job models.Job) error {
	if p.program == nil {
		return fmt.Errorf("program not set")
	}

	if err := p.program.ReleaseTerminal(); err != nil {
		return err
	}
	defer func() {
		// let ov finish with the terminal before restoring it
		time.Sleep(100 * time.Millisecond)
		_ = p.program.RestoreTerminal()
	}()

	root, err := oviewer.NewRoot(strings.NewReader(renderDescription(job)))
	if err != nil {
		return err
	}

	config := oviewer.NewConfig()
	config.IsWriteOriginal = false
	root.SetConfig(config)

	return root.Run()
}

func renderDescription(job models.Job) string {
	var b strings.Builder
	b.WriteString(job.Title)
	b.WriteString("\n")
	b.WriteString(job.Company)
	b.WriteString("\n")
	b.WriteString(strings.Repeat("─", max(len(job.Title), len(job.Company))))
	b.WriteString("\n\n")
	if job.Description == "" {
		b.WriteString("(no description)\n")
	} else {
		b.WriteString(job.Description)
		b.WriteString("\n")
	}
	return b.String()
}
