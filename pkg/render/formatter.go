package render

import "github.com/charmbracelet/lipgloss"

// Kind is the role of a piece of report text
type Kind int

const (
	Required Kind = iota
	Optional
	Finals
	Error
	Header
	Pass
	Fail
	Projects
	Tests
	Exams
	Labs
	Lectures
)

// Formatter decorates report text by role
type Formatter interface {
	Format(kind Kind, s string) string
}

// Plain leaves text untouched, for files and non-terminal output
type Plain struct{}

func (Plain) Format(_ Kind, s string) string {
	return s
}

// Styled colors text with lipgloss
type Styled struct {
	styles map[Kind]lipgloss.Style
}

// NewStyled builds the terminal palette. accent colors headings.
func NewStyled(accent string) *Styled {
	if accent == "" {
		accent = "99"
	}
	color := func(c string) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(c))
	}

	return &Styled{styles: map[Kind]lipgloss.Style{
		Required: color("214"),
		Optional: color("201"),
		Finals:   color("33"),
		Error:    color("196").Bold(true),
		Header:   color(accent).Bold(true),
		Pass:     color("42"),
		Fail:     color("196"),
		Projects: color("80"),
		Tests:    color("162"),
		Exams:    color("160"),
		Labs:     color("38"),
		Lectures: color("38"),
	}}
}

func (s *Styled) Format(kind Kind, text string) string {
	style, ok := s.styles[kind]
	if !ok {
		return text
	}
	return style.Render(text)
}
