// Package tui - терминальная версия формы конвертации на bubbletea
package tui

import (
	"context"
	"strings"

	"currency-converter/internal/form"
	"currency-converter/internal/model"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type field int

const (
	fieldAmount field = iota
	fieldFrom
	fieldTo
	fieldCount
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("246")).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	focusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("235")).Background(lipgloss.Color("214")).Bold(true)
	resultStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("82")).Padding(0, 1).Border(lipgloss.RoundedBorder())
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	buttonStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Background(lipgloss.Color("62")).Padding(0, 2)
	loadingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Background(lipgloss.Color("237")).Padding(0, 2)
)

// conversionDoneMsg - результат асинхронного вызова шлюза
type conversionDoneMsg struct {
	result *model.ConversionResult
	err    error
}

type Model struct {
	ctx        context.Context
	converter  form.Converter
	form       *form.Form
	currencies []model.Currency
	focus      field
	amount     textinput.Model
	keys       keyMap
	help       help.Model
}

func New(ctx context.Context, converter form.Converter, f *form.Form) Model {
	if f == nil {
		f = form.New()
	}
	ti := textinput.New()
	ti.Placeholder = "Enter amount"
	ti.CharLimit = 32
	ti.Prompt = ""
	ti.SetValue(f.Amount)
	ti.Focus()

	return Model{
		ctx:        ctx,
		converter:  converter,
		form:       f,
		currencies: model.AllCurrencies(),
		amount:     ti,
		keys:       defaultKeyMap(),
		help:       help.New(),
	}
}

// Run запускает форму в терминале
func Run(ctx context.Context, converter form.Converter) error {
	program := tea.NewProgram(New(ctx, converter, form.New()), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

// Form - текущее состояние (для тестов и вызывающего кода)
func (m Model) Form() form.Form {
	return *m.form
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case conversionDoneMsg:
		m.form.Finish(msg.result, msg.err)
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.focus == fieldAmount {
		var cmd tea.Cmd
		m.amount, cmd = m.amount.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Convert):
		return m.convert()
	case key.Matches(msg, m.keys.Swap):
		m.form.Swap()
		return m, nil
	case key.Matches(msg, m.keys.Next):
		return m.setFocus((m.focus + 1) % fieldCount), nil
	case key.Matches(msg, m.keys.Prev):
		return m.setFocus((m.focus + fieldCount - 1) % fieldCount), nil
	case m.focus != fieldAmount && key.Matches(msg, m.keys.Left):
		m.cycleCurrency(-1)
		return m, nil
	case m.focus != fieldAmount && key.Matches(msg, m.keys.Right):
		m.cycleCurrency(1)
		return m, nil
	}

	if m.focus == fieldAmount {
		var cmd tea.Cmd
		m.amount, cmd = m.amount.Update(msg)
		m.form.SetAmount(m.amount.Value())
		return m, cmd
	}
	return m, nil
}

// convert: пока запрос в полёте, повторный enter игнорируется
func (m Model) convert() (tea.Model, tea.Cmd) {
	m.form.SetAmount(m.amount.Value())
	req, err := m.form.Begin()
	if err != nil {
		return m, nil
	}
	return m, convertCmd(m.ctx, m.converter, req)
}

func convertCmd(ctx context.Context, converter form.Converter, req model.ConversionRequest) tea.Cmd {
	return func() tea.Msg {
		result, err := converter.Convert(ctx, req.From, req.To, req.Amount)
		return conversionDoneMsg{result: result, err: err}
	}
}

func (m Model) setFocus(f field) Model {
	m.focus = f
	if f == fieldAmount {
		m.amount.Focus()
	} else {
		m.amount.Blur()
	}
	return m
}

func (m Model) cycleCurrency(delta int) {
	current := m.form.From
	if m.focus == fieldTo {
		current = m.form.To
	}
	idx := 0
	for i, c := range m.currencies {
		if c.Code == current {
			idx = i
			break
		}
	}
	next := m.currencies[(idx+delta+len(m.currencies))%len(m.currencies)].Code
	if m.focus == fieldTo {
		_ = m.form.SetTo(next)
	} else {
		_ = m.form.SetFrom(next)
	}
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Currency Converter"))
	b.WriteString("\n\n")

	b.WriteString(labelStyle.Render("Amount"))
	b.WriteString("\n")
	b.WriteString(m.amount.View())
	b.WriteString("\n\n")

	b.WriteString(labelStyle.Render("From") + " " + m.currencyView(fieldFrom, m.form.From))
	b.WriteString(mutedStyle.Render("  ⇄  "))
	b.WriteString(labelStyle.Render("To") + " " + m.currencyView(fieldTo, m.form.To))
	b.WriteString("\n\n")

	if m.form.Loading {
		b.WriteString(loadingStyle.Render("Converting..."))
	} else {
		b.WriteString(buttonStyle.Render("Convert"))
	}
	b.WriteString("\n\n")

	if summary := m.form.Summary(); summary != "" {
		b.WriteString(resultStyle.Render(summary))
		b.WriteString("\n\n")
	}
	if m.form.Message != "" {
		b.WriteString(errorStyle.Render(m.form.Message))
		b.WriteString("\n\n")
	}

	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) currencyView(f field, code string) string {
	label := code
	if c, ok := model.LookupCurrency(code); ok {
		label = c.Label()
	}
	if m.focus == f {
		return focusStyle.Render("‹ " + label + " ›")
	}
	return label
}
