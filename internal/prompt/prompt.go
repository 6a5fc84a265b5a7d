// Package prompt asks the operator for project options using numbered
// menus and plain questions on a reader/writer pair.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/hestjs/create-hest-app/internal/branding"
	"github.com/hestjs/create-hest-app/internal/config"
	"github.com/hestjs/create-hest-app/internal/installer"
	"github.com/hestjs/create-hest-app/internal/scaffold"
	"github.com/hestjs/create-hest-app/internal/style"
)

// Item is one entry of a numbered menu.
type Item struct {
	Value string
	Label string
}

// Prompter reads answers from r and writes questions to w.
type Prompter struct {
	reader *bufio.Reader
	w      io.Writer
}

// New returns a Prompter over r and w.
func New(r io.Reader, w io.Writer) *Prompter {
	return &Prompter{reader: bufio.NewReader(r), w: w}
}

func (p *Prompter) readLine() (string, error) {
	line, err := p.reader.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", fmt.Errorf("reading answer: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// Input asks a free-form question. def is used for an empty answer.
func (p *Prompter) Input(question, def string) (string, error) {
	if def != "" {
		fmt.Fprintf(p.w, "%s %s ", style.Bold(question), style.Cyan("("+def+")"))
	} else {
		fmt.Fprintf(p.w, "%s ", style.Bold(question))
	}
	answer, err := p.readLine()
	if err != nil {
		return "", err
	}
	if answer == "" {
		return def, nil
	}
	return answer, nil
}

// Confirm asks a yes/no question.
func (p *Prompter) Confirm(question string, def bool) (bool, error) {
	hint := "[y/N]"
	if def {
		hint = "[Y/n]"
	}
	fmt.Fprintf(p.w, "%s %s ", style.Bold(question), hint)

	answer, err := p.readLine()
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "":
		return def, nil
	case "y", "yes":
		return true, nil
	case "n", "no":
		return false, nil
	}
	return false, fmt.Errorf("invalid answer %q: expected y or n", answer)
}

// Select presents a numbered list and returns the chosen value. An empty
// answer picks def.
func (p *Prompter) Select(question string, items []Item, def string) (string, error) {
	if len(items) == 0 {
		return "", fmt.Errorf("no choices for %q", question)
	}

	defIdx := 0
	fmt.Fprintf(p.w, "\n%s\n", style.Bold(question))
	for i, item := range items {
		label := item.Label
		if label == "" {
			label = item.Value
		}
		marker := " "
		if item.Value == def {
			defIdx = i
			marker = "*"
		}
		fmt.Fprintf(p.w, " %s%d) %s\n", marker, i+1, label)
	}
	fmt.Fprintf(p.w, "Enter number [1-%d] (%d): ", len(items), defIdx+1)

	answer, err := p.readLine()
	if err != nil {
		return "", err
	}
	if answer == "" {
		return items[defIdx].Value, nil
	}

	num, err := strconv.Atoi(answer)
	if err != nil || num < 1 || num > len(items) {
		return "", fmt.Errorf("invalid selection %q: choose 1-%d", answer, len(items))
	}
	return items[num-1].Value, nil
}

// ProjectName asks for the project directory.
func (p *Prompter) ProjectName() (string, error) {
	return p.Input("What is your project named?", branding.DefaultProjectName())
}

// Options walks through every creation option, starting from defaults.
// Skipping installation always defaults to no.
func (p *Prompter) Options(defaults config.Options, catalog *scaffold.Catalog) (config.Options, error) {
	var (
		opts config.Options
		err  error
	)

	if opts.Eslint, err = p.Confirm("Would you like to use ESLint?", defaults.Eslint); err != nil {
		return opts, err
	}

	templates := make([]Item, len(catalog.Templates))
	for i, t := range catalog.Templates {
		templates[i] = Item{Value: t.ID, Label: t.Name}
	}
	if opts.Template, err = p.Select("Which template would you like to use?", templates, defaults.Template); err != nil {
		return opts, err
	}

	if opts.UseSwagger, err = p.Confirm("Would you like to include Swagger/Scalar API documentation? (adds ~12MB to build size)", defaults.UseSwagger); err != nil {
		return opts, err
	}

	managers := []Item{
		{Value: string(installer.NPM)},
		{Value: string(installer.Yarn)},
		{Value: string(installer.PNPM)},
		{Value: string(installer.Bun)},
	}
	if opts.PackageManager, err = p.Select("Which package manager would you like to use?", managers, defaults.PackageManager); err != nil {
		return opts, err
	}

	if opts.SkipInstall, err = p.Confirm("Skip installing dependencies?", false); err != nil {
		return opts, err
	}
	return opts, nil
}

// ConfirmRetry asks whether to try a different template after template
// failed to materialize.
func (p *Prompter) ConfirmRetry(template string) (bool, error) {
	return p.Confirm(fmt.Sprintf("Could not download %q because of a connectivity issue.\nDo you want to try a different template?", template), true)
}

// AlternativeTemplate asks for the template to retry with.
func (p *Prompter) AlternativeTemplate() (string, error) {
	answer, err := p.Input("Please specify an alternative template:", "")
	if err != nil {
		return "", err
	}
	if answer == "" {
		return "", fmt.Errorf("no template given")
	}
	return answer, nil
}
