package prompt

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-bdfrgen/pkg/binding"
	"github.com/goliatone/go-bdfrgen/pkg/coerce"
	"github.com/goliatone/go-bdfrgen/pkg/logging"
	"github.com/goliatone/go-bdfrgen/pkg/schema"
	"github.com/goliatone/go-bdfrgen/pkg/session"
)

// Option configures an Editor.
type Option func(*Editor)

// WithPromptDriver overrides the driver used to ask questions.
func WithPromptDriver(driver PromptDriver) Option {
	return func(e *Editor) {
		if driver != nil {
			e.driver = driver
		}
	}
}

// WithLogger sets the editor logger.
func WithLogger(logger logging.Logger) Option {
	return func(e *Editor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithSectionConfirm asks before entering every section, the root included.
// Without it every field is prompted.
func WithSectionConfirm(enabled bool) Option {
	return func(e *Editor) {
		e.confirmSections = enabled
	}
}

// WithURLLoop enables the trailing "add URL" loop.
func WithURLLoop(enabled bool) Option {
	return func(e *Editor) {
		e.urlLoop = enabled
	}
}

// Editor walks a bound session field by field and writes each answer
// through the field's binding.
type Editor struct {
	session         *session.Session
	driver          PromptDriver
	logger          logging.Logger
	confirmSections bool
	urlLoop         bool
}

// NewEditor creates an editor over sess. Every leaf field must already be
// bound.
func NewEditor(sess *session.Session, opts ...Option) (*Editor, error) {
	if sess == nil {
		return nil, ErrSessionRequired
	}
	e := &Editor{
		session: sess,
		logger:  logging.Discard(),
		urlLoop: true,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	if e.driver == nil {
		e.driver = NewSurveyDriver()
	}
	return e, nil
}

// Run prompts every field, then collects URLs, then prints the preview.
func (e *Editor) Run(ctx context.Context) error {
	if err := e.section(ctx, "", e.session.Schema()); err != nil {
		return err
	}
	if e.urlLoop {
		if err := e.collectURLs(ctx); err != nil {
			return err
		}
	}
	return e.driver.Info(ctx, e.session.Preview())
}

func (e *Editor) section(ctx context.Context, prefix string, s *schema.Schema) error {
	if e.confirmSections {
		label := "Edit general options?"
		if prefix != "" {
			label = fmt.Sprintf("Edit %s?", schema.DefaultLabeler(prefix))
		}
		ok, err := e.driver.Confirm(ctx, ConfirmConfig{Message: label, Default: prefix == ""})
		if err != nil {
			return err
		}
		if !ok {
			return e.nestedOnly(ctx, prefix, s)
		}
	}

	for _, field := range s.Fields {
		if field.Kind == schema.KindNested {
			continue
		}
		if err := e.field(ctx, schema.JoinPath(prefix, field.Name)); err != nil {
			return err
		}
	}
	return e.nestedOnly(ctx, prefix, s)
}

// nestedOnly visits the nested sections after the parent's own fields, the
// same order the command line uses.
func (e *Editor) nestedOnly(ctx context.Context, prefix string, s *schema.Schema) error {
	for _, field := range s.Fields {
		if field.Kind != schema.KindNested {
			continue
		}
		if err := e.section(ctx, schema.JoinPath(prefix, field.Name), field.Schema); err != nil {
			return err
		}
	}
	return nil
}

func (e *Editor) field(ctx context.Context, path string) error {
	b, ok := e.session.Registry().Binding(path)
	if !ok {
		return fmt.Errorf("%w: %s", binding.ErrNotBound, path)
	}
	field := b.Field()
	message := field.Label
	if message == "" {
		message = field.Name
	}
	help := field.Metadata.Tooltip
	current := b.Slot().Text()

	var answer string
	switch field.Kind {
	case schema.KindBool:
		value, err := b.Value()
		if err != nil {
			return err
		}
		def, _ := value.(bool)
		yes, err := e.driver.Confirm(ctx, ConfirmConfig{Message: message, Default: def, Help: help})
		if err != nil {
			return err
		}
		answer = strconv.FormatBool(yes)

	case schema.KindEnum:
		value, err := b.Value()
		if err != nil {
			return err
		}
		options := field.MemberNames()
		def := 0
		if member, ok := value.(schema.Member); ok {
			def = indexOf(options, member.Name)
		}
		idx, err := e.driver.Select(ctx, SelectConfig{Message: message, Options: options, DefaultIndex: def, Help: help})
		if err != nil {
			return err
		}
		if idx < 0 || idx >= len(options) {
			return fmt.Errorf("prompt: %s: selection %d out of range", path, idx)
		}
		answer = options[idx]

	case schema.KindStringList:
		text, err := e.driver.TextArea(ctx, TextAreaConfig{
			Message:   message,
			Default:   current,
			Help:      withHint(help, "one entry per line"),
			Validator: validator(field),
		})
		if err != nil {
			return err
		}
		answer = text

	default:
		text, err := e.driver.Input(ctx, InputConfig{
			Message:   message,
			Default:   current,
			Help:      withHint(help, field.Metadata.Suggestion),
			Validator: validator(field),
		})
		if err != nil {
			return err
		}
		answer = strings.TrimRight(text, "\r\n")
	}

	if answer == current && field.Kind != schema.KindBool && field.Kind != schema.KindEnum {
		return nil
	}
	if err := b.Write(answer); err != nil {
		return err
	}
	e.logger.Debug("prompted field", "path", path)
	return nil
}

func (e *Editor) collectURLs(ctx context.Context) error {
	for {
		raw, err := e.driver.Input(ctx, InputConfig{
			Message: "Add a Reddit URL (leave blank to finish)",
			Help:    "Subreddit, user, multireddit, post and comment URLs are recognised.",
		})
		if err != nil {
			return err
		}
		raw = strings.TrimSpace(raw)
		if raw == "" {
			return nil
		}
		ref, err := e.session.AddURL(raw)
		if err != nil {
			if errors.Is(err, binding.ErrNotBound) {
				return err
			}
			if infoErr := e.driver.Info(ctx, fmt.Sprintf("Skipped: %v", err)); infoErr != nil {
				return infoErr
			}
			continue
		}
		if err := e.driver.Info(ctx, fmt.Sprintf("Added %s %s", ref.Category, ref.Identifier)); err != nil {
			return err
		}
	}
}

func validator(field schema.Field) func(string) error {
	return func(text string) error {
		_, err := coerce.Parse(field, strings.TrimRight(text, "\r\n"))
		return err
	}
}

func withHint(help, hint string) string {
	switch {
	case hint == "":
		return help
	case help == "":
		return hint
	default:
		return help + " (" + hint + ")"
	}
}
