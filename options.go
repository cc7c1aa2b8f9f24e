package ledgermap

import (
	"github.com/ledgerscope/ledgermap/pkg/constants"
	"github.com/ledgerscope/ledgermap/pkg/diagram"
	"github.com/ledgerscope/ledgermap/pkg/errors"
)

// config holds per-run settings.
type config struct {
	title  string
	styles *diagram.Styles
	ids    diagram.IDGenerator
}

func defaultConfig() *config {
	return &config{
		title: constants.DefaultDiagramTitle,
	}
}

func (c *config) diagramOptions() []diagram.Option {
	var opts []diagram.Option
	if c.styles != nil {
		opts = append(opts, diagram.WithStyles(*c.styles))
	}
	if c.ids != nil {
		opts = append(opts, diagram.WithIDGenerator(c.ids))
	}
	return opts
}

// Option is a function that configures a pipeline run.
type Option func(*config) error

// WithTitle sets the diagram title used in the document and the viewer URL.
func WithTitle(title string) Option {
	return func(c *config) error {
		if title == "" {
			return &errors.ValidationError{Field: "title", Message: "must not be empty"}
		}
		c.title = title
		return nil
	}
}

// WithStyles overrides the diagram's visual style constants.
func WithStyles(styles diagram.Styles) Option {
	return func(c *config) error {
		c.styles = &styles
		return nil
	}
}

// WithIDGenerator overrides the diagram's node and edge handle generator.
func WithIDGenerator(ids diagram.IDGenerator) Option {
	return func(c *config) error {
		c.ids = ids
		return nil
	}
}
