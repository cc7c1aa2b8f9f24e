package diagram

// options configures graph building.
type options struct {
	styles Styles
	ids    IDGenerator
}

func defaultOptions() *options {
	return &options{
		styles: DefaultStyles(),
		ids:    defaultIDGenerator,
	}
}

// Option configures Build.
type Option func(*options)

// WithStyles overrides the visual style constants.
func WithStyles(styles Styles) Option {
	return func(o *options) {
		o.styles = styles
	}
}

// WithIDGenerator overrides the handle generator. Handles are cosmetic;
// overriding them affects no label, position, or edge wiring.
func WithIDGenerator(ids IDGenerator) Option {
	return func(o *options) {
		if ids != nil {
			o.ids = ids
		}
	}
}
