package plugin

import (
	"io"
	"log/slog"
	"os"

	"github.com/aretw0/tracehook/pkg/inspector"
	"github.com/aretw0/tracehook/pkg/ports"
)

// Name is the identifier the plugin registers under.
const Name = "hello-world-inspector"

// Plugin registers the hello-world inspector with a host.
type Plugin struct {
	config Config
	logger *slog.Logger
	output io.Writer
}

// Option defines a functional option for configuring the Plugin.
type Option func(*Plugin)

// WithLogger sets the structured logger used for diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Plugin) {
		p.logger = logger
	}
}

// WithOutput sets the writer the created inspectors print to (default: os.Stdout).
func WithOutput(w io.Writer) Option {
	return func(p *Plugin) {
		p.output = w
	}
}

// New creates a plugin holding a copy of config.
func New(config Config, opts ...Option) *Plugin {
	p := &Plugin{config: config}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if p.output == nil {
		p.output = os.Stdout
	}
	return p
}

// Default creates a plugin with every flag off.
func Default(opts ...Option) *Plugin {
	return New(Config{}, opts...)
}

// Name returns the plugin name. It does not depend on the configuration.
func (p *Plugin) Name() string {
	return Name
}

// Config returns a copy of the plugin configuration.
func (p *Plugin) Config() Config {
	return p.config
}

// Init logs the plugin configuration. It cannot fail today; the error return
// is kept for hosts whose registration step can.
func (p *Plugin) Init() error {
	p.logger.Info("initializing plugin", "plugin", Name, "config", p.config)
	return nil
}

// CreateInspector returns a new inspector with zeroed counters.
// The caller owns it for the duration of one execution.
func (p *Plugin) CreateInspector() *inspector.HelloWorld {
	p.logger.Info("creating inspector", "plugin", Name)
	return inspector.New(
		inspector.WithWriter(p.output),
		inspector.WithAnnounce(false),
	)
}

// Factory returns a ports.InspectorFactory building inspectors from this plugin.
func (p *Plugin) Factory() ports.InspectorFactory {
	return func() ports.Inspector {
		return p.CreateInspector()
	}
}

// Register adds the plugin to reg under Name.
// Failures (a taken name, typically) are returned as is and not retried.
func (p *Plugin) Register(reg ports.Registry) error {
	if err := reg.Register(Name, p.Factory()); err != nil {
		return err
	}
	p.logger.Info("registered plugin", "plugin", Name)
	return nil
}

func (p *Plugin) String() string {
	return "HelloWorldInspectorPlugin"
}
