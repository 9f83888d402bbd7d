package tracehook

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/tracehook/pkg/adapters/geth"
	"github.com/aretw0/tracehook/pkg/domain"
	"github.com/aretw0/tracehook/pkg/observability"
	"github.com/aretw0/tracehook/pkg/plugin"
	"github.com/aretw0/tracehook/pkg/ports"
)

// Version is the release of the tracehook library and CLI.
const Version = "0.1.0"

// DefaultGasLimit is the gas given to an execution when WithGasLimit is not used.
const DefaultGasLimit uint64 = 10_000_000

// Session runs bytecode in an in-memory go-ethereum EVM with the plugin's
// inspector attached. Every execution gets a fresh inspector and a fresh state,
// so a Session can serve concurrent executions as long as the extra inspectors
// given with WithInspectors are safe for it.
type Session struct {
	plugin   *plugin.Plugin
	logger   *slog.Logger
	output   io.Writer
	metrics  *observability.Metrics
	extra    []ports.Inspector
	gasLimit uint64
}

// Option defines a functional option for configuring the Session.
type Option func(*Session)

// WithPlugin sets the plugin that creates the inspector of each execution.
// By default the session builds one with every flag off.
func WithPlugin(p *plugin.Plugin) Option {
	return func(s *Session) {
		s.plugin = p
	}
}

// WithLogger sets a custom structured logger for the session.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// WithOutput sets where the default plugin prints its trace lines.
// It has no effect together with WithPlugin.
func WithOutput(w io.Writer) Option {
	return func(s *Session) {
		s.output = w
	}
}

// WithMetrics counts hook invocations of the plugin's inspectors.
func WithMetrics(m *observability.Metrics) Option {
	return func(s *Session) {
		s.metrics = m
	}
}

// WithInspectors stacks extra inspectors after the plugin's one.
func WithInspectors(inspectors ...ports.Inspector) Option {
	return func(s *Session) {
		s.extra = append(s.extra, inspectors...)
	}
}

// WithGasLimit sets the gas available to each execution.
func WithGasLimit(gas uint64) Option {
	return func(s *Session) {
		s.gasLimit = gas
	}
}

// New initializes a Session and runs the plugin's Init.
func New(opts ...Option) (*Session, error) {
	s := &Session{gasLimit: DefaultGasLimit}
	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if s.plugin == nil {
		pluginOpts := []plugin.Option{plugin.WithLogger(s.logger)}
		if s.output != nil {
			pluginOpts = append(pluginOpts, plugin.WithOutput(s.output))
		}
		s.plugin = plugin.Default(pluginOpts...)
	}
	if s.gasLimit == 0 {
		s.gasLimit = DefaultGasLimit
	}

	if err := s.plugin.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize plugin %s: %w", s.plugin.Name(), err)
	}
	return s, nil
}

// Plugin returns the plugin the session creates inspectors from.
func (s *Session) Plugin() *plugin.Plugin {
	return s.plugin
}

// execution is the per-run wiring shared by Execute and Deploy.
type execution struct {
	counters counters
	top      *topLevel
	machine  *machine
}

// counters is the read side of the plugin's inspector.
type counters interface {
	Steps() uint64
	Calls() uint64
}

func (s *Session) prepare() (*execution, error) {
	insp := s.plugin.CreateInspector()
	top := &topLevel{}

	var observed ports.Inspector = insp
	if s.metrics != nil {
		observed = observability.Instrument(insp, s.metrics)
	}
	stack := observability.NewStack(observed)
	for _, extra := range s.extra {
		stack.Add(extra)
	}
	stack.Add(top)

	bridge := geth.New(stack, geth.WithLogger(s.logger))
	m, err := newMachine(bridge.Hooks(), s.gasLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to create state: %w", err)
	}
	return &execution{counters: insp, top: top, machine: m}, nil
}

// Execute runs code as the code of a contract called with input.
// A reverted or failed execution is reported in Result.Err; the returned
// error is only set when the execution did not run.
func (s *Session) Execute(ctx context.Context, code, input []byte) (*domain.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(code) == 0 {
		return nil, fmt.Errorf("%w: empty code", domain.ErrInvalidCode)
	}

	run, err := s.prepare()
	if err != nil {
		return nil, err
	}
	ret, _, err := run.machine.call(code, input)

	res := &domain.Result{
		Steps:      run.counters.Steps(),
		Calls:      run.counters.Calls(),
		ReturnData: ret,
		GasUsed:    run.top.gasUsed,
		Err:        err,
	}
	s.logResult("execution finished", res)
	return res, nil
}

// Deploy runs initCode as a contract creation.
// On success Result.ReturnData is the deployed code and Result.Contract its address.
func (s *Session) Deploy(ctx context.Context, initCode []byte) (*domain.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(initCode) == 0 {
		return nil, fmt.Errorf("%w: empty init code", domain.ErrInvalidCode)
	}

	run, err := s.prepare()
	if err != nil {
		return nil, err
	}
	code, address, leftOver, err := run.machine.create(initCode)

	res := &domain.Result{
		Steps:      run.counters.Steps(),
		Calls:      run.counters.Calls(),
		ReturnData: code,
		GasUsed:    s.gasLimit - leftOver,
		Contract:   &address,
		Err:        err,
	}
	s.logResult("deployment finished", res)
	return res, nil
}

func (s *Session) logResult(msg string, res *domain.Result) {
	if res.Failed() {
		s.logger.Warn(msg, "steps", res.Steps, "calls", res.Calls, "gas_used", res.GasUsed, "err", res.Err)
		return
	}
	s.logger.Info(msg, "steps", res.Steps, "calls", res.Calls, "gas_used", res.GasUsed)
}

// RegisterLiveTracer makes the plugin loadable by a geth node with
// --vmtrace=hello-world-inspector. The node's --vmtrace.jsonconfig is decoded
// into the plugin configuration. Only WithLogger and WithOutput apply.
func RegisterLiveTracer(opts ...Option) {
	s := &Session{}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	geth.RegisterLive(plugin.Name, func(raw json.RawMessage) (ports.Inspector, error) {
		cfg, err := plugin.ParseConfig(raw)
		if err != nil {
			return nil, err
		}
		pluginOpts := []plugin.Option{plugin.WithLogger(s.logger)}
		if s.output != nil {
			pluginOpts = append(pluginOpts, plugin.WithOutput(s.output))
		}
		p := plugin.New(cfg, pluginOpts...)
		if err := p.Init(); err != nil {
			return nil, err
		}
		return p.CreateInspector(), nil
	}, geth.WithLogger(s.logger))
}
