package observability

import (
	"github.com/aretw0/tracehook/pkg/domain"
	"github.com/aretw0/tracehook/pkg/ports"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/holiman/uint256"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors shared by instrumented inspectors.
// Collectors are safe for concurrent use, so one Metrics can serve many executions.
type Metrics struct {
	hooks     *prometheus.CounterVec
	overrides *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them on reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		hooks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tracehook_hook_invocations_total",
				Help: "Total number of inspector hook invocations",
			},
			[]string{"hook"},
		),
		overrides: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tracehook_hook_overrides_total",
				Help: "Total number of pre-hooks that returned an override",
			},
			[]string{"hook"},
		),
	}

	for _, c := range []prometheus.Collector{m.hooks, m.overrides} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	// Pre-create every series so dashboards see zeros instead of gaps.
	for _, hook := range domain.Hooks {
		m.hooks.WithLabelValues(string(hook))
	}
	m.overrides.WithLabelValues(string(domain.HookCall))
	m.overrides.WithLabelValues(string(domain.HookCreate))

	return m, nil
}

func (m *Metrics) observe(hook domain.Hook) {
	m.hooks.WithLabelValues(string(hook)).Inc()
}

// Instrument wraps next so that every hook invocation is counted in m.
func Instrument(next ports.Inspector, m *Metrics) ports.Inspector {
	return &instrumented{next: next, metrics: m}
}

type instrumented struct {
	next    ports.Inspector
	metrics *Metrics
}

func (i *instrumented) OnInterpreterInit(frame *domain.Frame) {
	i.metrics.observe(domain.HookInterpreterInit)
	i.next.OnInterpreterInit(frame)
}

func (i *instrumented) OnStep(frame *domain.Frame) {
	i.metrics.observe(domain.HookStep)
	i.next.OnStep(frame)
}

func (i *instrumented) OnStepEnd(frame *domain.Frame) {
	i.metrics.observe(domain.HookStepEnd)
	i.next.OnStepEnd(frame)
}

func (i *instrumented) OnLog(frame *domain.Frame, log *types.Log) {
	i.metrics.observe(domain.HookLog)
	i.next.OnLog(frame, log)
}

func (i *instrumented) OnCall(inputs *domain.CallInputs) *domain.CallOutcome {
	i.metrics.observe(domain.HookCall)
	outcome := i.next.OnCall(inputs)
	if outcome != nil {
		i.metrics.overrides.WithLabelValues(string(domain.HookCall)).Inc()
	}
	return outcome
}

func (i *instrumented) OnCallEnd(inputs *domain.CallInputs, outcome domain.CallOutcome) domain.CallOutcome {
	i.metrics.observe(domain.HookCallEnd)
	return i.next.OnCallEnd(inputs, outcome)
}

func (i *instrumented) OnCreate(inputs *domain.CreateInputs) *domain.CreateOutcome {
	i.metrics.observe(domain.HookCreate)
	outcome := i.next.OnCreate(inputs)
	if outcome != nil {
		i.metrics.overrides.WithLabelValues(string(domain.HookCreate)).Inc()
	}
	return outcome
}

func (i *instrumented) OnCreateEnd(inputs *domain.CreateInputs, outcome domain.CreateOutcome) domain.CreateOutcome {
	i.metrics.observe(domain.HookCreateEnd)
	return i.next.OnCreateEnd(inputs, outcome)
}

func (i *instrumented) OnSelfDestruct(contract, beneficiary common.Address, value *uint256.Int) {
	i.metrics.observe(domain.HookSelfDestruct)
	i.next.OnSelfDestruct(contract, beneficiary, value)
}
