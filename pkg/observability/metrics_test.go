package observability_test

import (
	"bytes"
	"testing"

	"github.com/aretw0/tracehook/pkg/domain"
	"github.com/aretw0/tracehook/pkg/inspector"
	"github.com/aretw0/tracehook/pkg/observability"
	"github.com/ethereum/go-ethereum/core/vm"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// counterValue reads a labelled counter from the registry (-1 if absent).
func counterValue(t *testing.T, reg *prometheus.Registry, name, hook string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)

	for _, family := range families {
		if family.GetName() != name {
			continue
		}
		for _, metric := range family.GetMetric() {
			for _, label := range metric.GetLabel() {
				if label.GetName() == "hook" && label.GetValue() == hook {
					return metric.GetCounter().GetValue()
				}
			}
		}
	}
	return -1
}

func TestInstrument_CountsHooks(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics, err := observability.NewMetrics(reg)
	require.NoError(t, err)

	hello := inspector.New(inspector.WithWriter(&bytes.Buffer{}), inspector.WithAnnounce(false))
	insp := observability.Instrument(hello, metrics)

	for i := 0; i < 5; i++ {
		insp.OnStep(&domain.Frame{Op: vm.ADD})
	}
	insp.OnCall(&domain.CallInputs{Kind: vm.CALL})
	insp.OnCallEnd(nil, domain.CallOutcome{})

	assert.Equal(t, 5.0, counterValue(t, reg, "tracehook_hook_invocations_total", "step"))
	assert.Equal(t, 1.0, counterValue(t, reg, "tracehook_hook_invocations_total", "call"))
	assert.Equal(t, 1.0, counterValue(t, reg, "tracehook_hook_invocations_total", "call_end"))
	assert.Equal(t, 0.0, counterValue(t, reg, "tracehook_hook_invocations_total", "selfdestruct"))
	assert.Equal(t, 0.0, counterValue(t, reg, "tracehook_hook_overrides_total", "call"))

	// The wrapped inspector still sees everything.
	assert.Equal(t, uint64(5), hello.Steps())
	assert.Equal(t, uint64(1), hello.Calls())
}

func TestInstrument_CountsOverrides(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics, err := observability.NewMetrics(reg)
	require.NoError(t, err)

	var journal []string
	insp := observability.Instrument(&recorder{
		name:         "r",
		journal:      &journal,
		callOverride: &domain.CallOutcome{},
	}, metrics)

	assert.NotNil(t, insp.OnCall(&domain.CallInputs{}))
	assert.Nil(t, insp.OnCreate(&domain.CreateInputs{}))

	assert.Equal(t, 1.0, counterValue(t, reg, "tracehook_hook_overrides_total", "call"))
	assert.Equal(t, 0.0, counterValue(t, reg, "tracehook_hook_overrides_total", "create"))
}

func TestNewMetrics_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := observability.NewMetrics(reg)
	require.NoError(t, err)

	_, err = observability.NewMetrics(reg)
	assert.Error(t, err)
}
