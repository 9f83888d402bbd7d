package registry_test

import (
	"bytes"
	"errors"
	"sync"
	"testing"

	"github.com/aretw0/tracehook/pkg/domain"
	"github.com/aretw0/tracehook/pkg/inspector"
	"github.com/aretw0/tracehook/pkg/ports"
	"github.com/aretw0/tracehook/pkg/ports/tests"
	"github.com/aretw0/tracehook/pkg/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func helloFactory() ports.Inspector {
	return inspector.New(inspector.WithWriter(&bytes.Buffer{}), inspector.WithAnnounce(false))
}

func TestRegistry_Contract(t *testing.T) {
	tests.RegistryContractTest(t, func() ports.Registry { return registry.NewRegistry() }, helloFactory)
}

func TestRegistry_InvalidRegistration(t *testing.T) {
	reg := registry.NewRegistry()

	assert.ErrorIs(t, reg.Register("", helloFactory), domain.ErrInvalidPlugin)
	assert.ErrorIs(t, reg.Register("hello", nil), domain.ErrInvalidPlugin)
	assert.Empty(t, reg.Names())
}

func TestRegistry_DuplicateKeepsFirst(t *testing.T) {
	reg := registry.NewRegistry()

	first := inspector.New(inspector.WithWriter(&bytes.Buffer{}), inspector.WithAnnounce(false))
	require.NoError(t, reg.Register("hello", func() ports.Inspector { return first }))

	err := reg.Register("hello", helloFactory)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrPluginExists))
	assert.Contains(t, err.Error(), "hello")

	got, err := reg.New("hello")
	require.NoError(t, err)
	assert.Same(t, first, got)
}

func TestRegistry_Names(t *testing.T) {
	reg := registry.NewRegistry()
	require.NoError(t, reg.Register("zeta", helloFactory))
	require.NoError(t, reg.Register("alpha", helloFactory))

	assert.Equal(t, []string{"alpha", "zeta"}, reg.Names())
}

func TestRegistry_ConcurrentRegister(t *testing.T) {
	reg := registry.NewRegistry()

	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- reg.Register("hello", helloFactory)
		}()
	}
	wg.Wait()
	close(errs)

	var ok, dup int
	for err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, domain.ErrPluginExists):
			dup++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 15, dup)
}
