package tests

import (
	"errors"
	"testing"

	"github.com/aretw0/tracehook/pkg/domain"
	"github.com/aretw0/tracehook/pkg/ports"
)

// RegistryContractTest is a reusable test suite that verifies if a registry complies with ports.Registry.
// newRegistry must return an empty registry on every call.
func RegistryContractTest(t *testing.T, newRegistry func() ports.Registry, factory ports.InspectorFactory) {
	t.Helper()

	// 1. Register and build
	t.Run("Register_Success", func(t *testing.T) {
		reg := newRegistry()
		if err := reg.Register("probe", factory); err != nil {
			t.Fatalf("unexpected error registering: %v", err)
		}
		insp, err := reg.New("probe")
		if err != nil {
			t.Fatalf("unexpected error building: %v", err)
		}
		if insp == nil {
			t.Fatal("expected an inspector, got nil")
		}
	})

	// 2. Duplicate names are rejected
	t.Run("Register_Duplicate", func(t *testing.T) {
		reg := newRegistry()
		if err := reg.Register("probe", factory); err != nil {
			t.Fatalf("unexpected error registering: %v", err)
		}
		err := reg.Register("probe", factory)
		if !errors.Is(err, domain.ErrPluginExists) {
			t.Errorf("expected ErrPluginExists, got %v", err)
		}
	})

	// 3. Unknown names
	t.Run("New_NotFound", func(t *testing.T) {
		reg := newRegistry()
		_, err := reg.New("non-existent-plugin")
		if !errors.Is(err, domain.ErrPluginNotFound) {
			t.Errorf("expected ErrPluginNotFound, got %v", err)
		}
	})

	// 4. Each New builds a fresh inspector
	t.Run("New_Fresh", func(t *testing.T) {
		reg := newRegistry()
		if err := reg.Register("probe", factory); err != nil {
			t.Fatalf("unexpected error registering: %v", err)
		}
		a, _ := reg.New("probe")
		b, _ := reg.New("probe")
		if a == b {
			t.Error("expected distinct inspectors per New call")
		}
	})
}
