package category_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gharkeseva/gharseva-api/internal/domain/category"
)

func TestResolve_KnownVendorLabels(t *testing.T) {
	reg := category.NewRegistry()

	cases := map[string]string{
		"AC":          category.AC,
		"Plumbing":    category.Plumbing,
		"Electrician": category.Electrician,
		"PestControl": category.PestControl,
		"SmartLock":   category.SmartLock,
	}
	for label, want := range cases {
		handle, fellBack := reg.Resolve(label, category.KindVendor)
		assert.Equal(t, want, handle, "label %q", label)
		assert.False(t, fellBack, "known label %q must not fall back", label)
	}
}

func TestResolve_UnknownVendorLabel_FallsBackToDefault(t *testing.T) {
	reg := category.NewRegistry()

	handle, fellBack := reg.Resolve("Gardening", category.KindVendor)
	assert.Equal(t, category.AC, handle, "unknown labels land in the default partition")
	assert.True(t, fellBack, "the fallback must be reported so callers can log it")
}

func TestResolve_ServiceLabels(t *testing.T) {
	reg := category.NewRegistry()

	cases := map[string]string{
		"Split AC":        category.AC,
		"Washing Machine": category.Appliances,
		"One-Time":        category.HouseMaid,
		"Full Home":       category.Painting,
	}
	for label, want := range cases {
		handle, fellBack := reg.Resolve(label, category.KindService)
		assert.Equal(t, want, handle, "label %q", label)
		assert.False(t, fellBack)
	}
}

// "Installation" is used by both the plumbing and smart-lock storefronts; the
// registry resolves it to smart-lock.
func TestResolve_AmbiguousInstallationLabel(t *testing.T) {
	reg := category.NewRegistry()

	handle, fellBack := reg.Resolve("Installation", category.KindService)
	assert.Equal(t, category.SmartLock, handle)
	assert.False(t, fellBack)
}

func TestHandles_FixedOrderAndCopy(t *testing.T) {
	reg := category.NewRegistry()

	first := reg.Handles()
	assert.Len(t, first, 10)
	assert.Equal(t, category.AC, first[0])
	assert.Equal(t, category.Appliances, first[9])

	// Mutating the returned slice must not affect the registry.
	first[0] = "mutated"
	second := reg.Handles()
	assert.Equal(t, category.AC, second[0])
}
