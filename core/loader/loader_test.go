package loader_test

import (
	"errors"
	"testing"

	"ar-sync/core/loader"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubFeature struct {
	name    string
	enabled bool
	err     error
	loaded  bool
}

func (s *stubFeature) Name() string    { return s.name }
func (s *stubFeature) IsEnabled() bool { return s.enabled }
func (s *stubFeature) Load(app fiber.Router) error {
	s.loaded = true
	return s.err
}

func TestManager_LoadAll(t *testing.T) {
	mgr := loader.NewManager()
	on := &stubFeature{name: "arsync", enabled: true}
	off := &stubFeature{name: "extra", enabled: false}
	mgr.Register(on)
	mgr.Register(off)

	loaded, err := mgr.LoadAll(fiber.New())
	require.NoError(t, err)
	assert.Equal(t, []string{"arsync"}, loaded)
	assert.True(t, on.loaded)
	assert.False(t, off.loaded)
	assert.Len(t, mgr.Features(), 2)
}

func TestManager_LoadAll_Errors(t *testing.T) {
	t.Run("LoadFailure", func(t *testing.T) {
		mgr := loader.NewManager()
		mgr.Register(&stubFeature{name: "broken", enabled: true, err: errors.New("boom")})

		_, err := mgr.LoadAll(fiber.New())
		assert.ErrorContains(t, err, "failed to load feature broken")
	})

	t.Run("Duplicate", func(t *testing.T) {
		mgr := loader.NewManager()
		mgr.Register(&stubFeature{name: "health", enabled: true})
		mgr.Register(&stubFeature{name: "health", enabled: true})

		loaded, err := mgr.LoadAll(fiber.New())
		assert.ErrorContains(t, err, "registered twice")
		assert.Equal(t, []string{"health"}, loaded)
	})
}
