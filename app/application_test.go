package app

import (
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewApplication_Lifecycle(t *testing.T) {
	gin.SetMode(gin.TestMode)
	t.Setenv("DB_PATH", filepath.Join(t.TempDir(), "test.db"))
	t.Setenv("CACHE_TYPE", "memory")

	application, err := NewApplication()
	require.NoError(t, err)
	require.NotNil(t, application)

	assert.Equal(t, "memory", application.Config().Cache.Type)
	assert.NotNil(t, application.server)
	assert.NotNil(t, application.scheduler)
	assert.NotNil(t, application.prefs)

	assert.NoError(t, application.Shutdown())
}

func TestNewApplication_InvalidConfiguration(t *testing.T) {
	t.Setenv("SERVER_PORT", "0")

	application, err := NewApplication()
	assert.Error(t, err)
	assert.Nil(t, application)
}

func TestApplicationLifecycle(t *testing.T) {
	t.Run("ShutdownWithNilComponents", func(t *testing.T) {
		app := &Application{}

		assert.NotPanics(t, func() {
			assert.NoError(t, app.Shutdown())
		})
	})

	t.Run("ConfigGetter", func(t *testing.T) {
		app := &Application{}
		assert.Nil(t, app.Config())
	})
}
