package signpost

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestConfigOptions(t *testing.T) {
	t.Run("it should apply defaults", func(t *testing.T) {
		opts := ConfigOptions(viper.New())

		assert.Equal(t, 1024, opts.CacheSize)
		assert.False(t, opts.AllowNestedRoutes)
		assert.False(t, opts.RedirectTrailingSlash)
	})

	t.Run("it should honor overrides", func(t *testing.T) {
		v := viper.New()
		v.Set("router.cache_size", 0)
		v.Set("router.allow_nested_routes", true)
		v.Set("router.redirect_trailing_slash", true)

		opts := ConfigOptions(v)

		assert.Equal(t, 0, opts.CacheSize)
		assert.True(t, opts.AllowNestedRoutes)
		assert.True(t, opts.RedirectTrailingSlash)
	})
}
