package signpost

import (
	"strings"

	"github.com/spf13/viper"
)

// DefaultConfig initializes a viper instance with router defaults, reading
// config files from the working directory and the environment.
func DefaultConfig() *viper.Viper {
	v := viper.New()

	v.SetConfigType("json")
	v.AddConfigPath(".")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return v
		}
		panic(err)
	}

	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("router.cache_size", 1024)
	v.SetDefault("router.allow_nested_routes", false)
	v.SetDefault("router.redirect_trailing_slash", false)
}

// ConfigOptions maps viper settings onto router Options. Unset keys fall
// back to the defaults above.
func ConfigOptions(v *viper.Viper) Options {
	setDefaults(v)

	return Options{
		CacheSize:             v.GetInt("router.cache_size"),
		AllowNestedRoutes:     v.GetBool("router.allow_nested_routes"),
		RedirectTrailingSlash: v.GetBool("router.redirect_trailing_slash"),
	}
}
