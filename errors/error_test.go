package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrap(t *testing.T) {
	t.Run("it should carry key and status through a wrap", func(t *testing.T) {
		err := WrapNotFound(fmt.Errorf("no route for %q", "/nope"))
		require.Error(t, err)

		ae := Unwrap(err)
		assert.Equal(t, ErrorRouteNotFound.Key, ae.Key)
		assert.Equal(t, 404, ae.Status)
		assert.Contains(t, ae.Error(), "/nope")
	})

	t.Run("it should return nil when wrapping nil", func(t *testing.T) {
		assert.Nil(t, Wrap(ErrorRouteNotFound, nil))
		assert.Nil(t, WrapWithStatus(ErrorGeneric, nil, 500))
	})

	t.Run("it should capture the caller", func(t *testing.T) {
		err := WrapDuplicateRoute(fmt.Errorf("boom"))

		ae := Unwrap(err)
		assert.Contains(t, ae.Caller, "_test.go")
	})
}

func TestKind(t *testing.T) {
	t.Run("it should report taxonomy kinds", func(t *testing.T) {
		assert.True(t, IsNotFound(WrapNotFound(fmt.Errorf("x"))))
		assert.True(t, IsNotFound(Wrap(ErrorParameterConversion, fmt.Errorf("x"))))
		assert.True(t, IsMethodNotAllowed(WrapMethodNotAllowed(fmt.Errorf("x"))))
		assert.True(t, IsDuplicateRoute(WrapDuplicateRoute(fmt.Errorf("x"))))
		assert.True(t, IsAmbiguousRoute(WrapAmbiguousRoute(fmt.Errorf("x"))))

		assert.False(t, IsNotFound(fmt.Errorf("plain")))
		assert.False(t, IsNotFound(nil))
	})

	t.Run("it should fall back to the generic key", func(t *testing.T) {
		assert.Equal(t, ErrorGeneric.Key, Kind(fmt.Errorf("plain")))
	})
}

func TestSetData(t *testing.T) {
	t.Run("it should attach data to wrapped errors", func(t *testing.T) {
		err := WrapMethodNotAllowed(fmt.Errorf("x"))
		err = SetData(err, "allow", []string{"GET"})

		ae := Unwrap(err)
		assert.Equal(t, []string{"GET"}, ae.Data["allow"])
	})

	t.Run("it should pass through plain errors", func(t *testing.T) {
		plain := fmt.Errorf("plain")
		assert.Equal(t, plain, SetData(plain, "k", "v"))
	})
}
