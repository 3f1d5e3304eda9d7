package signpost

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoutesCommand(t *testing.T) {
	t.Run("it should list registered routes", func(t *testing.T) {
		r := NewRouter(Options{})
		require.NoError(t, r.Get("/users/{id:int}", entry("show")))
		require.NoError(t, r.Post("/users", entry("create")))

		cmd := RoutesCommand(r)

		out := &bytes.Buffer{}
		cmd.SetOut(out)

		require.NoError(t, cmd.Execute())

		assert.Contains(t, out.String(), "[GET] /users/{id:int}")
		assert.Contains(t, out.String(), "[POST] /users")
	})
}
