// pkg/types/answers_test.go
// TEST TYPE: Unit Tests
// DEPENDENCIES: None
// PURPOSE: Test ordered answers, freezing and kind parsing

package types_test

import (
	"encoding/json"
	"testing"

	"github.com/arthur-debert/cutter/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnswersPreservesOrder(t *testing.T) {
	a := types.NewAnswers()
	a.Set("zeta", "z")
	a.Set("alpha", 1)
	a.Set("mid", true)
	a.Set("alpha", 2)

	assert.Equal(t, []string{"zeta", "alpha", "mid"}, a.Names())
	v, ok := a.Get("alpha")
	require.True(t, ok)
	assert.Equal(t, 2, v)
	assert.Equal(t, 3, a.Len())
}

func TestAnswersMarshalJSON(t *testing.T) {
	a := types.NewAnswers()
	a.Set("project_name", "Demo App")
	a.Set("use_ci", false)
	a.Set("port", 8080)
	a.Set("tags", []string{"go", "cli"})

	data, err := json.Marshal(a)
	require.NoError(t, err)
	assert.Equal(t, `{"project_name":"Demo App","use_ci":false,"port":8080,"tags":["go","cli"]}`, string(data))

	t.Run("empty", func(t *testing.T) {
		data, err := json.Marshal(types.NewAnswers())
		require.NoError(t, err)
		assert.Equal(t, `{}`, string(data))
	})
}

func TestAnswersFreeze(t *testing.T) {
	a := types.NewAnswers()
	a.Set("x", "1")
	a.Freeze()

	assert.True(t, a.Frozen())
	assert.Panics(t, func() { a.Set("y", "2") })

	t.Run("with_copies", func(t *testing.T) {
		c := a.With("y", "2")
		assert.Equal(t, []string{"x", "y"}, c.Names())
		assert.Equal(t, 1, a.Len(), "original untouched")
		assert.False(t, c.Frozen())
	})
}

func TestAnswersNilSafe(t *testing.T) {
	var a *types.Answers
	_, ok := a.Get("x")
	assert.False(t, ok)
	assert.Empty(t, a.Names())
	assert.Empty(t, a.Map())
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		in   string
		want types.Kind
	}{
		{"string", types.KindString},
		{"str", types.KindString},
		{"bool", types.KindBool},
		{"boolean", types.KindBool},
		{"int", types.KindInt},
		{"integer", types.KindInt},
		{"list", types.KindList},
		{"choice", types.KindChoice},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := types.ParseKind(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := types.ParseKind("float")
	assert.Error(t, err)

	assert.Equal(t, false, types.KindBool.Zero())
	assert.Equal(t, 0, types.KindInt.Zero())
	assert.Equal(t, []string{}, types.KindList.Zero())
	assert.Equal(t, "", types.KindChoice.Zero())
}
