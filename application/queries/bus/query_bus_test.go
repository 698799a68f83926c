package bus

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countQuery struct{}

func (countQuery) Validate() error { return nil }

func TestQueryBus_Ask(t *testing.T) {
	b := NewQueryBus()
	require.NoError(t, b.Register(countQuery{}, QueryHandlerFunc(func(context.Context, Query) (interface{}, error) {
		return 42, nil
	})))

	n, err := Ask[int](context.Background(), b, countQuery{})
	require.NoError(t, err)
	assert.Equal(t, 42, n)

	_, err = Ask[string](context.Background(), b, countQuery{})
	assert.Error(t, err)

	assert.ErrorIs(t, b.Register(countQuery{}, nil), ErrHandlerExists)
	_, err = NewQueryBus().Ask(context.Background(), countQuery{})
	assert.ErrorIs(t, err, ErrHandlerNotFound)
}
