package bus

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type pingCommand struct {
	Name string
}

func (c pingCommand) Validate() error {
	if c.Name == "" {
		return errors.New("name is required")
	}
	return nil
}

func TestCommandBus_Send(t *testing.T) {
	var order []string
	trace := func(tag string) Middleware {
		return func(next CommandHandler) CommandHandler {
			return CommandHandlerFunc(func(ctx context.Context, cmd Command) error {
				order = append(order, tag)
				return next.Handle(ctx, cmd)
			})
		}
	}

	var observed []string
	b := NewCommandBus(
		trace("outer"),
		trace("inner"),
		LoggingMiddleware(zap.NewNop().Sugar()),
		MetricsMiddleware(func(name string, err error) { observed = append(observed, name) }),
	)

	var handled pingCommand
	require.NoError(t, b.Register(pingCommand{}, CommandHandlerFunc(func(_ context.Context, cmd Command) error {
		handled = cmd.(pingCommand)
		return nil
	})))

	require.NoError(t, b.Send(context.Background(), pingCommand{Name: "a"}))
	assert.Equal(t, "a", handled.Name)
	assert.Equal(t, []string{"outer", "inner"}, order)
	assert.Equal(t, []string{"pingCommand"}, observed)
}

func TestCommandBus_Errors(t *testing.T) {
	b := NewCommandBus()

	err := b.Send(context.Background(), pingCommand{Name: "a"})
	assert.ErrorIs(t, err, ErrHandlerNotFound)

	h := CommandHandlerFunc(func(context.Context, Command) error { return nil })
	require.NoError(t, b.Register(pingCommand{}, h))
	assert.ErrorIs(t, b.Register(pingCommand{}, h), ErrHandlerExists)

	called := false
	b2 := NewCommandBus()
	require.NoError(t, b2.Register(pingCommand{}, CommandHandlerFunc(func(context.Context, Command) error {
		called = true
		return nil
	})))
	assert.Error(t, b2.Send(context.Background(), pingCommand{}))
	assert.False(t, called, "invalid commands never reach the handler")
}
