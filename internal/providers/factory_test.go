package providers

import (
	"testing"

	"github.com/cassiomorais/recurly-gateway/internal/domain/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFactory_RegistersProviders(t *testing.T) {
	factory := NewFactory(BreakerSettings{}, nil,
		NewMockProvider("recurly"),
		NewMockProvider("sandbox"),
	)

	assert.NotNil(t, factory)
	assert.Len(t, factory.providers, 2)
	assert.Len(t, factory.circuitBreakers, 2)
}

func TestFactory_Get(t *testing.T) {
	factory := NewFactory(BreakerSettings{}, nil, NewMockProvider("recurly"))

	provider, breaker, err := factory.Get("recurly")
	require.NoError(t, err)
	assert.NotNil(t, provider)
	assert.NotNil(t, breaker)
	assert.Equal(t, "recurly", provider.Name())
}

func TestFactory_Get_UnknownProvider(t *testing.T) {
	factory := NewFactory(BreakerSettings{}, nil)

	provider, breaker, err := factory.Get("unknown")
	assert.ErrorIs(t, err, errors.ErrProviderNotFound)
	assert.Nil(t, provider)
	assert.Nil(t, breaker)
}

func TestFactory_Register(t *testing.T) {
	factory := NewFactory(BreakerSettings{}, nil)
	factory.Register(NewMockProvider("custom"))

	provider, breaker, err := factory.Get("custom")
	require.NoError(t, err)
	assert.Equal(t, "custom", provider.Name())
	assert.NotNil(t, breaker)
}
