package infra

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errFalha = errors.New("endpoint indisponível")

func novoCB(openTimeout time.Duration) *CircuitBreaker {
	return NewCircuitBreaker(CircuitBreakerConfig{
		FailureThreshold: 3,
		SuccessThreshold: 2,
		OpenTimeout:      openTimeout,
	})
}

func TestCircuitBreakerAbreAposFalhasConsecutivas(t *testing.T) {
	cb := novoCB(time.Minute)

	for i := 0; i < 2; i++ {
		_ = cb.Execute(func() error { return errFalha })
		assert.Equal(t, CBClosed, cb.State())
	}

	_ = cb.Execute(func() error { return errFalha })
	assert.Equal(t, CBOpen, cb.State())

	// Aberto: fast-fail sem executar a função.
	executado := false
	err := cb.Execute(func() error { executado = true; return nil })
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.False(t, executado)
}

func TestCircuitBreakerSucessoZeraContagem(t *testing.T) {
	cb := novoCB(time.Minute)

	_ = cb.Execute(func() error { return errFalha })
	_ = cb.Execute(func() error { return errFalha })
	require.NoError(t, cb.Execute(func() error { return nil }))

	// A sequência recomeça do zero após um sucesso.
	_ = cb.Execute(func() error { return errFalha })
	_ = cb.Execute(func() error { return errFalha })
	assert.Equal(t, CBClosed, cb.State())
}

func TestCircuitBreakerMeioAbertoFechaComSucessos(t *testing.T) {
	cb := novoCB(10 * time.Millisecond)

	for i := 0; i < 3; i++ {
		_ = cb.Execute(func() error { return errFalha })
	}
	require.Equal(t, CBOpen, cb.State())

	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, CBHalfOpen, cb.State())

	require.NoError(t, cb.Execute(func() error { return nil }))
	assert.Equal(t, CBHalfOpen, cb.State())
	require.NoError(t, cb.Execute(func() error { return nil }))
	assert.Equal(t, CBClosed, cb.State())
}

func TestCircuitBreakerProbeFalhandoReabre(t *testing.T) {
	cb := novoCB(10 * time.Millisecond)

	for i := 0; i < 3; i++ {
		_ = cb.Execute(func() error { return errFalha })
	}
	time.Sleep(20 * time.Millisecond)
	require.Equal(t, CBHalfOpen, cb.State())

	_ = cb.Execute(func() error { return errFalha })
	assert.Equal(t, CBOpen, cb.State())
}

func TestCircuitBreakerEstadoLegivel(t *testing.T) {
	assert.Equal(t, "closed", CBClosed.String())
	assert.Equal(t, "open", CBOpen.String())
	assert.Equal(t, "half-open", CBHalfOpen.String())
}
