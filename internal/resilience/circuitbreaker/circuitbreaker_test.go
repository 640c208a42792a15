package circuitbreaker

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(name string) Config {
	return Config{
		Name:             name,
		MaxRequests:      1,
		Interval:         time.Minute,
		Timeout:          50 * time.Millisecond,
		FailureThreshold: 1.0,
		MinRequests:      3,
	}
}

func TestNew(t *testing.T) {
	cb := New(DefaultConfig("test"))

	assert.Equal(t, "test", cb.Name())
	assert.Equal(t, gobreaker.StateClosed, cb.State())
	assert.False(t, cb.IsOpen())
}

func TestCircuitBreaker_Execute_Success(t *testing.T) {
	cb := New(testConfig("execute-success"))

	got, err := cb.Execute(func() (interface{}, error) { return "ok", nil })

	require.NoError(t, err)
	assert.Equal(t, "ok", got)
}

func TestCircuitBreaker_TripsOpen(t *testing.T) {
	cb := New(testConfig("trips-open"))
	boom := errors.New("boom")

	for i := 0; i < 3; i++ {
		_, err := cb.Execute(func() (interface{}, error) { return nil, boom })
		assert.ErrorIs(t, err, boom)
	}

	assert.True(t, cb.IsOpen())
	_, err := cb.Execute(func() (interface{}, error) { return "unreached", nil })
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
}

func TestCircuitBreaker_HalfOpen(t *testing.T) {
	cb := New(testConfig("half-open"))
	for i := 0; i < 3; i++ {
		_, _ = cb.Execute(func() (interface{}, error) { return nil, errors.New("fail") })
	}
	require.True(t, cb.IsOpen())

	time.Sleep(80 * time.Millisecond)
	assert.Equal(t, gobreaker.StateHalfOpen, cb.State())

	_, err := cb.Execute(func() (interface{}, error) { return "recovered", nil })
	require.NoError(t, err)
	assert.Equal(t, gobreaker.StateClosed, cb.State())
}

func TestCircuitBreaker_CanceledDoesNotTrip(t *testing.T) {
	cb := New(testConfig("canceled"))

	for i := 0; i < 5; i++ {
		_, err := cb.Execute(func() (interface{}, error) { return nil, context.Canceled })
		assert.ErrorIs(t, err, context.Canceled)
	}

	assert.Equal(t, gobreaker.StateClosed, cb.State())
}

func TestCircuitBreaker_DeadlineDoesNotTrip(t *testing.T) {
	cb := New(testConfig("deadline"))

	for i := 0; i < 5; i++ {
		_, err := cb.Execute(func() (interface{}, error) {
			return nil, fmt.Errorf("query: %w", context.DeadlineExceeded)
		})
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	}

	assert.Equal(t, gobreaker.StateClosed, cb.State())
}

// sqliteErr mimics the modernc.org/sqlite error, which exposes its result code via Code.
type sqliteErr int

func (e sqliteErr) Error() string { return fmt.Sprintf("sqlite: code %d", int(e)) }
func (e sqliteErr) Code() int     { return int(e) }

func TestCircuitBreaker_ConstraintViolationsDoNotTrip(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{name: "postgres foreign key", err: &pgconn.PgError{Code: "23503", Message: "violates foreign key constraint"}},
		{name: "postgres check", err: &pgconn.PgError{Code: "23514"}},
		{name: "sqlite foreign key", err: sqliteErr(787)},
		{name: "sqlite constraint", err: sqliteErr(19)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cb := New(testConfig("constraint-" + tt.name))

			for i := 0; i < 5; i++ {
				_, err := cb.Execute(func() (interface{}, error) { return nil, fmt.Errorf("insert: %w", tt.err) })
				assert.ErrorIs(t, err, tt.err)
			}

			assert.Equal(t, gobreaker.StateClosed, cb.State())
		})
	}
}

func TestCircuitBreaker_ServerErrorsTrip(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{name: "postgres connection failure", err: &pgconn.PgError{Code: "08006"}},
		{name: "sqlite busy", err: sqliteErr(5)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cb := New(testConfig("server-" + tt.name))

			for i := 0; i < 3; i++ {
				_, _ = cb.Execute(func() (interface{}, error) { return nil, tt.err })
			}

			assert.True(t, cb.IsOpen())
		})
	}
}

func TestCircuitBreaker_MinRequests(t *testing.T) {
	cb := New(testConfig("min-requests"))

	for i := 0; i < 2; i++ {
		_, _ = cb.Execute(func() (interface{}, error) { return nil, errors.New("fail") })
	}

	assert.False(t, cb.IsOpen(), "must not trip before MinRequests")
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig("svc")

	assert.Equal(t, "svc", cfg.Name)
	assert.Equal(t, uint32(3), cfg.MaxRequests)
	assert.Equal(t, 0.6, cfg.FailureThreshold)
	assert.Equal(t, uint32(5), cfg.MinRequests)
}
