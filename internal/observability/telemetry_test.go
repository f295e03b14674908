package observability

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thedyrex/pickems/internal/config"
	"github.com/thedyrex/pickems/internal/platform/logging"
)

func TestStart_AllDisabled(t *testing.T) {
	tel, err := Start(config.Config{UptraceEnabled: true, ServiceName: "pickems-api"}, logging.NewNop())
	require.NoError(t, err)

	assert.Empty(t, tel.Enabled())
	assert.NoError(t, tel.Shutdown(context.Background()))
}

func TestStart_PprofServesAndStops(t *testing.T) {
	tel, err := Start(config.Config{PprofEnabled: true, PprofAddr: "127.0.0.1:0"}, logging.NewNop())
	require.NoError(t, err)
	assert.Equal(t, []string{"pprof"}, tel.Enabled())

	require.NoError(t, tel.Shutdown(context.Background()))
	assert.Empty(t, tel.Enabled())
}

func TestStart_PprofBadAddr(t *testing.T) {
	_, err := Start(config.Config{PprofEnabled: true, PprofAddr: "not-an-addr"}, logging.NewNop())
	assert.Error(t, err)
}

func TestTelemetry_ShutdownReverseOrderJoinsErrors(t *testing.T) {
	var order []string
	stop := func(name string, err error) stopFunc {
		return func(context.Context) error {
			order = append(order, name)
			return err
		}
	}
	tel := &Telemetry{logger: logging.NewNop(), components: []component{
		{name: "uptrace", stop: stop("uptrace", nil)},
		{name: "pyroscope", stop: stop("pyroscope", errors.New("flush"))},
		{name: "pprof", stop: stop("pprof", http.ErrServerClosed)},
	}}

	err := tel.Shutdown(context.Background())
	assert.Equal(t, []string{"pprof", "pyroscope", "uptrace"}, order)
	assert.ErrorIs(t, err, http.ErrServerClosed)
	assert.ErrorContains(t, err, "pyroscope: flush")
}
