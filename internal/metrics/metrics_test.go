package metrics

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuth_CountsByResult(t *testing.T) {
	m := NewAuth(nil)

	m.ObserveLogin(ResultOK)
	m.ObserveLogin(ResultInvalid)
	m.ObserveLogin(ResultInvalid)
	m.ObserveRegister(ResultServer)
	m.ObserveEmailCheck(ResultTaken)
	m.ObservePasswordReset(ResultOK)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Login.WithLabelValues(ResultOK)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Login.WithLabelValues(ResultInvalid)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Register.WithLabelValues(ResultServer)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.EmailChecks.WithLabelValues(ResultTaken)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ResetMails.WithLabelValues(ResultOK)))
}

func TestAuth_Registers(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewAuth(reg)
	m.ObserveRegister(ResultOK)

	err := testutil.GatherAndCompare(reg, strings.NewReader(`
# HELP heva_auth_register_total Registration attempts by result.
# TYPE heva_auth_register_total counter
heva_auth_register_total{result="ok"} 1
`), "heva_auth_register_total")
	require.NoError(t, err)
}

func TestAuth_NilIsNoop(t *testing.T) {
	var m *Auth
	assert.NotPanics(t, func() {
		m.ObserveLogin(ResultOK)
		m.ObserveRegister(ResultOK)
		m.ObserveEmailCheck(ResultError)
		m.ObservePasswordReset(ResultError)
	})
}
