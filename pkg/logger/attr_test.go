package logger_test

import (
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/apikeys/pkg/logger"
)

func TestGroup(t *testing.T) {
	attr := logger.Group("req", slog.String("id", "1"), slog.Int("n", 2))
	require.Equal(t, "req", attr.Key)
	require.Equal(t, slog.KindGroup, attr.Value.Kind())
	g := attr.Value.Group()
	require.Len(t, g, 2)
	assert.Equal(t, "id", g[0].Key)
	assert.Equal(t, "n", g[1].Key)
}

func TestErrors(t *testing.T) {
	err1 := errors.New("first")
	err2 := errors.New("second")

	attr := logger.Errors(err1, nil, err2)
	require.Equal(t, "errors", attr.Key)
	g := attr.Value.Group()
	require.Len(t, g, 2)
	assert.Equal(t, err1, g[0].Value.Any())
	assert.Equal(t, err2, g[1].Value.Any())

	assert.True(t, logger.Errors(nil).Equal(slog.Attr{}))
}

func TestError(t *testing.T) {
	err := errors.New("boom")
	attr := logger.Error(err)
	require.Equal(t, "error", attr.Key)
	assert.Equal(t, err, attr.Value.Any())

	assert.True(t, logger.Error(nil).Equal(slog.Attr{}))
}

func TestKeyAttrs(t *testing.T) {
	id := logger.KeyID("01ARZ3NDEKTSV4RRFFQ69G5FAV")
	assert.Equal(t, logger.KeyIDKey, id.Key)
	assert.Equal(t, "01ARZ3NDEKTSV4RRFFQ69G5FAV", id.Value.String())
	assert.True(t, logger.KeyID("").Equal(slog.Attr{}))

	prefix := logger.KeyPrefix("acme_live")
	assert.Equal(t, logger.KeyPrefixKey, prefix.Key)
	assert.True(t, logger.KeyPrefix("").Equal(slog.Attr{}))

	outcome := logger.Outcome("verified")
	assert.Equal(t, logger.OutcomeKey, outcome.Key)
	assert.Equal(t, "verified", outcome.Value.String())
}

func TestComponentAndDuration(t *testing.T) {
	assert.Equal(t, "issuer", logger.Component("issuer").Value.String())

	d := logger.Duration(time.Second)
	assert.Equal(t, "duration", d.Key)
	assert.Equal(t, time.Second, d.Value.Duration())
}
