package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MyNameIsWhaaat/commentboard/internal/config"
)

func TestShowEmptyMemoryBoard(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, show(context.Background(), config.Default(), &out))
	assert.Contains(t, out.String(), "no comments yet")
}

func TestOpenRepositoryUnknownDriver(t *testing.T) {
	cfg := config.Default().Storage
	cfg.Driver = "tape"

	_, _, err := openRepository(context.Background(), cfg, zerolog.Nop())
	assert.ErrorContains(t, err, "unknown storage driver")
}
