package main

import (
	"flag"
	"testing"

	"restaurant-backend/config"
	"restaurant-backend/restaurant-svc/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

var (
	_ repository = (*storage.PostgresRepository)(nil)
	_ repository = (*storage.MemoryStore)(nil)
)

func TestOpenBackend_Memory(t *testing.T) {
	set := flag.NewFlagSet("serve", flag.ContinueOnError)
	set.Bool("memory", true, "")
	c := cli.NewContext(cli.NewApp(), set, nil)

	deps, closeDeps, err := openBackend(c, &config.Config{})
	require.NoError(t, err)
	defer closeDeps()

	assert.IsType(t, &storage.MemoryStore{}, deps.repo)
	assert.Nil(t, deps.locker)
	assert.Nil(t, deps.publisher)
}
