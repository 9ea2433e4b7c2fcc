package server

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/finplanner/internal/logging"
	"github.com/dmitrijs2005/finplanner/internal/server/config"
	"github.com/dmitrijs2005/finplanner/internal/server/mail"
	"github.com/dmitrijs2005/finplanner/internal/server/repositories/repomanager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memoryConfig() *config.Config {
	c := &config.Config{}
	c.LoadDefaults()
	c.DatabaseDSN = config.MemoryDSN
	c.HTTPAddr = "127.0.0.1:0"
	return c
}

func TestOpenStorage_Memory(t *testing.T) {
	db, m, err := OpenStorage(context.Background(), memoryConfig(), logging.Nop())
	require.NoError(t, err)
	assert.Nil(t, db)
	assert.IsType(t, &repomanager.MemoryRepositoryManager{}, m)
}

func TestOpenStorage_BadDSN(t *testing.T) {
	c := memoryConfig()
	c.DatabaseDSN = "postgres://nobody@127.0.0.1:1/none?sslmode=disable&connect_timeout=1"

	_, _, err := OpenStorage(context.Background(), c, logging.Nop())
	assert.Error(t, err)
}

func TestNewMailSender(t *testing.T) {
	c := memoryConfig()

	s, err := newMailSender(context.Background(), c, logging.Nop())
	require.NoError(t, err)
	assert.IsType(t, &mail.LogSender{}, s)

	c.MailProvider = "pigeon"
	_, err = newMailSender(context.Background(), c, logging.Nop())
	assert.Error(t, err)

	c.MailProvider = config.MailProviderSES
	c.MailFrom = ""
	_, err = newMailSender(context.Background(), c, logging.Nop())
	assert.Error(t, err)
}

func TestApp_RunStopsOnCancel(t *testing.T) {
	app, err := NewApp(context.Background(), memoryConfig())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	cancel()
	assert.NoError(t, <-done)
}
