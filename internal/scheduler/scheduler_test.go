package scheduler_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/textil-erp/internal/scheduler"
	"github.com/jhoicas/textil-erp/pkg/config"
	"github.com/jhoicas/textil-erp/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "production", Level: "error"})
}

func TestStart_ExpresionCronInvalidaRetornaError(t *testing.T) {
	s := scheduler.New(config.AlertConfig{CronSpec: "cada cinco minutos"}, nil, nil, testLogger())

	err := s.Start()
	assert.Error(t, err, "una expresión cron inválida debe fallar al arrancar, no quedar muda")
}

func TestStart_SinExpresionDeshabilitaElMonitor(t *testing.T) {
	s := scheduler.New(config.AlertConfig{}, nil, nil, testLogger())

	assert.NoError(t, s.Start())
}

func TestStart_ExpresionValida(t *testing.T) {
	s := scheduler.New(config.AlertConfig{CronSpec: "*/5 * * * *"}, nil, nil, testLogger())

	assert.NoError(t, s.Start())
	s.Stop()
}
