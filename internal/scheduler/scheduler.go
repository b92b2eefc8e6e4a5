package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/jhoicas/textil-erp/internal/application/alerts"
	"github.com/jhoicas/textil-erp/pkg/config"
	"github.com/jhoicas/textil-erp/pkg/logger"
)

// Scheduler ejecuta el escaneo periódico de alertas de stock según la
// expresión cron configurada (ALERT_CRON). Con webhook configurado, las
// alertas generadas se publican tras cada escaneo; el fallo de notificación
// no afecta la persistencia de las alertas.
type Scheduler struct {
	cron     *cron.Cron
	alertsUC *alerts.UseCase
	notifier alerts.Notifier
	cfg      config.AlertConfig
	log      *logger.Logger
}

// New construye el scheduler. notifier puede ser nil (sin webhook).
func New(cfg config.AlertConfig, alertsUC *alerts.UseCase, notifier alerts.Notifier, log *logger.Logger) *Scheduler {
	return &Scheduler{
		cron:     cron.New(),
		alertsUC: alertsUC,
		notifier: notifier,
		cfg:      cfg,
		log:      log,
	}
}

// Start registra el job de escaneo y arranca el cron. CronSpec vacío
// deshabilita el monitor.
func (s *Scheduler) Start() error {
	if s.cfg.CronSpec == "" {
		s.log.Info().Msg("escaneo de alertas deshabilitado (ALERT_CRON vacío)")
		return nil
	}
	if _, err := s.cron.AddFunc(s.cfg.CronSpec, s.scanStock); err != nil {
		return err
	}
	s.cron.Start()
	s.log.Info().Str("cron", s.cfg.CronSpec).Msg("escaneo de alertas programado")
	return nil
}

// Stop detiene el cron y espera a que termine el job en curso.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.log.Info().Msg("scheduler detenido")
}

func (s *Scheduler) scanStock() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	created, err := s.alertsUC.Scan(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("escaneo de alertas falló")
		return
	}
	if len(created) == 0 {
		return
	}
	s.log.Info().Int("alertas", len(created)).Msg("escaneo generó alertas de stock")

	if s.notifier == nil {
		return
	}
	if err := s.notifier.Notify(ctx, created); err != nil {
		s.log.Warn().Err(err).Msg("no se pudo notificar alertas al webhook")
	}
}
