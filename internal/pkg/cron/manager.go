package cron

import (
	"Inkwell/internal/api/config"
	"Inkwell/internal/job"
	log "log/slog"

	"github.com/robfig/cron/v3"
)

type Manager struct {
	engine        *cron.Cron
	cfg           config.CronConfig
	tagCleanupJob *job.TagCleanupJob
}

func NewCronManager(cfg config.CronConfig, tagCleanupJob *job.TagCleanupJob) *Manager {
	return &Manager{
		engine:        cron.New(cron.WithSeconds()),
		cfg:           cfg,
		tagCleanupJob: tagCleanupJob,
	}
}

// RegisterJobs 注册定时任务, jobs with an empty schedule stay disabled
func (s *Manager) RegisterJobs() error {
	if s.cfg.TagCleanup != "" {
		if _, err := s.engine.AddJob(s.cfg.TagCleanup, s.tagCleanupJob); err != nil {
			return err
		}
		log.Info("cron job registered", "job", "tag_cleanup", "schedule", s.cfg.TagCleanup)
	}
	return nil
}

// Entries 已注册任务数
func (s *Manager) Entries() int {
	return len(s.engine.Entries())
}

// Run 注册并启动定时任务. Nothing is started when no job is scheduled.
func (s *Manager) Run() error {
	if err := s.RegisterJobs(); err != nil {
		return err
	}
	if s.Entries() == 0 {
		log.Info("no cron jobs scheduled")
		return nil
	}
	log.Info("Cron 定时任务引擎启动", "jobs", s.Entries())
	s.engine.Start()
	return nil
}

// Stop 停止调度并等待运行中的任务结束
func (s *Manager) Stop() {
	log.Info("Cron 定时任务引擎停止")
	<-s.engine.Stop().Done()
}
