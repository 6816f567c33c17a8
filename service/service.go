package service

import (
	"qaportal/config"
	"qaportal/pkg/logger"
	"qaportal/storage"
)

type IServiceManager interface {
	Session() SessionService
}

type service struct {
	sessionService SessionService
}

func New(stg storage.IStore, cfg config.Config, log logger.ILogger) IServiceManager {
	return &service{
		sessionService: NewSessionService(stg, cfg.AdminPhone, log),
	}
}

func (s *service) Session() SessionService {
	return s.sessionService
}
