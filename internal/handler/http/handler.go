package http

import (
	"github.com/MKhiriev/airguard-admin/internal/logger"
	"github.com/MKhiriev/airguard-admin/internal/service"
	"github.com/MKhiriev/airguard-admin/models"
)

type Handler struct {
	services  *service.Services
	buildInfo models.AppBuildInfo

	logger *logger.Logger
}

func NewHandler(services *service.Services, buildInfo models.AppBuildInfo, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:  services,
		buildInfo: buildInfo,
		logger:    logger,
	}
}
