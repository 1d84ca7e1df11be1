package services

import (
	"github.com/shopspring/decimal"

	portsrepo "github.com/bestcell/bestsystem_backend/internal/core/ports/repositories"
	portssvc "github.com/bestcell/bestsystem_backend/internal/core/ports/services"
	"github.com/bestcell/bestsystem_backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, lock portsrepo.SessionLockStore, extra ...ServiceOption) *portssvc.ServiceContainer {
	options := []ServiceOption{WithLocation(cfg.Location)}
	if cfg.DailyFine.GreaterThan(decimal.Zero) {
		options = append(options, WithDailyFine(cfg.DailyFine))
	}
	options = append(options, extra...)

	return &portssvc.ServiceContainer{
		Sale:      NewSaleService(repos.SaleRepo, repos.ParcelRepo, repos.TxManager, options...),
		Parcel:    NewParcelService(repos.SaleRepo, repos.ParcelRepo, repos.TxManager, options...),
		Reporting: NewReportingService(repos.SaleRepo, repos.ParcelRepo, options...),
		Session: NewSessionService(SessionSettings{
			Username:     cfg.OperatorUser,
			PasswordHash: cfg.OperatorPasswordHash,
			JWTSecret:    cfg.JWTSecret,
			TokenExpiry:  cfg.JWTExpiryDuration,
			Issuer:       cfg.JWTIssuer,
		}, lock, options...),
	}
}
