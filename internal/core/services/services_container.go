package services

import (
	portsrepo "github.com/belafarma/backoffice/internal/core/ports/repositories"
	portssvc "github.com/belafarma/backoffice/internal/core/ports/services"
	"github.com/belafarma/backoffice/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Ledger = NewLedgerService(repos.LedgerRepo, repos.ClosingRepo)
	container.Credit = NewCreditService(repos.CreditRepo)
	container.Consignment = NewConsignmentService(repos.ConsignmentRepo, repos.LedgerRepo)
	container.Delivery = NewDeliveryService(repos.DeliveryRepo, cfg.DeliverySettlementLagDays)
	container.CloseOut = NewCloseOutService(repos.LedgerRepo, repos.ClosingRepo, cfg.RestDays)

	return container
}
