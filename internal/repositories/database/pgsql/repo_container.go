package pgsql

import (
	portsrepo "github.com/belafarma/backoffice/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	ledgerRepo := newPgxLedgerRepository(dbPool)
	closingRepo := newPgxClosingRepository(dbPool)
	creditRepo := newPgxCreditRepository(dbPool)
	consignmentRepo := newPgxConsignmentRepository(dbPool)
	deliveryRepo := newPgxDeliveryRepository(dbPool)

	return portsrepo.RepositoryProvider{
		LedgerRepo:      ledgerRepo,
		ClosingRepo:     closingRepo,
		CreditRepo:      creditRepo,
		ConsignmentRepo: consignmentRepo,
		DeliveryRepo:    deliveryRepo,
	}
}
