package services

import (
	portsrepo "github.com/ledgerly/ledgerly-backend/internal/core/ports/repositories"
	portssvc "github.com/ledgerly/ledgerly-backend/internal/core/ports/services"
	"github.com/ledgerly/ledgerly-backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly
// initialized dependencies.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Audit first since every other service records through it.
	container.Audit = NewAuditService(repos.AuditRepo, repos.UserRepo)

	container.Token = NewTokenService(cfg)
	container.Auth = NewAuthService(repos.UserRepo, container.Token, container.Audit)

	// Shop resolution is the authorization gate for customers and ledger.
	container.Shop = NewShopService(repos.ShopRepo, repos.UserRepo, container.Audit)
	container.Customer = NewCustomerService(repos.CustomerRepo, container.Shop, container.Audit)
	container.Ledger = NewLedgerService(cfg, repos.LedgerRepo, repos.CustomerRepo, container.Shop, container.Audit)
	container.Payment = NewPaymentService(cfg, repos.PaymentRepo, repos.LedgerRepo, repos.CustomerRepo, container.Shop, container.Audit)

	return container
}
