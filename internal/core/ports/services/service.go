package services

// ServiceContainer holds instances of all the application services. It is the
// main entry point for accessing service functionality and is what the
// handlers are wired against.
type ServiceContainer struct {
	Auth     AuthSvcFacade
	Token    TokenSvcFacade
	Shop     ShopSvcFacade
	Customer CustomerSvcFacade
	Ledger   LedgerSvcFacade
	Payment  PaymentSvcFacade
	Audit    AuditSvcFacade
}
