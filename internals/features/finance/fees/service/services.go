package service

import "campusfee_backend/internals/features/finance/fees/repository"

// Services mengumpulkan semua komponen fee di atas satu store.
type Services struct {
	Writer      *LedgerWriter
	Reader      *BalanceReader
	Reporter    *Reporter
	Provisioner *Provisioner
}

func NewServices(store repository.Store, hasher PasswordHasher, emailSuffix string) *Services {
	return &Services{
		Writer:      NewLedgerWriter(store),
		Reader:      NewBalanceReader(store),
		Reporter:    NewReporter(store),
		Provisioner: NewProvisioner(store, hasher, emailSuffix),
	}
}
