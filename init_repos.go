// Package main: Repository katmanı başlatma.
//
// initRepositories, credential store ve tedarikçi client'ını oluşturur.
// main.go'daki wire-up'ı modülerleştirmek için bu dosyaya taşındı.
package main

import (
	"github.com/akinalp/partfinder/config"
	"github.com/akinalp/partfinder/repository"
	"github.com/sirupsen/logrus"
)

// Repositories, tüm repository instance'larını tutan container struct.
type Repositories struct {
	Credential repository.CredentialRepository
	Supplier   repository.SupplierRepository
}

// initRepositories, config'ten repository'leri oluşturur.
//
// Credential store process belleğinde yaşar; restart sonrası ilk arama
// yeniden login yapar.
func initRepositories(cfg *config.Config, log logrus.FieldLogger) *Repositories {
	return &Repositories{
		Credential: repository.NewMemoryCredentialRepo(),
		Supplier:   repository.NewNiraxSupplierRepo(cfg.Nirax.BaseURL, cfg.Nirax.Timeout, log),
	}
}
