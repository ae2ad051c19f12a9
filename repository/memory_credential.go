package repository

import (
	"sync"

	"github.com/akinalp/partfinder/models"
)

// memoryCredentialRepo, CredentialRepository interface'inin in-memory implementasyonu.
//
// Handler'lar ayrı goroutine'lerde çalıştığı için okuma/yazma sync.RWMutex ile korunur.
// Write ve Clear tüm üçlüyü tek Lock altında değiştirir, yarım yazılmış bir
// durum (yeni token + eski expiry gibi) hiçbir okuyucuya görünmez.
type memoryCredentialRepo struct {
	mu   sync.RWMutex
	cred models.Credential
}

// NewMemoryCredentialRepo, boş bir store oluşturur.
func NewMemoryCredentialRepo() CredentialRepository {
	return &memoryCredentialRepo{}
}

func (r *memoryCredentialRepo) Read() models.Credential {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.cred
}

func (r *memoryCredentialRepo) Write(cred models.Credential) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cred = cred
}

func (r *memoryCredentialRepo) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cred = models.Credential{}
}
