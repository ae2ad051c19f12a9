package repository

import "github.com/akinalp/partfinder/models"

// CredentialRepository, tedarikçi oturumunun (access + refresh token + expiry) saklandığı yer.
//
// Tek bir process-wide kayıt tutulur. Kalıcı değildir: restart sonrası boş başlar
// ve ilk arama bir login tetikler.
type CredentialRepository interface {
	// Read, mevcut üçlüyü yan etkisiz döner.
	Read() models.Credential
	// Write, üçlüyü tek seferde değiştirir.
	Write(cred models.Credential)
	// Clear, her iki token'ı ve expiry'yi sıfırlar.
	Clear()
}
