// Package models, uygulamanın domain modellerini (veri yapıları) tanımlar.
//
// Bu projede veritabanı yok, modeller ya bellekte tutulan oturum durumunu
// ya da tedarikçi API'sinden gelen/giden verilerin şeklini temsil eder.
package models

import "time"

// Credential, tedarikçi API oturumunun bellekteki hali.
//
// AccessToken boşsa "token yok" demektir. ExpiresAt sıfır değerdeyse
// "bilinmiyor/süresi dolmuş" kabul edilir, şüpheli bir token asla geçerli sayılmaz.
type Credential struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}

// IsEmpty, hiç access token olmadığında true döner.
func (c Credential) IsEmpty() bool {
	return c.AccessToken == ""
}

// UsableAt, token'ın verilen anda güvenle kullanılıp kullanılamayacağını söyler.
// skew: süre dolmadan önce bırakılan güvenlik payı (istek yoldayken expire olmasın).
func (c Credential) UsableAt(now time.Time, skew time.Duration) bool {
	if c.AccessToken == "" || c.ExpiresAt.IsZero() {
		return false
	}
	return c.ExpiresAt.Add(-skew).After(now)
}
