package models

import "github.com/golang-jwt/jwt/v5"

// AccessTokenClaims, tedarikçi access token'ının payload'ından okuduğumuz kısım.
//
// Token 3 parçadan oluşur: header.payload.signature
// İmzayı doğrulamıyoruz (anahtar tedarikçide), sadece "exp" claim'i ile
// token'ın ne zaman expire olacağını öğreniyoruz. jwt.NumericDate hem tam sayı
// hem ondalıklı saniye değerlerini parse eder.
type AccessTokenClaims struct {
	ExpiresAt *jwt.NumericDate `json:"exp"`
}
