package models

import (
	"bytes"
	"encoding/json"
)

// SupplierPart, tedarikçinin arama sonucundaki tek kayıt.
//
// Alanlar json.RawMessage olarak tutulur çünkü tedarikçi bazen alanı hiç
// göndermez, bazen null, bazen de string yerine sayı gönderir.
// Tek bir tuhaf alan yüzünden tüm arama başarısız olmamalı.
type SupplierPart struct {
	ID                        json.RawMessage `json:"id"`
	DataSupplierArticleNumber json.RawMessage `json:"dataSupplierArticleNumber"`
	SearchCode                json.RawMessage `json:"searchCode"`
	ManufacturerDescription   json.RawMessage `json:"manufacturerDescription"`
	ProductDescription        json.RawMessage `json:"productDescription"`
	Description               json.RawMessage `json:"description"`
}

// Part, frontend'e dönen normalize edilmiş arama sonucu.
type Part struct {
	ID           json.RawMessage `json:"id,omitempty"`
	Article      string          `json:"article"`
	Manufacturer string          `json:"manufacturer"`
	Name         string          `json:"name"`
}

// SearchResult, GET /api/search/{code} yanıtı.
// Items asla nil olmamalı, boş sonuç "[]" olarak serialize edilir.
type SearchResult struct {
	Items []Part `json:"items"`
}

// Normalize, tedarikçi kaydını Part'a çevirir.
//
//	article      = dataSupplierArticleNumber ?? searchCode ?? ""
//	manufacturer = manufacturerDescription ?? ""
//	name         = productDescription ?? description ?? ""
//
// "??" anlamı: alan var ve null değil. Boş string de "var" sayılır.
func (p SupplierPart) Normalize() Part {
	return Part{
		ID:           p.ID,
		Article:      firstPresent(p.DataSupplierArticleNumber, p.SearchCode),
		Manufacturer: firstPresent(p.ManufacturerDescription),
		Name:         firstPresent(p.ProductDescription, p.Description),
	}
}

// NormalizeParts, ham result dizisini Part listesine çevirir.
// Result dizi değilse (null, obje, eksik) boş liste döner.
func NormalizeParts(raw json.RawMessage) ([]Part, error) {
	items := make([]Part, 0)

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return items, nil
	}

	var records []SupplierPart
	if err := json.Unmarshal(trimmed, &records); err != nil {
		return nil, err
	}

	for _, rec := range records {
		items = append(items, rec.Normalize())
	}
	return items, nil
}

func firstPresent(values ...json.RawMessage) string {
	for _, v := range values {
		if isPresent(v) {
			return rawText(v)
		}
	}
	return ""
}

func isPresent(raw json.RawMessage) bool {
	t := bytes.TrimSpace(raw)
	return len(t) > 0 && !bytes.Equal(t, []byte("null"))
}

// rawText, string değerleri unquote eder; sayı/bool gibi değerlerin JSON metnini döner.
func rawText(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(bytes.TrimSpace(raw))
}
