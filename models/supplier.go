package models

import "encoding/json"

// SupplierStatusSuccess, tedarikçi yanıtlarındaki başarılı "status" değeri.
const SupplierStatusSuccess = "success"

// SupplierLoginRequest, POST /auth body'si.
type SupplierLoginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// SupplierRefreshRequest, POST /auth/refresh body'si.
type SupplierRefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// SupplierTokens, login/refresh yanıtındaki token çifti.
type SupplierTokens struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// SupplierAuthResponse, login ve refresh endpoint'lerinin ortak zarfı.
// Result nil olabilir, yanıt bozuksa veya status başarısızsa.
type SupplierAuthResponse struct {
	Status       string          `json:"status"`
	ErrorMessage string          `json:"errorMessage,omitempty"`
	Result       *SupplierTokens `json:"result"`
}

// OK, yanıtın kullanılabilir bir access token içerip içermediğini söyler.
func (r *SupplierAuthResponse) OK() bool {
	return r != nil && r.Status == SupplierStatusSuccess && r.Result != nil && r.Result.AccessToken != ""
}

// SupplierSearchResponse, GET /parts/by-searchcode/{code} zarfı.
//
// Result ham tutulur: dizi değilse boş liste kabul edilir.
type SupplierSearchResponse struct {
	Status       string          `json:"status"`
	ErrorMessage string          `json:"errorMessage,omitempty"`
	Result       json.RawMessage `json:"result"`
}

// SupplierErrorBody, 2xx dışı yanıtlardan mesaj çıkarmak için.
type SupplierErrorBody struct {
	ErrorMessage string `json:"errorMessage"`
	Message      string `json:"message"`
}
