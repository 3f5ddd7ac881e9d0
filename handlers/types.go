// SPDX-License-Identifier: GPL-3.0-only

package handlers

// swagger:model GenericResponse
type GenericResponse struct {
	// Message describing the result of the operation
	Message string `json:"message" example:"Operation successful"`
}

// swagger:model ResolveResponse
type ResolveResponse struct {
	// MMSC endpoint URL
	MMSCURL string `json:"mmsc_url" example:"http://mmsc.mobile.att.net"`
	// Proxy address, empty when no proxy is needed
	ProxyAddress string `json:"proxy_address" example:"proxy.mobile.att.net"`
	// Proxy port, meaningful only when proxy_set is true
	ProxyPort int `json:"proxy_port" example:"80"`
	// Whether a proxy must be used
	ProxySet bool `json:"proxy_set" example:"true"`
	// Which key matched: composite or legacy
	Match string `json:"match" example:"composite"`
}

// swagger:model ConfirmRequest
type ConfirmRequest struct {
	// SIM network code (MCCMNC)
	// required: true
	SimOperator string `json:"sim_operator" example:"310410"`
	// SIM operator display name
	SimOperatorName string `json:"sim_operator_name" example:"AT&T"`
	// ISO country code of the SIM
	SimCountry string `json:"sim_country" example:"us"`
	// Current network code (MCCMNC)
	NetworkOperator string `json:"network_operator" example:"310410"`
	// Current network display name
	NetworkOperatorName string `json:"network_operator_name" example:"AT&T"`
	// ISO country code of the current network
	NetworkCountry string `json:"network_country" example:"us"`
	// MMSC URL confirmed to work
	// required: true
	MMSCURL string `json:"mmsc_url" example:"http://mmsc.mobile.att.net"`
	// Raw proxy address as configured, may be "null"
	ProxyAddress *string `json:"proxy_address" example:"proxy.mobile.att.net"`
	// Raw proxy port as configured
	ProxyPort *int `json:"proxy_port" example:"80"`
}

// swagger:model ReportDetails
type ReportDetails struct {
	// Report identifier
	RID string `json:"rid" example:"5f0c6b5e-8a39-4c38-9d77-2b8f3d1f1c11"`
	// Reported fingerprint mmscUrl|proxyAddress|proxyPort
	ApnData string `json:"apn_data" example:"http://mmsc.mobile.att.net|proxy.mobile.att.net|80"`
	// SIM network code
	SimOperator string `json:"sim_operator" example:"310410"`
	// SIM operator display name
	SimOperatorName string `json:"sim_operator_name" example:"AT&T"`
	// ISO country code of the SIM
	SimCountry string `json:"sim_country" example:"us"`
	// International dialing code of the SIM country, 0 when unknown
	SimDialingCode int `json:"sim_dialing_code" example:"1"`
	// Current network code
	NetworkOperator string `json:"network_operator" example:"310410"`
	// Current network display name
	NetworkOperatorName string `json:"network_operator_name" example:"AT&T"`
	// ISO country code of the current network
	NetworkCountry string `json:"network_country" example:"us"`
	// Number of times this exact report was received
	Hits int `json:"hits" example:"3"`
	// First time the report was received
	CreatedAt string `json:"created_at" example:"2023-10-01T12:00:00Z"`
	// Last time the report was received
	UpdatedAt string `json:"updated_at" example:"2023-10-01T12:00:00Z"`
}

// swagger:model PaginationDetails
type PaginationDetails struct {
	// Current page number
	Page int `json:"page"`
	// Page size
	PageSize int `json:"page_size"`
	// Total number of items
	Total int64 `json:"total"`
	// Total number of pages
	TotalPages int `json:"total_pages"`
}

// swagger:model ReportListResponse
type ReportListResponse struct {
	// List of collected reports
	Data []ReportDetails `json:"data"`
	// Pagination details
	Pagination PaginationDetails `json:"pagination"`
	// Message indicating successful retrieval
	Message string `json:"message" example:"Reports retrieved successfully"`
}
