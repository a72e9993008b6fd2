package agreement

import (
	"agreementlog/internal/domain/agreement"
)

// The response shapes below keep the tagged result convention the UI layer
// depends on: create/countersign carry a success flag, lookup/dashboard a
// status discriminant, failures a human-readable message.

type createInput struct {
	Body createRequest
}

type createRequest struct {
	AgreementText string `json:"agreement_text,omitempty" doc:"Agreement or action text to commit"`
	Attachment    string `json:"attachment,omitempty" doc:"Optional Base64-encoded file content"`
	Category      string `json:"category,omitempty" enum:"Sourcing,Operations,Impact" doc:"Optional dashboard category"`
}

type createOutput struct {
	Body createResponse
}

type createResponse struct {
	Success bool   `json:"success"`
	Hash    string `json:"hash,omitempty"`
	Message string `json:"message,omitempty"`
	Warning string `json:"warning,omitempty"`
}

type lookupInput struct {
	Body lookupRequest
}

type lookupRequest struct {
	Hash string `json:"hash,omitempty" doc:"Fingerprint hash of the agreement"`
}

type lookupOutput struct {
	Body lookupResponse
}

type lookupResponse struct {
	Status        string `json:"status"`
	AgreementText string `json:"agreementText,omitempty"`
	Message       string `json:"message,omitempty"`
}

type dashboardOutput struct {
	Body dashboardResponse
}

type dashboardResponse struct {
	Status     string                     `json:"status"`
	Agreements []agreement.DashboardEntry `json:"agreements,omitempty"`
	Message    string                     `json:"message,omitempty"`
}

type countersignInput struct {
	Body countersignRequest
}

type countersignRequest struct {
	Hash     string `json:"hash,omitempty" doc:"Fingerprint hash of the pending agreement"`
	UserName string `json:"userName,omitempty" doc:"Display name of the countersigner"`
}

type countersignOutput struct {
	Body countersignResponse
}

type countersignResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Warning string `json:"warning,omitempty"`
}
