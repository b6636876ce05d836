package http

import "net/http"

const (
	StatusOK                  = http.StatusOK
	StatusNotFound            = http.StatusNotFound
	StatusInternalServerError = http.StatusInternalServerError

	MethodGet     = http.MethodGet
	MethodPost    = http.MethodPost
	MethodPut     = http.MethodPut
	MethodDelete  = http.MethodDelete
	MethodPatch   = http.MethodPatch
	MethodHead    = http.MethodHead
	MethodOptions = http.MethodOptions

	ContentTypeJson     = "application/json"
	ContentTypeText     = "text/plain"
	ContentTypeHeader   = "Content-Type"
	AuthorizationHeader = "Authorization"
)
