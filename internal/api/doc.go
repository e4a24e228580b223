// Package api implements the HTTP handlers of the sample-data service: the
// posts endpoints the fetch controller talks to, plus health, service
// description and the deliberately slow computation. Handlers translate HTTP
// concerns to sampledata operations and map errors to status codes in one
// place.
package api
