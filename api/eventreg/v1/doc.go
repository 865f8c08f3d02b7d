// Package eventregv1 defines the eventreg.v1 gRPC contract: message types,
// service descriptors and typed clients. Messages travel as JSON through the
// codec registered under content subtype "json".
package eventregv1
