// Package eventsvc is the transport-neutral facade over the event registry.
//
// Both the gRPC and HTTP servers call into a single Service. It resolves
// namespaces (defaulting, name validation, allow lists, auto-create and the
// namespace cap), evaluates CEL list filters, reads the change log and logs
// every mutation.
//
// Example:
//
//	svc := eventsvc.NewWithLogger(rt, logger)
//	id, _ := svc.Create(ctx, "default", "Launch", "Product launch", 1700000000, 1700003600)
//	ev, ok, _ := svc.Read(ctx, "default", id)
//	active, _ := svc.List(ctx, "default", `status == "Active"`)
package eventsvc
