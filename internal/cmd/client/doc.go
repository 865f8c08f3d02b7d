// Package client provides the `eventreg` command-line client.
//
// The CLI talks to the eventreg gRPC endpoint to manage events from a
// terminal. Output is one JSON object per line on stdout.
//
// # Address configuration
//
// The gRPC address is read from the EVREG_GRPC environment variable
// (default 127.0.0.1:50051).
//
// Usage
//
//	eventreg namespace create --name default
//
//	eventreg event create -n default --name Launch --description "Product launch" \
//	    --start 1700000000 --end 1700003600
//	eventreg event get    -n default --id 1
//	eventreg event update -n default --id 1 --name "Launch v2" --description Updated \
//	    --start 1700000000 --end 1700007200 --status Completed
//	eventreg event delete -n default --id 1
//	eventreg event list   -n default --filter 'status == "Active"'
//	eventreg event count  -n default
//	eventreg event at     -n default --index 0
//	eventreg event history -n default --limit 20 --reverse
//
// Notes
//
//   - update replaces every field; omitted flags reset to their zero value
//     and status defaults to Active.
//   - count reports events ever created, not live events.
//   - at aliases ID-1 and does not skip deleted slots.
package client
