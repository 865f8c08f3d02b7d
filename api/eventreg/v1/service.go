package eventregv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Fully-qualified service names.
const (
	EventsServiceName     = "eventreg.v1.Events"
	NamespacesServiceName = "eventreg.v1.Namespaces"
)

// EventsServer is the server API for eventreg.v1.Events.
type EventsServer interface {
	Create(context.Context, *CreateRequest) (*CreateResponse, error)
	Read(context.Context, *ReadRequest) (*ReadResponse, error)
	Update(context.Context, *UpdateRequest) (*UpdateResponse, error)
	Delete(context.Context, *DeleteRequest) (*DeleteResponse, error)
	List(context.Context, *ListRequest) (*ListResponse, error)
	Count(context.Context, *CountRequest) (*CountResponse, error)
	ByIndex(context.Context, *ByIndexRequest) (*ByIndexResponse, error)
	History(context.Context, *HistoryRequest) (*HistoryResponse, error)
}

// NamespacesServer is the server API for eventreg.v1.Namespaces.
type NamespacesServer interface {
	Create(context.Context, *CreateNamespaceRequest) (*CreateNamespaceResponse, error)
	List(context.Context, *ListNamespacesRequest) (*ListNamespacesResponse, error)
}

// UnimplementedEventsServer can be embedded to keep forward compatibility.
type UnimplementedEventsServer struct{}

func unimplemented(method string) error {
	return status.Errorf(codes.Unimplemented, "method %s not implemented", method)
}

func (UnimplementedEventsServer) Create(context.Context, *CreateRequest) (*CreateResponse, error) {
	return nil, unimplemented("Create")
}
func (UnimplementedEventsServer) Read(context.Context, *ReadRequest) (*ReadResponse, error) {
	return nil, unimplemented("Read")
}
func (UnimplementedEventsServer) Update(context.Context, *UpdateRequest) (*UpdateResponse, error) {
	return nil, unimplemented("Update")
}
func (UnimplementedEventsServer) Delete(context.Context, *DeleteRequest) (*DeleteResponse, error) {
	return nil, unimplemented("Delete")
}
func (UnimplementedEventsServer) List(context.Context, *ListRequest) (*ListResponse, error) {
	return nil, unimplemented("List")
}
func (UnimplementedEventsServer) Count(context.Context, *CountRequest) (*CountResponse, error) {
	return nil, unimplemented("Count")
}
func (UnimplementedEventsServer) ByIndex(context.Context, *ByIndexRequest) (*ByIndexResponse, error) {
	return nil, unimplemented("ByIndex")
}
func (UnimplementedEventsServer) History(context.Context, *HistoryRequest) (*HistoryResponse, error) {
	return nil, unimplemented("History")
}

// unary builds a MethodDesc that decodes Req, runs the interceptor chain and
// dispatches to call.
func unary[S any, Req any, Resp any](service, name string, call func(S, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	fullMethod := "/" + service + "/" + name
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(S), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(S), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// EventsServiceDesc describes eventreg.v1.Events for grpc.Server.
var EventsServiceDesc = grpc.ServiceDesc{
	ServiceName: EventsServiceName,
	HandlerType: (*EventsServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(EventsServiceName, "Create", EventsServer.Create),
		unary(EventsServiceName, "Read", EventsServer.Read),
		unary(EventsServiceName, "Update", EventsServer.Update),
		unary(EventsServiceName, "Delete", EventsServer.Delete),
		unary(EventsServiceName, "List", EventsServer.List),
		unary(EventsServiceName, "Count", EventsServer.Count),
		unary(EventsServiceName, "ByIndex", EventsServer.ByIndex),
		unary(EventsServiceName, "History", EventsServer.History),
	},
	Metadata: "eventreg/v1/events",
}

// NamespacesServiceDesc describes eventreg.v1.Namespaces for grpc.Server.
var NamespacesServiceDesc = grpc.ServiceDesc{
	ServiceName: NamespacesServiceName,
	HandlerType: (*NamespacesServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(NamespacesServiceName, "Create", NamespacesServer.Create),
		unary(NamespacesServiceName, "List", NamespacesServer.List),
	},
	Metadata: "eventreg/v1/namespaces",
}

func RegisterEventsServer(s grpc.ServiceRegistrar, srv EventsServer) {
	s.RegisterService(&EventsServiceDesc, srv)
}

func RegisterNamespacesServer(s grpc.ServiceRegistrar, srv NamespacesServer) {
	s.RegisterService(&NamespacesServiceDesc, srv)
}
