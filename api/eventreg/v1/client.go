package eventregv1

import (
	"context"

	"google.golang.org/grpc"
)

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{CallOption()}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func eventsMethod(name string) string { return "/" + EventsServiceName + "/" + name }

// EventsClient calls eventreg.v1.Events.
type EventsClient struct {
	cc grpc.ClientConnInterface
}

func NewEventsClient(cc grpc.ClientConnInterface) *EventsClient { return &EventsClient{cc: cc} }

func (c *EventsClient) Create(ctx context.Context, in *CreateRequest, opts ...grpc.CallOption) (*CreateResponse, error) {
	return invoke[CreateResponse](ctx, c.cc, eventsMethod("Create"), in, opts)
}

func (c *EventsClient) Read(ctx context.Context, in *ReadRequest, opts ...grpc.CallOption) (*ReadResponse, error) {
	return invoke[ReadResponse](ctx, c.cc, eventsMethod("Read"), in, opts)
}

func (c *EventsClient) Update(ctx context.Context, in *UpdateRequest, opts ...grpc.CallOption) (*UpdateResponse, error) {
	return invoke[UpdateResponse](ctx, c.cc, eventsMethod("Update"), in, opts)
}

func (c *EventsClient) Delete(ctx context.Context, in *DeleteRequest, opts ...grpc.CallOption) (*DeleteResponse, error) {
	return invoke[DeleteResponse](ctx, c.cc, eventsMethod("Delete"), in, opts)
}

func (c *EventsClient) List(ctx context.Context, in *ListRequest, opts ...grpc.CallOption) (*ListResponse, error) {
	return invoke[ListResponse](ctx, c.cc, eventsMethod("List"), in, opts)
}

func (c *EventsClient) Count(ctx context.Context, in *CountRequest, opts ...grpc.CallOption) (*CountResponse, error) {
	return invoke[CountResponse](ctx, c.cc, eventsMethod("Count"), in, opts)
}

func (c *EventsClient) ByIndex(ctx context.Context, in *ByIndexRequest, opts ...grpc.CallOption) (*ByIndexResponse, error) {
	return invoke[ByIndexResponse](ctx, c.cc, eventsMethod("ByIndex"), in, opts)
}

func (c *EventsClient) History(ctx context.Context, in *HistoryRequest, opts ...grpc.CallOption) (*HistoryResponse, error) {
	return invoke[HistoryResponse](ctx, c.cc, eventsMethod("History"), in, opts)
}

// NamespacesClient calls eventreg.v1.Namespaces.
type NamespacesClient struct {
	cc grpc.ClientConnInterface
}

func NewNamespacesClient(cc grpc.ClientConnInterface) *NamespacesClient {
	return &NamespacesClient{cc: cc}
}

func (c *NamespacesClient) Create(ctx context.Context, in *CreateNamespaceRequest, opts ...grpc.CallOption) (*CreateNamespaceResponse, error) {
	return invoke[CreateNamespaceResponse](ctx, c.cc, "/"+NamespacesServiceName+"/Create", in, opts)
}

func (c *NamespacesClient) List(ctx context.Context, in *ListNamespacesRequest, opts ...grpc.CallOption) (*ListNamespacesResponse, error) {
	return invoke[ListNamespacesResponse](ctx, c.cc, "/"+NamespacesServiceName+"/List", in, opts)
}
