package rpc

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hashicorp/go-plugin"
	"google.golang.org/grpc"
	"google.golang.org/grpc/encoding"
)

const (
	PluginMapKey      = "runsheet"
	serviceName       = "runsheet.importer.v1.RunsheetImporter"
	jsonCodecName     = "json"
	methodGetMetadata = "/" + serviceName + "/GetMetadata"
	methodImportItems = "/" + serviceName + "/ImportItems"
)

var HandshakeConfig = plugin.HandshakeConfig{
	ProtocolVersion:  1,
	MagicCookieKey:   "RUNSHEET_IMPORTER",
	MagicCookieValue: "runsheet",
}

type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

func (jsonCodec) Name() string {
	return jsonCodecName
}

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

type Empty struct{}

type Metadata struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	Description string `json:"description"`
}

type ImportRequest struct {
	WorkspacePath string `json:"workspace_path"`
	Query         string `json:"query"`
	Limit         int32  `json:"limit"`
}

type ImportedItem struct {
	Name           string   `json:"name"`
	Slug           string   `json:"slug"`
	Tags           []string `json:"tags"`
	DefaultMinutes int32    `json:"default_minutes"`
	Body           string   `json:"body"`
}

type ImportItemsResponse struct {
	Items []ImportedItem `json:"items"`
}

type RunsheetImporterServer interface {
	GetMetadata(ctx context.Context, in *Empty) (*Metadata, error)
	ImportItems(ctx context.Context, in *ImportRequest) (*ImportItemsResponse, error)
}

type RunsheetImporterClient interface {
	GetMetadata(ctx context.Context) (*Metadata, error)
	ImportItems(ctx context.Context, in *ImportRequest) (*ImportItemsResponse, error)
}

type runsheetImporterClient struct {
	conn *grpc.ClientConn
}

func NewRunsheetImporterClient(conn *grpc.ClientConn) RunsheetImporterClient {
	return &runsheetImporterClient{conn: conn}
}

func (c *runsheetImporterClient) GetMetadata(ctx context.Context) (*Metadata, error) {
	out := &Metadata{}
	if err := c.conn.Invoke(ctx, methodGetMetadata, &Empty{}, out, grpc.CallContentSubtype(jsonCodecName)); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *runsheetImporterClient) ImportItems(ctx context.Context, in *ImportRequest) (*ImportItemsResponse, error) {
	out := &ImportItemsResponse{}
	if err := c.conn.Invoke(ctx, methodImportItems, in, out, grpc.CallContentSubtype(jsonCodecName)); err != nil {
		return nil, err
	}
	return out, nil
}

func RegisterRunsheetImporterServer(server grpc.ServiceRegistrar, impl RunsheetImporterServer) {
	server.RegisterService(&grpc.ServiceDesc{
		ServiceName: serviceName,
		HandlerType: (*RunsheetImporterServer)(nil),
		Methods: []grpc.MethodDesc{
			{
				MethodName: "GetMetadata",
				Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
					in := &Empty{}
					if err := dec(in); err != nil {
						return nil, err
					}
					if interceptor == nil {
						return impl.GetMetadata(ctx, in)
					}
					info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodGetMetadata}
					handler := func(ctx context.Context, req any) (any, error) {
						empty, ok := req.(*Empty)
						if !ok {
							return nil, fmt.Errorf("invalid request type")
						}
						return impl.GetMetadata(ctx, empty)
					}
					return interceptor(ctx, in, info, handler)
				},
			},
			{
				MethodName: "ImportItems",
				Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
					in := &ImportRequest{}
					if err := dec(in); err != nil {
						return nil, err
					}
					if interceptor == nil {
						return impl.ImportItems(ctx, in)
					}
					info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodImportItems}
					handler := func(ctx context.Context, req any) (any, error) {
						inReq, ok := req.(*ImportRequest)
						if !ok {
							return nil, fmt.Errorf("invalid request type")
						}
						return impl.ImportItems(ctx, inReq)
					}
					return interceptor(ctx, in, info, handler)
				},
			},
		},
		Streams:  []grpc.StreamDesc{},
		Metadata: "schemas/importer-rpc-v1.proto",
	}, impl)
}

type GRPCPlugin struct {
	plugin.NetRPCUnsupportedPlugin
	Impl RunsheetImporterServer
}

func (p *GRPCPlugin) GRPCServer(_ *plugin.GRPCBroker, server *grpc.Server) error {
	RegisterRunsheetImporterServer(server, p.Impl)
	return nil
}

func (p *GRPCPlugin) GRPCClient(_ context.Context, _ *plugin.GRPCBroker, conn *grpc.ClientConn) (any, error) {
	return NewRunsheetImporterClient(conn), nil
}

func PluginMap(impl RunsheetImporterServer) map[string]plugin.Plugin {
	return map[string]plugin.Plugin{
		PluginMapKey: &GRPCPlugin{Impl: impl},
	}
}
