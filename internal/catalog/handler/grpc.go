package handler

import (
	"context"

	"github.com/fekuna/florist-marketplace-service/internal/catalog"
	"github.com/fekuna/florist-marketplace-service/internal/catalog/dto"
	"github.com/fekuna/florist-marketplace-service/internal/pkg/grpcx"
	"github.com/fekuna/florist-marketplace-service/internal/pkg/logger"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const ServiceName = "florist.v1.CatalogService"

type CatalogServiceServer interface {
	ListCatalog(ctx context.Context, req *emptypb.Empty) (*structpb.ListValue, error)
	GetProductDetail(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error)
	ListTrending(ctx context.Context, req *emptypb.Empty) (*structpb.ListValue, error)
	SearchCatalog(ctx context.Context, req *structpb.Struct) (*structpb.ListValue, error)
}

var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*CatalogServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		grpcx.Unary(ServiceName, "ListCatalog", func() *emptypb.Empty { return &emptypb.Empty{} },
			func(srv interface{}, ctx context.Context, req *emptypb.Empty) (*structpb.ListValue, error) {
				return srv.(CatalogServiceServer).ListCatalog(ctx, req)
			}),
		grpcx.Unary(ServiceName, "GetProductDetail", func() *wrapperspb.StringValue { return &wrapperspb.StringValue{} },
			func(srv interface{}, ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
				return srv.(CatalogServiceServer).GetProductDetail(ctx, req)
			}),
		grpcx.Unary(ServiceName, "ListTrending", func() *emptypb.Empty { return &emptypb.Empty{} },
			func(srv interface{}, ctx context.Context, req *emptypb.Empty) (*structpb.ListValue, error) {
				return srv.(CatalogServiceServer).ListTrending(ctx, req)
			}),
		grpcx.Unary(ServiceName, "SearchCatalog", func() *structpb.Struct { return &structpb.Struct{} },
			func(srv interface{}, ctx context.Context, req *structpb.Struct) (*structpb.ListValue, error) {
				return srv.(CatalogServiceServer).SearchCatalog(ctx, req)
			}),
	},
	Streams: []grpc.StreamDesc{},
}

type CatalogHandler struct {
	uc     catalog.UseCase
	logger logger.ZapLogger
}

func NewCatalogHandler(uc catalog.UseCase, log logger.ZapLogger) *CatalogHandler {
	return &CatalogHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *CatalogHandler) Register(s grpc.ServiceRegistrar) {
	s.RegisterService(&ServiceDesc, h)
}

func (h *CatalogHandler) ListCatalog(ctx context.Context, _ *emptypb.Empty) (*structpb.ListValue, error) {
	summaries, err := h.uc.ListCatalog(ctx)
	if err != nil {
		h.logger.Error("failed to list catalog", zap.Error(err))
		return nil, grpcx.Error(err)
	}
	return grpcx.ToList(summaries)
}

func (h *CatalogHandler) GetProductDetail(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	detail, err := h.uc.GetProductDetail(ctx, req.GetValue())
	if err != nil {
		return nil, grpcx.Error(err)
	}
	return grpcx.ToStruct(detail)
}

func (h *CatalogHandler) ListTrending(ctx context.Context, _ *emptypb.Empty) (*structpb.ListValue, error) {
	trending, err := h.uc.ListTrending(ctx)
	if err != nil {
		h.logger.Error("failed to list trending products", zap.Error(err))
		return nil, grpcx.Error(err)
	}
	return grpcx.ToList(trending)
}

func (h *CatalogHandler) SearchCatalog(ctx context.Context, req *structpb.Struct) (*structpb.ListValue, error) {
	var filters dto.SearchFilters
	if err := grpcx.Decode(req, &filters); err != nil {
		return nil, err
	}
	summaries, err := h.uc.SearchCatalog(ctx, &filters)
	if err != nil {
		return nil, grpcx.Error(err)
	}
	return grpcx.ToList(summaries)
}
