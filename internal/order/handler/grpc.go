package handler

import (
	"context"

	"github.com/fekuna/florist-marketplace-service/internal/auth"
	"github.com/fekuna/florist-marketplace-service/internal/order"
	"github.com/fekuna/florist-marketplace-service/internal/order/dto"
	"github.com/fekuna/florist-marketplace-service/internal/pkg/grpcx"
	"github.com/fekuna/florist-marketplace-service/internal/pkg/logger"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

const ServiceName = "florist.v1.OrderService"

type OrderServiceServer interface {
	PlaceOrder(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	ListBuyerOrders(ctx context.Context, req *emptypb.Empty) (*structpb.ListValue, error)
}

var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*OrderServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		grpcx.Unary(ServiceName, "PlaceOrder", func() *structpb.Struct { return &structpb.Struct{} },
			func(srv interface{}, ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
				return srv.(OrderServiceServer).PlaceOrder(ctx, req)
			}),
		grpcx.Unary(ServiceName, "ListBuyerOrders", func() *emptypb.Empty { return &emptypb.Empty{} },
			func(srv interface{}, ctx context.Context, req *emptypb.Empty) (*structpb.ListValue, error) {
				return srv.(OrderServiceServer).ListBuyerOrders(ctx, req)
			}),
	},
	Streams: []grpc.StreamDesc{},
}

type placeRequest struct {
	Items []dto.OrderItemInput `json:"items"`
}

type OrderHandler struct {
	uc     order.UseCase
	logger logger.ZapLogger
}

func NewOrderHandler(uc order.UseCase, log logger.ZapLogger) *OrderHandler {
	return &OrderHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *OrderHandler) Register(s grpc.ServiceRegistrar) {
	s.RegisterService(&ServiceDesc, h)
}

func buyerFromContext(ctx context.Context) (*auth.User, error) {
	u, ok := auth.UserFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "missing buyer")
	}
	if u.Role != auth.RoleBuyer {
		return nil, status.Error(codes.PermissionDenied, "buyer access required")
	}
	return u, nil
}

func (h *OrderHandler) PlaceOrder(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	u, err := buyerFromContext(ctx)
	if err != nil {
		return nil, err
	}
	var body placeRequest
	if err := grpcx.Decode(req, &body); err != nil {
		return nil, err
	}

	o, err := h.uc.PlaceOrder(ctx, &dto.PlaceOrderInput{BuyerID: u.UserID, BuyerName: u.Name, Items: body.Items})
	if err != nil {
		h.logger.Error("failed to place order", zap.String("buyer_id", u.UserID), zap.Error(err))
		return nil, grpcx.Error(err)
	}
	return grpcx.ToStruct(o)
}

func (h *OrderHandler) ListBuyerOrders(ctx context.Context, _ *emptypb.Empty) (*structpb.ListValue, error) {
	u, err := buyerFromContext(ctx)
	if err != nil {
		return nil, err
	}
	orders, err := h.uc.ListBuyerOrders(ctx, u.UserID)
	if err != nil {
		return nil, grpcx.Error(err)
	}
	return grpcx.ToList(orders)
}
