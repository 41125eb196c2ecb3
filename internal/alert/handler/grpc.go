package handler

import (
	"context"
	"errors"

	"github.com/fekuna/florist-marketplace-service/internal/alert"
	"github.com/fekuna/florist-marketplace-service/internal/auth"
	"github.com/fekuna/florist-marketplace-service/internal/model"
	"github.com/fekuna/florist-marketplace-service/internal/pkg/grpcx"
	"github.com/fekuna/florist-marketplace-service/internal/pkg/logger"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const ServiceName = "florist.v1.AlertService"

type AlertServiceServer interface {
	ListVendorAlerts(ctx context.Context, req *emptypb.Empty) (*structpb.ListValue, error)
	GetUnreadAlertCount(ctx context.Context, req *emptypb.Empty) (*wrapperspb.Int64Value, error)
	AcknowledgeAlert(ctx context.Context, req *wrapperspb.StringValue) (*emptypb.Empty, error)
	AcknowledgeAllAlerts(ctx context.Context, req *emptypb.Empty) (*wrapperspb.Int64Value, error)
}

var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*AlertServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		grpcx.Unary(ServiceName, "ListVendorAlerts", func() *emptypb.Empty { return &emptypb.Empty{} },
			func(srv interface{}, ctx context.Context, req *emptypb.Empty) (*structpb.ListValue, error) {
				return srv.(AlertServiceServer).ListVendorAlerts(ctx, req)
			}),
		grpcx.Unary(ServiceName, "GetUnreadAlertCount", func() *emptypb.Empty { return &emptypb.Empty{} },
			func(srv interface{}, ctx context.Context, req *emptypb.Empty) (*wrapperspb.Int64Value, error) {
				return srv.(AlertServiceServer).GetUnreadAlertCount(ctx, req)
			}),
		grpcx.Unary(ServiceName, "AcknowledgeAlert", func() *wrapperspb.StringValue { return &wrapperspb.StringValue{} },
			func(srv interface{}, ctx context.Context, req *wrapperspb.StringValue) (*emptypb.Empty, error) {
				return srv.(AlertServiceServer).AcknowledgeAlert(ctx, req)
			}),
		grpcx.Unary(ServiceName, "AcknowledgeAllAlerts", func() *emptypb.Empty { return &emptypb.Empty{} },
			func(srv interface{}, ctx context.Context, req *emptypb.Empty) (*wrapperspb.Int64Value, error) {
				return srv.(AlertServiceServer).AcknowledgeAllAlerts(ctx, req)
			}),
	},
	Streams: []grpc.StreamDesc{},
}

type AlertHandler struct {
	uc     alert.UseCase
	logger logger.ZapLogger
}

func NewAlertHandler(uc alert.UseCase, log logger.ZapLogger) *AlertHandler {
	return &AlertHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *AlertHandler) Register(s grpc.ServiceRegistrar) {
	s.RegisterService(&ServiceDesc, h)
}

func vendorID(ctx context.Context) (string, error) {
	id := auth.GetVendorID(ctx)
	if id == "" {
		return "", status.Error(codes.Unauthenticated, "missing vendor")
	}
	return id, nil
}

func (h *AlertHandler) ListVendorAlerts(ctx context.Context, _ *emptypb.Empty) (*structpb.ListValue, error) {
	id, err := vendorID(ctx)
	if err != nil {
		return nil, err
	}
	alerts, err := h.uc.ListVendorAlerts(ctx, id)
	if err != nil {
		h.logger.Error("failed to list vendor alerts", zap.String("vendor_id", id), zap.Error(err))
		return nil, grpcx.Error(err)
	}
	return grpcx.ToList(alerts)
}

func (h *AlertHandler) GetUnreadAlertCount(ctx context.Context, _ *emptypb.Empty) (*wrapperspb.Int64Value, error) {
	id, err := vendorID(ctx)
	if err != nil {
		return nil, err
	}
	n, err := h.uc.GetUnreadAlertCount(ctx, id)
	if err != nil {
		return nil, grpcx.Error(err)
	}
	return wrapperspb.Int64(int64(n)), nil
}

func (h *AlertHandler) AcknowledgeAlert(ctx context.Context, req *wrapperspb.StringValue) (*emptypb.Empty, error) {
	id, err := vendorID(ctx)
	if err != nil {
		return nil, err
	}
	if err := h.uc.AcknowledgeAlert(ctx, id, req.GetValue()); err != nil {
		return nil, grpcx.Error(err)
	}
	return &emptypb.Empty{}, nil
}

func (h *AlertHandler) AcknowledgeAllAlerts(ctx context.Context, _ *emptypb.Empty) (*wrapperspb.Int64Value, error) {
	id, err := vendorID(ctx)
	if err != nil {
		return nil, err
	}
	n, err := h.uc.AcknowledgeAllAlerts(ctx, id)
	if err != nil {
		var partial *model.PartialAckError
		if errors.As(err, &partial) {
			h.logger.Warn("partially acknowledged alerts",
				zap.String("vendor_id", id),
				zap.Int("acknowledged", partial.Acknowledged),
				zap.Strings("failed", partial.Failed),
			)
		}
		return nil, grpcx.Error(err)
	}
	return wrapperspb.Int64(int64(n)), nil
}
