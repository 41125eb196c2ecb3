package handler

import (
	"context"

	"github.com/fekuna/florist-marketplace-service/internal/auth"
	"github.com/fekuna/florist-marketplace-service/internal/listing"
	"github.com/fekuna/florist-marketplace-service/internal/listing/dto"
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

const ServiceName = "florist.v1.ListingService"

type ListingServiceServer interface {
	CreateListing(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	ListVendorListings(ctx context.Context, req *emptypb.Empty) (*structpb.ListValue, error)
	UpdateListing(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	DeleteListing(ctx context.Context, req *wrapperspb.StringValue) (*emptypb.Empty, error)
}

var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ListingServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		grpcx.Unary(ServiceName, "CreateListing", func() *structpb.Struct { return &structpb.Struct{} },
			func(srv interface{}, ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
				return srv.(ListingServiceServer).CreateListing(ctx, req)
			}),
		grpcx.Unary(ServiceName, "ListVendorListings", func() *emptypb.Empty { return &emptypb.Empty{} },
			func(srv interface{}, ctx context.Context, req *emptypb.Empty) (*structpb.ListValue, error) {
				return srv.(ListingServiceServer).ListVendorListings(ctx, req)
			}),
		grpcx.Unary(ServiceName, "UpdateListing", func() *structpb.Struct { return &structpb.Struct{} },
			func(srv interface{}, ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
				return srv.(ListingServiceServer).UpdateListing(ctx, req)
			}),
		grpcx.Unary(ServiceName, "DeleteListing", func() *wrapperspb.StringValue { return &wrapperspb.StringValue{} },
			func(srv interface{}, ctx context.Context, req *wrapperspb.StringValue) (*emptypb.Empty, error) {
				return srv.(ListingServiceServer).DeleteListing(ctx, req)
			}),
	},
	Streams: []grpc.StreamDesc{},
}

// createRequest is the wire shape shared by gRPC and HTTP.
type createRequest struct {
	CanonicalName string   `json:"canonicalName"`
	Price         *float64 `json:"price"`
	Category      string   `json:"category"`
	Color         string   `json:"color"`
	StemsPerBunch int      `json:"stemPerBunch"`
	UnitsPerBox   int      `json:"unitPerBox"`
	BoxType       string   `json:"boxType"`
}

func (r *createRequest) toInput(u *auth.User) *dto.CreateListingInput {
	return &dto.CreateListingInput{
		VendorID:      u.UserID,
		VendorName:    u.Name,
		CanonicalName: r.CanonicalName,
		Price:         r.Price,
		Category:      r.Category,
		Color:         r.Color,
		StemsPerBunch: r.StemsPerBunch,
		UnitsPerBox:   r.UnitsPerBox,
		BoxType:       r.BoxType,
	}
}

type updateRequest struct {
	ID string `json:"id"`
	dto.ListingFields
}

type ListingHandler struct {
	uc     listing.UseCase
	logger logger.ZapLogger
}

func NewListingHandler(uc listing.UseCase, log logger.ZapLogger) *ListingHandler {
	return &ListingHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *ListingHandler) Register(s grpc.ServiceRegistrar) {
	s.RegisterService(&ServiceDesc, h)
}

func vendorFromContext(ctx context.Context) (*auth.User, error) {
	u, ok := auth.UserFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "missing vendor")
	}
	if u.Role != auth.RoleVendor {
		return nil, status.Error(codes.PermissionDenied, "vendor access required")
	}
	return u, nil
}

func (h *ListingHandler) CreateListing(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	u, err := vendorFromContext(ctx)
	if err != nil {
		return nil, err
	}
	var body createRequest
	if err := grpcx.Decode(req, &body); err != nil {
		return nil, err
	}

	l, err := h.uc.CreateListing(ctx, body.toInput(u))
	if err != nil {
		h.logger.Error("failed to create listing", zap.String("vendor_id", u.UserID), zap.Error(err))
		return nil, grpcx.Error(err)
	}
	return grpcx.ToStruct(l)
}

func (h *ListingHandler) ListVendorListings(ctx context.Context, _ *emptypb.Empty) (*structpb.ListValue, error) {
	u, err := vendorFromContext(ctx)
	if err != nil {
		return nil, err
	}
	listings, err := h.uc.ListVendorListings(ctx, u.UserID)
	if err != nil {
		return nil, grpcx.Error(err)
	}
	return grpcx.ToList(listings)
}

func (h *ListingHandler) UpdateListing(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	u, err := vendorFromContext(ctx)
	if err != nil {
		return nil, err
	}
	var body updateRequest
	if err := grpcx.Decode(req, &body); err != nil {
		return nil, err
	}

	l, err := h.uc.UpdateListing(ctx, &dto.UpdateListingInput{ID: body.ID, VendorID: u.UserID, Fields: body.ListingFields})
	if err != nil {
		return nil, grpcx.Error(err)
	}
	return grpcx.ToStruct(l)
}

func (h *ListingHandler) DeleteListing(ctx context.Context, req *wrapperspb.StringValue) (*emptypb.Empty, error) {
	u, err := vendorFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := h.uc.DeleteListing(ctx, u.UserID, req.GetValue()); err != nil {
		return nil, grpcx.Error(err)
	}
	return &emptypb.Empty{}, nil
}
