// Package grpcx holds helpers for services registered without generated stubs.
// Messages are protobuf well-known types; payloads travel as structpb values.
package grpcx

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/fekuna/florist-marketplace-service/internal/model"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// Unary builds a method descriptor that decodes Req and dispatches to call,
// running any configured interceptor the same way generated code does.
func Unary[Req proto.Message, Resp proto.Message](
	service, method string,
	newReq func() Req,
	call func(srv interface{}, ctx context.Context, req Req) (Resp, error),
) grpc.MethodDesc {
	fullMethod := "/" + service + "/" + method
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
			in := newReq()
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv, ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
			handler := func(ctx context.Context, req interface{}) (interface{}, error) {
				return call(srv, ctx, req.(Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// ToValue converts any JSON-serialisable value into a structpb.Value.
func ToValue(v interface{}) (*structpb.Value, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	out := &structpb.Value{}
	if err := protojson.Unmarshal(data, out); err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return out, nil
}

// ToList converts a slice into a structpb.ListValue.
func ToList(v interface{}) (*structpb.ListValue, error) {
	val, err := ToValue(v)
	if err != nil {
		return nil, err
	}
	if list := val.GetListValue(); list != nil {
		return list, nil
	}
	// nil slices marshal to null
	return &structpb.ListValue{}, nil
}

// ToStruct converts a JSON object value into a structpb.Struct.
func ToStruct(v interface{}) (*structpb.Struct, error) {
	val, err := ToValue(v)
	if err != nil {
		return nil, err
	}
	if st := val.GetStructValue(); st != nil {
		return st, nil
	}
	return nil, status.Error(codes.Internal, "value is not an object")
}

// Decode copies a request struct into dst through its JSON form.
func Decode(req *structpb.Struct, dst interface{}) error {
	if req == nil {
		return status.Error(codes.InvalidArgument, "empty request")
	}
	data, err := protojson.Marshal(req)
	if err != nil {
		return status.Error(codes.InvalidArgument, err.Error())
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return status.Error(codes.InvalidArgument, err.Error())
	}
	return nil
}

// Error maps domain errors onto gRPC status codes.
func Error(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}
	switch {
	case errors.Is(err, model.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, model.ErrInvalidInput):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, model.ErrForbidden):
		return status.Error(codes.PermissionDenied, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, model.ErrStoreUnavailable):
		return status.Error(codes.Unavailable, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}
