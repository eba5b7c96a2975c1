package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const ServiceName = "tasklist.v1.TaskService"

// TaskServiceServer is the task API over gRPC. Messages are protobuf
// well-known types: ids travel as Int64Value, tasks as Struct with the same
// keys as the JSON representation.
type TaskServiceServer interface {
	GetTask(ctx context.Context, req *wrapperspb.Int64Value) (*structpb.Struct, error)
	ListTasks(ctx context.Context, req *structpb.Struct) (*structpb.ListValue, error)
	CreateTask(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	UpdateTask(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	DeleteTask(ctx context.Context, req *wrapperspb.Int64Value) (*emptypb.Empty, error)
	MarkComplete(ctx context.Context, req *wrapperspb.Int64Value) (*structpb.Struct, error)
	MarkIncomplete(ctx context.Context, req *wrapperspb.Int64Value) (*structpb.Struct, error)
}

var taskServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*TaskServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unaryMethod("GetTask", newInt64Value, func(s TaskServiceServer, ctx context.Context, in *wrapperspb.Int64Value) (proto.Message, error) {
			return s.GetTask(ctx, in)
		}),
		unaryMethod("ListTasks", newStruct, func(s TaskServiceServer, ctx context.Context, in *structpb.Struct) (proto.Message, error) {
			return s.ListTasks(ctx, in)
		}),
		unaryMethod("CreateTask", newStruct, func(s TaskServiceServer, ctx context.Context, in *structpb.Struct) (proto.Message, error) {
			return s.CreateTask(ctx, in)
		}),
		unaryMethod("UpdateTask", newStruct, func(s TaskServiceServer, ctx context.Context, in *structpb.Struct) (proto.Message, error) {
			return s.UpdateTask(ctx, in)
		}),
		unaryMethod("DeleteTask", newInt64Value, func(s TaskServiceServer, ctx context.Context, in *wrapperspb.Int64Value) (proto.Message, error) {
			return s.DeleteTask(ctx, in)
		}),
		unaryMethod("MarkComplete", newInt64Value, func(s TaskServiceServer, ctx context.Context, in *wrapperspb.Int64Value) (proto.Message, error) {
			return s.MarkComplete(ctx, in)
		}),
		unaryMethod("MarkIncomplete", newInt64Value, func(s TaskServiceServer, ctx context.Context, in *wrapperspb.Int64Value) (proto.Message, error) {
			return s.MarkIncomplete(ctx, in)
		}),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "tasklist/v1/task.proto",
}

func RegisterTaskServiceServer(s grpc.ServiceRegistrar, srv TaskServiceServer) {
	s.RegisterService(&taskServiceDesc, srv)
}

func newInt64Value() *wrapperspb.Int64Value { return &wrapperspb.Int64Value{} }

func newStruct() *structpb.Struct { return &structpb.Struct{} }

func unaryMethod[Req proto.Message](
	name string,
	newReq func() Req,
	call func(TaskServiceServer, context.Context, Req) (proto.Message, error),
) grpc.MethodDesc {
	fullMethod := "/" + ServiceName + "/" + name

	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := newReq()
			if err := dec(in); err != nil {
				return nil, err
			}

			handler := func(ctx context.Context, req any) (any, error) {
				resp, err := call(srv.(TaskServiceServer), ctx, req.(Req))
				if err != nil {
					return nil, err
				}
				return resp, nil
			}

			if interceptor == nil {
				return handler(ctx, in)
			}

			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: fullMethod,
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// TaskClient calls TaskService over an existing connection.
type TaskClient struct {
	cc grpc.ClientConnInterface
}

func NewTaskClient(cc grpc.ClientConnInterface) *TaskClient {
	return &TaskClient{cc: cc}
}

func (c *TaskClient) invoke(ctx context.Context, method string, in, out proto.Message, opts ...grpc.CallOption) error {
	return c.cc.Invoke(ctx, "/"+ServiceName+"/"+method, in, out, opts...)
}

func (c *TaskClient) GetTask(ctx context.Context, id int64, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.invoke(ctx, "GetTask", wrapperspb.Int64(id), out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *TaskClient) ListTasks(ctx context.Context, filter *structpb.Struct, opts ...grpc.CallOption) (*structpb.ListValue, error) {
	if filter == nil {
		filter = &structpb.Struct{}
	}
	out := new(structpb.ListValue)
	if err := c.invoke(ctx, "ListTasks", filter, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *TaskClient) CreateTask(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.invoke(ctx, "CreateTask", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *TaskClient) UpdateTask(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.invoke(ctx, "UpdateTask", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *TaskClient) DeleteTask(ctx context.Context, id int64, opts ...grpc.CallOption) error {
	return c.invoke(ctx, "DeleteTask", wrapperspb.Int64(id), new(emptypb.Empty), opts...)
}

func (c *TaskClient) MarkComplete(ctx context.Context, id int64, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.invoke(ctx, "MarkComplete", wrapperspb.Int64(id), out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *TaskClient) MarkIncomplete(ctx context.Context, id int64, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.invoke(ctx, "MarkIncomplete", wrapperspb.Int64(id), out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
