package grpc

import (
	"context"
	"math"
	"strconv"

	svcerrors "github.com/Raisondetr3/tasklist-service/internal/errors"
	"github.com/Raisondetr3/tasklist-service/internal/model"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

func (s *GRPCServer) GetTask(ctx context.Context, req *wrapperspb.Int64Value) (*structpb.Struct, error) {
	task, err := s.taskService.GetTask(ctx, idString(req))
	if err != nil {
		return nil, toStatus(err)
	}
	return model.TaskToStruct(task), nil
}

// ListTasks accepts optional "title" and "sort" string fields.
func (s *GRPCServer) ListTasks(ctx context.Context, req *structpb.Struct) (*structpb.ListValue, error) {
	fields, err := stringFields(req, nil, []string{"title", "sort"})
	if err != nil {
		return nil, toStatus(err)
	}

	var title *string
	if t, ok := fields["title"]; ok && t != "" {
		title = &t
	}

	tasks, err := s.taskService.ListTasks(ctx, title, fields["sort"])
	if err != nil {
		return nil, toStatus(err)
	}
	return model.TasksToListValue(tasks), nil
}

func (s *GRPCServer) CreateTask(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	fields, err := stringFields(req, []string{"title", "description"}, nil)
	if err != nil {
		return nil, toStatus(err)
	}

	task, err := s.taskService.CreateTask(ctx, fields["title"], fields["description"])
	if err != nil {
		return nil, toStatus(err)
	}
	return model.TaskToStruct(task), nil
}

// UpdateTask expects {"id": number, "title": string, "description": string}.
func (s *GRPCServer) UpdateTask(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	rawID, err := numberField(req, "id")
	if err != nil {
		return nil, toStatus(err)
	}

	body := &structpb.Struct{Fields: make(map[string]*structpb.Value, len(req.GetFields()))}
	for k, v := range req.GetFields() {
		if k != "id" {
			body.Fields[k] = v
		}
	}

	task, err := s.taskService.UpdateTask(ctx, rawID, func() (string, string, error) {
		fields, err := stringFields(body, []string{"title", "description"}, nil)
		if err != nil {
			return "", "", err
		}
		return fields["title"], fields["description"], nil
	})
	if err != nil {
		return nil, toStatus(err)
	}
	return model.TaskToStruct(task), nil
}

func (s *GRPCServer) DeleteTask(ctx context.Context, req *wrapperspb.Int64Value) (*emptypb.Empty, error) {
	if _, err := s.taskService.DeleteTask(ctx, idString(req)); err != nil {
		return nil, toStatus(err)
	}
	return &emptypb.Empty{}, nil
}

func (s *GRPCServer) MarkComplete(ctx context.Context, req *wrapperspb.Int64Value) (*structpb.Struct, error) {
	task, err := s.taskService.MarkComplete(ctx, idString(req))
	if err != nil {
		return nil, toStatus(err)
	}
	return model.TaskToStruct(task), nil
}

func (s *GRPCServer) MarkIncomplete(ctx context.Context, req *wrapperspb.Int64Value) (*structpb.Struct, error) {
	task, err := s.taskService.MarkIncomplete(ctx, idString(req))
	if err != nil {
		return nil, toStatus(err)
	}
	return model.TaskToStruct(task), nil
}

func toStatus(err error) error {
	return svcerrors.FromError(err).ToGRPCStatus()
}

// idString gives the id the same textual form as an HTTP path segment so
// both transports share one parser.
func idString(req *wrapperspb.Int64Value) string {
	return strconv.FormatInt(req.GetValue(), 10)
}

func numberField(req *structpb.Struct, key string) (string, error) {
	v, ok := req.GetFields()[key]
	if !ok {
		return "", svcerrors.InvalidBody()
	}

	n, ok := v.GetKind().(*structpb.Value_NumberValue)
	if !ok {
		return "", svcerrors.InvalidBody()
	}

	f := n.NumberValue
	if f != math.Trunc(f) || math.Abs(f) > 1<<53 {
		return strconv.FormatFloat(f, 'f', -1, 64), nil
	}
	return strconv.FormatInt(int64(f), 10), nil
}

// stringFields checks that req has every required key, no keys outside
// required+optional, and only string values.
func stringFields(req *structpb.Struct, required, optional []string) (map[string]string, error) {
	allowed := make(map[string]bool, len(required)+len(optional))
	for _, k := range required {
		allowed[k] = true
	}
	for _, k := range optional {
		allowed[k] = true
	}

	out := make(map[string]string, len(allowed))
	for k, v := range req.GetFields() {
		if !allowed[k] {
			return nil, svcerrors.InvalidBody()
		}
		s, ok := v.GetKind().(*structpb.Value_StringValue)
		if !ok {
			return nil, svcerrors.InvalidBody()
		}
		out[k] = s.StringValue
	}

	for _, k := range required {
		if _, ok := out[k]; !ok {
			return nil, svcerrors.InvalidBody()
		}
	}
	return out, nil
}
