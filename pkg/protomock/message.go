package protomock

import (
	"encoding/json"
	"fmt"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/dynamicpb"
)

var unmarshalOpts = protojson.UnmarshalOptions{DiscardUnknown: true}

// ToMessage converts a generated map into a dynamic message of type md.
// Keys unknown to md are dropped.
func ToMessage(md protoreflect.MessageDescriptor, data map[string]any) (*dynamicpb.Message, error) {
	msg := dynamicpb.NewMessage(md)
	if len(data) == 0 {
		return msg, nil
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal message data: %w", err)
	}
	if err := unmarshalOpts.Unmarshal(raw, msg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal into %s: %w", md.FullName(), err)
	}
	return msg, nil
}

// ToMap converts a message to its protojson map form.
func ToMap(msg proto.Message) map[string]any {
	if msg == nil {
		return nil
	}
	raw, err := protojson.Marshal(msg)
	if err != nil {
		return nil
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil
	}
	return out
}
