// Package message encodes contour and winding results as protobuf messages
// so a host process can consume them without linking this module.
//
//	message Vec3       { double x = 1; double y = 2; double z = 3; }
//	message Segment    { Vec3 from = 1; Vec3 to = 2; int64 face = 3; }
//	message ContourSet { double iso = 1; repeated Segment segments = 2; }
//	message Winding    { bool inside = 1; double number = 2; Vec3 point = 3; }
//
// The descriptors are built at init and the messages are dynamicpb values.
package message

import (
	"fmt"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/reflect/protoregistry"
	"google.golang.org/protobuf/types/descriptorpb"
	"google.golang.org/protobuf/types/dynamicpb"

	"github.com/gorustyt/gomeshfield/common"
	"github.com/gorustyt/gomeshfield/isocurve"
	"github.com/gorustyt/gomeshfield/winding"
)

const protoPackage = "gomeshfield.message"

var (
	Vec3Desc       protoreflect.MessageDescriptor
	SegmentDesc    protoreflect.MessageDescriptor
	ContourSetDesc protoreflect.MessageDescriptor
	WindingDesc    protoreflect.MessageDescriptor
)

func init() {
	fd, err := protodesc.NewFile(fileDescriptor(), new(protoregistry.Files))
	if err != nil {
		panic(fmt.Sprintf("message: bad descriptor: %v", err))
	}
	msgs := fd.Messages()
	Vec3Desc = msgs.ByName("Vec3")
	SegmentDesc = msgs.ByName("Segment")
	ContourSetDesc = msgs.ByName("ContourSet")
	WindingDesc = msgs.ByName("Winding")
}

func field(name string, num int32, typ descriptorpb.FieldDescriptorProto_Type, msg string) *descriptorpb.FieldDescriptorProto {
	f := &descriptorpb.FieldDescriptorProto{
		Name:   proto.String(name),
		Number: proto.Int32(num),
		Type:   typ.Enum(),
		Label:  descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL.Enum(),
	}
	if msg != "" {
		f.TypeName = proto.String("." + protoPackage + "." + msg)
	}
	return f
}

func fileDescriptor() *descriptorpb.FileDescriptorProto {
	const (
		double  = descriptorpb.FieldDescriptorProto_TYPE_DOUBLE
		varint  = descriptorpb.FieldDescriptorProto_TYPE_INT64
		boolean = descriptorpb.FieldDescriptorProto_TYPE_BOOL
		msgType = descriptorpb.FieldDescriptorProto_TYPE_MESSAGE
	)
	segments := field("segments", 2, msgType, "Segment")
	segments.Label = descriptorpb.FieldDescriptorProto_LABEL_REPEATED.Enum()
	return &descriptorpb.FileDescriptorProto{
		Name:    proto.String("gomeshfield/message.proto"),
		Package: proto.String(protoPackage),
		Syntax:  proto.String("proto3"),
		MessageType: []*descriptorpb.DescriptorProto{
			{
				Name: proto.String("Vec3"),
				Field: []*descriptorpb.FieldDescriptorProto{
					field("x", 1, double, ""),
					field("y", 2, double, ""),
					field("z", 3, double, ""),
				},
			},
			{
				Name: proto.String("Segment"),
				Field: []*descriptorpb.FieldDescriptorProto{
					field("from", 1, msgType, "Vec3"),
					field("to", 2, msgType, "Vec3"),
					field("face", 3, varint, ""),
				},
			},
			{
				Name: proto.String("ContourSet"),
				Field: []*descriptorpb.FieldDescriptorProto{
					field("iso", 1, double, ""),
					segments,
				},
			},
			{
				Name: proto.String("Winding"),
				Field: []*descriptorpb.FieldDescriptorProto{
					field("inside", 1, boolean, ""),
					field("number", 2, double, ""),
					field("point", 3, msgType, "Vec3"),
				},
			},
		},
	}
}

func Encode(msg proto.Message) []byte {
	data, err := proto.Marshal(msg)
	if err != nil {
		panic(fmt.Sprintf("message: marshal %s: %v", msg.ProtoReflect().Descriptor().FullName(), err))
	}
	return data
}

func Decode(data []byte, msg proto.Message) error {
	if err := proto.Unmarshal(data, msg); err != nil {
		return fmt.Errorf("message: %s: %w", msg.ProtoReflect().Descriptor().FullName(), err)
	}
	return nil
}

// ContourSet is the decoded form of a contour message.
type ContourSet struct {
	Iso      float64
	Segments []isocurve.Segment
}

// Winding is the decoded form of a winding message.
type Winding struct {
	winding.Result
	Point common.Vec3
}

func fieldOf(m protoreflect.Message, name protoreflect.Name) protoreflect.FieldDescriptor {
	return m.Descriptor().Fields().ByName(name)
}

func newVec3(v common.Vec3) *dynamicpb.Message {
	m := dynamicpb.NewMessage(Vec3Desc)
	m.Set(fieldOf(m, "x"), protoreflect.ValueOfFloat64(v[0]))
	m.Set(fieldOf(m, "y"), protoreflect.ValueOfFloat64(v[1]))
	m.Set(fieldOf(m, "z"), protoreflect.ValueOfFloat64(v[2]))
	return m
}

func vec3Of(m protoreflect.Message) common.Vec3 {
	return common.Vec3{
		m.Get(fieldOf(m, "x")).Float(),
		m.Get(fieldOf(m, "y")).Float(),
		m.Get(fieldOf(m, "z")).Float(),
	}
}

// NewContourSet builds the message for the segments extracted at iso.
func NewContourSet(iso float64, segs []isocurve.Segment) *dynamicpb.Message {
	m := dynamicpb.NewMessage(ContourSetDesc)
	m.Set(fieldOf(m, "iso"), protoreflect.ValueOfFloat64(iso))
	list := m.Mutable(fieldOf(m, "segments")).List()
	for _, s := range segs {
		sm := dynamicpb.NewMessage(SegmentDesc)
		sm.Set(fieldOf(sm, "from"), protoreflect.ValueOfMessage(newVec3(s.From)))
		sm.Set(fieldOf(sm, "to"), protoreflect.ValueOfMessage(newVec3(s.To)))
		sm.Set(fieldOf(sm, "face"), protoreflect.ValueOfInt64(int64(s.Face)))
		list.Append(protoreflect.ValueOfMessage(sm))
	}
	return m
}

// NewWinding builds the message for the classification of point p.
func NewWinding(p common.Vec3, r winding.Result) *dynamicpb.Message {
	m := dynamicpb.NewMessage(WindingDesc)
	m.Set(fieldOf(m, "inside"), protoreflect.ValueOfBool(r.Inside))
	m.Set(fieldOf(m, "number"), protoreflect.ValueOfFloat64(r.Number))
	m.Set(fieldOf(m, "point"), protoreflect.ValueOfMessage(newVec3(p)))
	return m
}

// EncodeContours encodes the segments extracted at one iso value.
func EncodeContours(iso float64, segs []isocurve.Segment) []byte {
	return Encode(NewContourSet(iso, segs))
}

func DecodeContours(data []byte) (*ContourSet, error) {
	m := dynamicpb.NewMessage(ContourSetDesc)
	if err := Decode(data, m); err != nil {
		return nil, err
	}
	res := &ContourSet{Iso: m.Get(fieldOf(m, "iso")).Float()}
	list := m.Get(fieldOf(m, "segments")).List()
	for i := 0; i < list.Len(); i++ {
		sm := list.Get(i).Message()
		res.Segments = append(res.Segments, isocurve.Segment{
			From: vec3Of(sm.Get(fieldOf(sm, "from")).Message()),
			To:   vec3Of(sm.Get(fieldOf(sm, "to")).Message()),
			Face: int(sm.Get(fieldOf(sm, "face")).Int()),
		})
	}
	return res, nil
}

// EncodeWinding encodes the classification of point p.
func EncodeWinding(p common.Vec3, r winding.Result) []byte {
	return Encode(NewWinding(p, r))
}

func DecodeWinding(data []byte) (*Winding, error) {
	m := dynamicpb.NewMessage(WindingDesc)
	if err := Decode(data, m); err != nil {
		return nil, err
	}
	res := &Winding{Point: vec3Of(m.Get(fieldOf(m, "point")).Message())}
	res.Inside = m.Get(fieldOf(m, "inside")).Bool()
	res.Number = m.Get(fieldOf(m, "number")).Float()
	return res, nil
}
