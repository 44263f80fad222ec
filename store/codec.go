package store

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsoncodec"
	"go.mongodb.org/mongo-driver/bson/bsonrw"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"gopkg.in/yaml.v3"
)

// Codec encodes whole snapshot documents for the FileBackend.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error

	// Extension is the file extension, without the dot.
	Extension() string
}

// CodecFor returns the codec for a snapshot format name.
func CodecFor(format string) (Codec, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", FormatYAML, "yml":
		return yamlCodec{}, nil
	case FormatJSON:
		return jsonCodec{}, nil
	case FormatBSON:
		return bsonCodec{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

type yamlCodec struct{}

func (yamlCodec) Marshal(v any) ([]byte, error)      { return yaml.Marshal(v) }
func (yamlCodec) Unmarshal(data []byte, v any) error { return yaml.Unmarshal(data, v) }
func (yamlCodec) Extension() string                  { return "yaml" }

type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error)      { return json.MarshalIndent(v, "", "  ") }
func (jsonCodec) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }
func (jsonCodec) Extension() string                  { return "json" }

type bsonCodec struct{}

func (bsonCodec) Marshal(v any) ([]byte, error)      { return bson.MarshalWithRegistry(bsonRegistry, v) }
func (bsonCodec) Unmarshal(data []byte, v any) error { return bson.UnmarshalWithRegistry(bsonRegistry, data, v) }
func (bsonCodec) Extension() string                  { return "bson" }

// bsonRegistry stores time.Time as an RFC 3339 string with nanoseconds.
// The BSON datetime type only keeps milliseconds.
var bsonRegistry = func() *bsoncodec.Registry {
	reg := bson.NewRegistry()
	tTime := reflect.TypeOf(time.Time{})
	reg.RegisterTypeEncoder(tTime, bsoncodec.ValueEncoderFunc(encodeBSONTime))
	reg.RegisterTypeDecoder(tTime, bsoncodec.ValueDecoderFunc(decodeBSONTime))
	return reg
}()

func encodeBSONTime(_ bsoncodec.EncodeContext, vw bsonrw.ValueWriter, val reflect.Value) error {
	t, ok := val.Interface().(time.Time)
	if !ok {
		return fmt.Errorf("cannot encode %s as time", val.Type())
	}
	return vw.WriteString(t.Format(time.RFC3339Nano))
}

func decodeBSONTime(_ bsoncodec.DecodeContext, vr bsonrw.ValueReader, val reflect.Value) error {
	var t time.Time
	switch vr.Type() {
	case bsontype.String:
		s, err := vr.ReadString()
		if err != nil {
			return err
		}
		if t, err = time.Parse(time.RFC3339Nano, s); err != nil {
			return err
		}
	case bsontype.DateTime:
		ms, err := vr.ReadDateTime()
		if err != nil {
			return err
		}
		t = time.UnixMilli(ms).UTC()
	case bsontype.Null:
		if err := vr.ReadNull(); err != nil {
			return err
		}
	default:
		return fmt.Errorf("cannot decode BSON %s into time", vr.Type())
	}
	val.Set(reflect.ValueOf(t))
	return nil
}
