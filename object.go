package strictjson

import (
	"bytes"
	"encoding/json"
)

// member is one key/value pair of an object, value already validated.
type member struct {
	key   string
	value any
}

// object is the validated form of a map or struct: members in the order they
// were visited. It renders through the driver that is rendering its parent.
type object struct {
	members []member
	drv     Driver
}

var _ json.Marshaler = (*object)(nil)

func (o *object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, m := range o.members {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := o.drv.Marshal(m.key)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		v, err := o.drv.Marshal(m.value)
		if err != nil {
			return nil, err
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
