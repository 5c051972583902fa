package grpc

import (
	"bytes"
	"encoding/gob"

	"github.com/groupsm/membergroup/pkg/group"
)

func init() {
	gob.Register("")
	gob.Register(int64(0))
	gob.Register(uint64(0))
	gob.Register(float64(0))
	gob.Register(false)
	gob.Register([]byte(nil))
	gob.Register([]uint64(nil))
}

// requestEnvelope carries a single committed operation across the wire.
// It is the gob-encoded payload of the Submit RPC's request message, and
// lives entirely in the transport package, separate from pkg/group's
// operation types.
type requestEnvelope struct {
	Kind      group.Kind
	SessionID uint64
	Member    uint64
	Name      string
	Value     any
	Target    uint64
	Topic     string
	Message   any
	DelayMS   uint64
	Callback  any
}

// responseEnvelope carries Apply's result back, with the error rendered as
// a string since group's sentinel errors do not survive gob round-trips by
// identity.
type responseEnvelope struct {
	Result any
	ErrMsg string
}

func encodeGob(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decodeGob(data []byte, v any) error {
	return gob.NewDecoder(bytes.NewReader(data)).Decode(v)
}

// toOp converts a requestEnvelope into the group.Op it describes.
func (e requestEnvelope) toOp() group.Op {
	switch e.Kind {
	case group.KindJoin:
		return group.JoinOp{}
	case group.KindLeave:
		return group.LeaveOp{Member: e.Member}
	case group.KindListen:
		return group.ListenOp{}
	case group.KindResign:
		return group.ResignOp{Member: e.Member}
	case group.KindSetProperty:
		return group.SetPropertyOp{Member: e.Member, Name: e.Name, Value: e.Value}
	case group.KindGetProperty:
		return group.GetPropertyOp{Member: e.Member, Name: e.Name}
	case group.KindRemoveProperty:
		return group.RemovePropertyOp{Member: e.Member, Name: e.Name}
	case group.KindSend:
		return group.SendOp{Target: e.Target, Topic: e.Topic, Message: e.Message}
	case group.KindSchedule:
		return group.ScheduleOp{Member: e.Member, DelayMS: e.DelayMS, Callback: e.Callback}
	case group.KindExecute:
		return group.ExecuteOp{Member: e.Member, Callback: e.Callback}
	default:
		return nil
	}
}
