package types

import (
	"encoding/json"
	"strconv"

	"github.com/vmihailenco/msgpack/v5"
)

var _ msgpack.CustomEncoder = Value{}

// EncodeMsgpack writes v as MessagePack, keeping object key order.
//
// Integer literals become msgpack integers and other numbers float64. A
// literal that fits neither is written as a string.
func (v Value) EncodeMsgpack(enc *msgpack.Encoder) error {
	switch v.kind {
	case KindNull:
		return enc.EncodeNil()
	case KindBool:
		return enc.EncodeBool(v.b)
	case KindNumber:
		return encodeMsgpackNumber(enc, string(v.n))
	case KindString:
		return enc.EncodeString(v.s)
	case KindArray:
		if err := enc.EncodeArrayLen(len(v.arr)); err != nil {
			return err
		}
		for _, item := range v.arr {
			if err := item.EncodeMsgpack(enc); err != nil {
				return err
			}
		}
		return nil
	case KindObject:
		if err := enc.EncodeMapLen(v.obj.Len()); err != nil {
			return err
		}
		for key, val := range v.obj.All() {
			if err := enc.EncodeString(key); err != nil {
				return err
			}
			if err := val.EncodeMsgpack(enc); err != nil {
				return err
			}
		}
		return nil
	}
	return enc.EncodeNil()
}

func encodeMsgpackNumber(enc *msgpack.Encoder, lit string) error {
	if !isFloatLiteral(json.Number(lit)) {
		if i, err := strconv.ParseInt(lit, 10, 64); err == nil {
			return enc.EncodeInt(i)
		}
		if u, err := strconv.ParseUint(lit, 10, 64); err == nil {
			return enc.EncodeUint(u)
		}
	}
	if f, err := strconv.ParseFloat(lit, 64); err == nil {
		return enc.EncodeFloat64(f)
	}
	return enc.EncodeString(lit)
}
