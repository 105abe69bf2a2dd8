package vlc

import (
	"math"
	"unsafe"
)

// rawEvent is the Go view of a libvlc_event_t:
//
//	struct { int type; void *p_obj; union { ... } u; }
//
// On the supported 64-bit targets type sits at offset 0, p_obj at 8 and the
// union at 16. Only the first two union words are ever read.
type rawEvent struct {
	Type   EventType
	Object uintptr
	U      [2]uint64
}

const (
	eventObjOffset   = 8
	eventUnionOffset = 16
)

// decodeRawEvent copies the native event struct. It must only be called on
// the callback thread while the pointer is valid.
func decodeRawEvent(ptr uintptr) (rawEvent, bool) {
	if ptr == 0 {
		return rawEvent{}, false
	}
	p := unsafe.Pointer(ptr)
	return rawEvent{
		Type:   EventType(*(*int32)(p)),
		Object: *(*uintptr)(unsafe.Add(p, eventObjOffset)),
		U: [2]uint64{
			*(*uint64)(unsafe.Add(p, eventUnionOffset)),
			*(*uint64)(unsafe.Add(p, eventUnionOffset+8)),
		},
	}, true
}

// Union accessors. libvlc packs the first member at the union start; a
// trailing int (index, id) follows a pointer in the second word.

func (e rawEvent) int32At0() int32     { return int32(uint32(e.U[0])) }
func (e rawEvent) int32At4() int32     { return int32(uint32(e.U[0] >> 32)) }
func (e rawEvent) int32At8() int32     { return int32(uint32(e.U[1])) }
func (e rawEvent) int64At0() int64     { return int64(e.U[0]) }
func (e rawEvent) pointerAt0() uintptr { return uintptr(e.U[0]) }
func (e rawEvent) float32At0() float32 { return math.Float32frombits(uint32(e.U[0])) }
func (e rawEvent) stringAt0() string   { return goStringFromPtr(e.pointerAt0()) }
