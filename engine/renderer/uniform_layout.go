package renderer

import (
	"encoding/binary"
	"math"
	"sync"

	"github.com/Carmen-Shannon/oxy-shadow/common"
)

// UniformKind is the WGSL type of a named uniform field.
type UniformKind int

const (
	UniformMat4  UniformKind = iota // mat4x4<f32>: align 16, size 64
	UniformVec3                     // vec3<f32>: align 16, size 12
	UniformFloat                    // f32: align 4, size 4
	UniformInt                      // i32: align 4, size 4
	UniformBool                     // u32 (0 or 1): align 4, size 4
)

func (k UniformKind) alignSize() (int, int) {
	switch k {
	case UniformMat4:
		return 16, 64
	case UniformVec3:
		return 16, 12
	default:
		return 4, 4
	}
}

// UniformField names one field of a uniform block.
type UniformField struct {
	Name string
	Kind UniformKind
}

type uniformSlot struct {
	offset int
	kind   UniformKind
}

// UniformLayout lays out named fields with WGSL uniform address space rules and stages
// their values in a little-endian block ready for a buffer write.
// Field order is declaration order, matching the WGSL struct.
type UniformLayout struct {
	mu *sync.Mutex

	label   string
	slots   map[string]uniformSlot
	order   []string
	size    int
	staging []byte
	dirty   bool
	warned  map[string]bool
}

// NewUniformLayout computes offsets for the fields and allocates the staging block.
// The block size is rounded up to 16 bytes, the alignment of the struct.
//
// Parameters:
//   - label: a name used in log messages
//   - fields: the fields in WGSL declaration order
//
// Returns:
//   - *UniformLayout: the layout
func NewUniformLayout(label string, fields ...UniformField) *UniformLayout {
	u := &UniformLayout{
		mu:     &sync.Mutex{},
		label:  label,
		slots:  make(map[string]uniformSlot, len(fields)),
		warned: make(map[string]bool),
	}

	offset := 0
	for _, f := range fields {
		align, size := f.Kind.alignSize()
		offset = alignUp(offset, align)
		u.slots[f.Name] = uniformSlot{offset: offset, kind: f.Kind}
		u.order = append(u.order, f.Name)
		offset += size
	}
	u.size = alignUp(offset, 16)
	u.staging = make([]byte, u.size)
	return u
}

func alignUp(v, align int) int {
	return (v + align - 1) / align * align
}

// Label returns the layout label.
func (u *UniformLayout) Label() string {
	return u.label
}

// Size returns the block size in bytes.
func (u *UniformLayout) Size() int {
	return u.size
}

// Fields returns the field names in declaration order.
func (u *UniformLayout) Fields() []string {
	return u.order
}

// Offset returns the byte offset of a field.
//
// Parameters:
//   - name: the field name
//
// Returns:
//   - int: the offset in bytes
//   - bool: false if the field does not exist
func (u *UniformLayout) Offset(name string) (int, bool) {
	s, ok := u.slots[name]
	return s.offset, ok
}

// Has reports whether the layout declares a field with this name and kind.
func (u *UniformLayout) Has(name string, kind UniformKind) bool {
	s, ok := u.slots[name]
	return ok && s.kind == kind
}

// SetMat4 stages a mat4 field. Returns false if no mat4 field has this name.
func (u *UniformLayout) SetMat4(name string, value [16]float32) bool {
	return u.put(name, UniformMat4, func(b []byte) {
		for i, v := range value {
			binary.LittleEndian.PutUint32(b[i*4:], math.Float32bits(v))
		}
	})
}

// SetVec3 stages a vec3 field. Returns false if no vec3 field has this name.
func (u *UniformLayout) SetVec3(name string, value [3]float32) bool {
	return u.put(name, UniformVec3, func(b []byte) {
		for i, v := range value {
			binary.LittleEndian.PutUint32(b[i*4:], math.Float32bits(v))
		}
	})
}

// SetFloat stages an f32 field. Returns false if no f32 field has this name.
func (u *UniformLayout) SetFloat(name string, value float32) bool {
	return u.put(name, UniformFloat, func(b []byte) {
		binary.LittleEndian.PutUint32(b, math.Float32bits(value))
	})
}

// SetInt stages an i32 field. Returns false if no i32 field has this name.
func (u *UniformLayout) SetInt(name string, value int32) bool {
	return u.put(name, UniformInt, func(b []byte) {
		binary.LittleEndian.PutUint32(b, uint32(value))
	})
}

// SetBool stages a bool field as a u32 0 or 1. Returns false if no bool field has this name.
func (u *UniformLayout) SetBool(name string, value bool) bool {
	return u.put(name, UniformBool, func(b []byte) {
		var v uint32
		if value {
			v = 1
		}
		binary.LittleEndian.PutUint32(b, v)
	})
}

func (u *UniformLayout) put(name string, kind UniformKind, encode func([]byte)) bool {
	u.mu.Lock()
	defer u.mu.Unlock()

	s, ok := u.slots[name]
	if !ok || s.kind != kind {
		return false
	}
	encode(u.staging[s.offset:])
	u.dirty = true
	return true
}

// WarnUnknown logs a name no layout of a program accepted. Each name is logged once.
//
// Parameters:
//   - name: the unknown uniform name
func (u *UniformLayout) WarnUnknown(name string) {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.warned[name] {
		return
	}
	u.warned[name] = true
	common.LogDebug("ignoring unknown uniform", "program", u.label, "name", name)
}

// Bytes returns the staging block. The slice is reused; copy it to keep a snapshot.
func (u *UniformLayout) Bytes() []byte {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.staging
}

// TakeDirty reports whether any field changed since the last call and clears the flag.
func (u *UniformLayout) TakeDirty() bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	d := u.dirty
	u.dirty = false
	return d
}

// LitFrameLayout is the per-pass block of the lit program.
func LitFrameLayout() *UniformLayout {
	return NewUniformLayout("lit frame",
		UniformField{Name: UniformProjection, Kind: UniformMat4},
		UniformField{Name: UniformView, Kind: UniformMat4},
		UniformField{Name: UniformLightSpaceMatrix, Kind: UniformMat4},
		UniformField{Name: UniformViewPos, Kind: UniformVec3},
		UniformField{Name: UniformLightPos, Kind: UniformVec3},
		UniformField{Name: UniformLightColor, Kind: UniformVec3},
	)
}

// UnlitFrameLayout is the per-pass block of the unlit program.
func UnlitFrameLayout() *UniformLayout {
	return NewUniformLayout("unlit frame",
		UniformField{Name: UniformProjection, Kind: UniformMat4},
		UniformField{Name: UniformView, Kind: UniformMat4},
	)
}

// DepthFrameLayout is the per-pass block of the depth program.
func DepthFrameLayout() *UniformLayout {
	return NewUniformLayout("depth frame",
		UniformField{Name: UniformLightSpaceMatrix, Kind: UniformMat4},
	)
}

// ObjectLayout is the per-draw block shared by every program.
func ObjectLayout(label string) *UniformLayout {
	return NewUniformLayout(label,
		UniformField{Name: UniformModel, Kind: UniformMat4},
		UniformField{Name: UniformObjectColor, Kind: UniformVec3},
		UniformField{Name: UniformUseTexture, Kind: UniformBool},
	)
}
