package core

import (
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
)

// MaterialMUS is the MUS format serializer for Material. It is written by
// hand rather than generated: a single flat struct does not warrant a
// codegen step.
var MaterialMUS = materialMUS{}

type materialMUS struct{}

// Marshal writes the material to bs and returns the number of bytes written.
// bs must be at least Size(v) bytes long.
func (s materialMUS) Marshal(v Material, bs []byte) (n int) {
	n = ord.String.Marshal(v.Id, bs)
	n += ord.String.Marshal(v.Title, bs[n:])
	n += ord.String.Marshal(v.Creator, bs[n:])
	n += varint.Float64.Marshal(v.Price, bs[n:])
	n += varint.Int.Marshal(v.Year, bs[n:])
	n += varint.Int.Marshal(int(v.Type), bs[n:])
	n += ord.Bool.Marshal(v.Media != nil, bs[n:])
	if v.Media != nil {
		n += varint.Int.Marshal(v.Media.DurationSec, bs[n:])
		n += ord.String.Marshal(v.Media.Format, bs[n:])
	}
	return n
}

// Unmarshal reads a material from bs. Returns the material, the number of
// bytes consumed, and any decoding error.
func (s materialMUS) Unmarshal(bs []byte) (v Material, n int, err error) {
	var n1 int
	v.Id, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	v.Title, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Creator, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Price, n1, err = varint.Float64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Year, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	var typ int
	typ, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Type = MaterialType(typ)
	var playable bool
	playable, n1, err = ord.Bool.Unmarshal(bs[n:])
	n += n1
	if err != nil || !playable {
		return
	}
	media := &MediaFields{}
	media.DurationSec, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	media.Format, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Media = media
	return
}

// Size returns the number of bytes Marshal will write for the material.
func (s materialMUS) Size(v Material) (size int) {
	size = ord.String.Size(v.Id)
	size += ord.String.Size(v.Title)
	size += ord.String.Size(v.Creator)
	size += varint.Float64.Size(v.Price)
	size += varint.Int.Size(v.Year)
	size += varint.Int.Size(int(v.Type))
	size += ord.Bool.Size(v.Media != nil)
	if v.Media != nil {
		size += varint.Int.Size(v.Media.DurationSec)
		size += ord.String.Size(v.Media.Format)
	}
	return size
}
