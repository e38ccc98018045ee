package core

import (
	"encoding/binary"
	"strconv"

	"github.com/go-crypt/x/blake2b"
)

// MaterialType identifies the kind of catalog material.
type MaterialType int

const (
	// MaterialTypeBook represents a printed book.
	MaterialTypeBook MaterialType = iota + 1
	// MaterialTypeEBook represents an electronic book.
	MaterialTypeEBook
	// MaterialTypeAudio represents an audio recording.
	MaterialTypeAudio
	// MaterialTypeVideo represents a video recording.
	MaterialTypeVideo
	// MaterialTypeMagazine represents a magazine issue.
	MaterialTypeMagazine
)

var materialTypeNames = map[MaterialType]string{
	MaterialTypeBook:     "book",
	MaterialTypeEBook:    "ebook",
	MaterialTypeAudio:    "audio",
	MaterialTypeVideo:    "video",
	MaterialTypeMagazine: "magazine",
}

// String returns the lower-case name of the material type.
func (mt MaterialType) String() string {
	if name, ok := materialTypeNames[mt]; ok {
		return name
	}
	return "unknown(" + strconv.Itoa(int(mt)) + ")"
}

// ParseMaterialType resolves a type name to a MaterialType.
// Returns ErrInvalidMaterialType for unrecognized names.
func ParseMaterialType(name string) (MaterialType, error) {
	for mt, n := range materialTypeNames {
		if n == name {
			return mt, nil
		}
	}
	return 0, ErrInvalidMaterialType
}

// Material is a single catalog item. It is immutable after construction;
// the catalog hands out the same pointer to multiple callers and relies on
// no one mutating it. Identity is carried by Id alone.
type Material struct {
	Id      string
	Title   string
	Creator string
	Price   float64
	Year    int
	Type    MaterialType
	Media   *MediaFields // nil for non-playable materials
}

// MediaFields carries the fields that only playable materials (audio,
// video) have.
type MediaFields struct {
	DurationSec int
	Format      string
}

// Playable reports whether the material carries media fields.
func (m *Material) Playable() bool {
	return m.Media != nil
}

// IDFromContent generates a deterministic material ID from text content
// using BLAKE2b hashing. Identical content produces identical IDs.
func IDFromContent(text string) string {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return strconv.FormatUint(binary.LittleEndian.Uint64(sum), 16)
}
