package badger

import "strconv"

// Key prefixes for different data types
const (
	materialPrefix     = "matrec"
	materialTypePrefix = "mattyp"
)

// makeMaterialKey generates the primary key for a material by id.
func makeMaterialKey(id string) []byte {
	return []byte(materialPrefix + ":" + id)
}

// makeMaterialTypeKey generates a composite key for the type index.
// Format: prefix:type:id
func makeMaterialTypeKey(materialType int, id string) []byte {
	return []byte(materialTypePrefix + ":" + strconv.Itoa(materialType) + ":" + id)
}

// makePartialMaterialTypeKey generates the type index prefix for
// iterating every material of one type.
func makePartialMaterialTypeKey(materialType int) []byte {
	return []byte(materialTypePrefix + ":" + strconv.Itoa(materialType) + ":")
}
