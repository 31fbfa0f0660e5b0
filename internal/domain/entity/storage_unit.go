package entity

// Tipos de unidad de almacenamiento (value object conceptual).
const (
	StorageTypeShelf  = "shelf"
	StorageTypeFridge = "fridge"
)

// StorageUnit representa un estante o refrigerador con capacidad máxima en
// unidades de volumen.
type StorageUnit struct {
	ID          int64
	Name        string
	Type        string // shelf | fridge
	MaxCapacity float64
	Location    string
}

// ProductStorageLink vincula un producto con su unidad de almacenamiento.
// A lo sumo un vínculo activo por producto.
type ProductStorageLink struct {
	ProductID   int64
	StorageType string
	StorageID   int64
}
