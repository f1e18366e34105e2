package enum

// ProductType classifies how a product is sold
type ProductType string

const (
	ProductTypeKilo      ProductType = "kilo"      // sold per weight
	ProductTypeSack      ProductType = "sack"      // sold as a fixed pack
	ProductTypePrepacked ProductType = "prepacked" // sold prepacked
)

// IsValid checks whether the product type is one of the known values
func (t ProductType) IsValid() bool {
	switch t {
	case ProductTypeKilo, ProductTypeSack, ProductTypePrepacked:
		return true
	}
	return false
}
