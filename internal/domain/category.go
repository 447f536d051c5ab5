package domain

// Category is the closed set of spending categories.
type Category string

const (
	CategoryFood          Category = "FOOD"
	CategoryGroceries     Category = "GROCERIES"
	CategoryTransport     Category = "TRANSPORT"
	CategoryShopping      Category = "SHOPPING"
	CategoryUtilities     Category = "UTILITIES"
	CategoryEntertainment Category = "ENTERTAINMENT"
	CategoryHealth        Category = "HEALTH"
	CategoryTransfers     Category = "TRANSFERS"
	CategoryOther         Category = "OTHER"
)

// Categories lists every valid category, in display order.
var Categories = []Category{
	CategoryFood, CategoryGroceries, CategoryTransport, CategoryShopping,
	CategoryUtilities, CategoryEntertainment, CategoryHealth,
	CategoryTransfers, CategoryOther,
}

// ValidCategory reports whether c is a member of the closed set.
func ValidCategory(c Category) bool {
	for _, valid := range Categories {
		if c == valid {
			return true
		}
	}
	return false
}

// CategorySource records which tier of the categorization cascade produced
// the final category.
type CategorySource string

const (
	SourceRule          CategorySource = "RULE"
	SourceOnDeviceModel CategorySource = "ON_DEVICE_MODEL"
	SourceCloudModel    CategorySource = "CLOUD_MODEL"
	SourceUser          CategorySource = "USER"
	SourceUnknown       CategorySource = "UNKNOWN"
)

// CategorizedTransaction is the unit handed to the transaction store. Its
// lifecycle ends at persistence; the store owns updates and deletes after
// that.
type CategorizedTransaction struct {
	ID string // uuid, assigned at categorization time

	ExtractedTransaction

	Category       Category
	Subcategory    string
	Confidence     float64 // in [0,1]
	CategorySource CategorySource
}

// Categorization is one tier's verdict: a category with a confidence and an
// optional cleaned merchant name. A tier that has nothing to say returns
// no Categorization at all rather than a zero value.
type Categorization struct {
	Category     Category
	Subcategory  string
	MerchantName string // optional override for MerchantClean
	Confidence   float64
	Source       CategorySource
}
