package brewery

// Type is the brewery category reported by the directory. The vocabulary is open:
// values outside the constants below are kept as-is.
type Type string

// Brewery types known to the directory.
const (
	Micro      Type = "micro"
	Nano       Type = "nano"
	Regional   Type = "regional"
	Brewpub    Type = "brewpub"
	Large      Type = "large"
	Planning   Type = "planning"
	Bar        Type = "bar"
	Contract   Type = "contract"
	Proprietor Type = "proprietor"
	Closed     Type = "closed"
	Taproom    Type = "taproom"
	Cidery     Type = "cidery"
	Location   Type = "location"
)

// FilterOptions are the types offered by the list screen's type selector.
var FilterOptions = []Type{Micro, Regional, Brewpub}

// Brewery is a single directory record. Optional fields are empty when absent.
type Brewery struct {
	ID         string
	Name       string
	Type       Type
	Address1   string
	Street     string
	City       string
	State      string
	PostalCode string
	Country    string
	WebsiteURL string
	Phone      string
}

// IsZero reports whether the record carries no identifier.
func (b *Brewery) IsZero() bool { return b.ID == "" }
