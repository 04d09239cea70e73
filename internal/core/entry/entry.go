// Package entry defines the typed chain-state entries and their binary
// encodings. Every entry serializes to a fixed-layout byte slice so that
// state can live in any key-value backend.
package entry

// Type identifies the kind of a state entry.
type Type int

const (
	TypeBalance Type = iota + 1
	TypeSupply
	TypeURI
	TypeCounterpart
	TypeValuation
	TypeLoan
	TypeFungible
	TypeRole
	TypePendingRequest
	TypeRequestIndex
)

// String returns the entry type name.
func (t Type) String() string {
	switch t {
	case TypeBalance:
		return "Balance"
	case TypeSupply:
		return "Supply"
	case TypeURI:
		return "URI"
	case TypeCounterpart:
		return "Counterpart"
	case TypeValuation:
		return "Valuation"
	case TypeLoan:
		return "Loan"
	case TypeFungible:
		return "Fungible"
	case TypeRole:
		return "Role"
	case TypePendingRequest:
		return "PendingRequest"
	case TypeRequestIndex:
		return "RequestIndex"
	default:
		return "Unknown"
	}
}
