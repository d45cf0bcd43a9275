package fluentmasker

// MaskType names a content-aware rule so it can be selected from
// configuration.
type MaskType string

const (
	MaskSSN   MaskType = "ssn"   // 123-45-6789 -> ***-**-6789
	MaskEmail MaskType = "email" // alice@example.com -> a***@example.com
	MaskPhone MaskType = "phone" // (555) 123-4567 -> (***) ***-4567
	MaskCard  MaskType = "card"  // 4111111111111111 -> ************1111
	MaskIP    MaskType = "ip"    // 192.168.1.100 -> 192.168.xxx.xxx
	MaskUUID  MaskType = "uuid"  // 550e8400-e29b-41d4-a716-446655440000 -> 550e8400-****-****-****-************
	MaskIBAN  MaskType = "iban"  // GB82WEST12345698765432 -> GB82**************5432
	MaskName  MaskType = "name"  // John Smith -> J*** S****
)

var maskTypes = map[MaskType]func() Rule[string]{
	MaskSSN:   SSN,
	MaskEmail: Email,
	MaskPhone: Phone,
	MaskCard:  Card,
	MaskIP:    IP,
	MaskUUID:  UUID,
	MaskIBAN:  IBAN,
	MaskName:  Name,
}

// IsValidMaskType returns true if the type is a known mask type.
func IsValidMaskType(mt MaskType) bool {
	_, ok := maskTypes[mt]
	return ok
}

// MaskFor returns the content-aware rule named by mt.
func MaskFor(mt MaskType) (Rule[string], error) {
	fn, ok := maskTypes[mt]
	if !ok {
		return nil, invalidArg("MaskFor", "type", "unknown mask type %q", mt)
	}
	return fn(), nil
}
