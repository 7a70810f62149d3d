package models

// Person is a member of the household. Persons are data, not a closed set:
// any number may exist, each with its own split configuration.
type Person struct {
	Base
	Name       string    `gorm:"not null;uniqueIndex" json:"name"`
	Active     bool      `gorm:"default:true" json:"active"`
	AllowSplit bool      `gorm:"default:false" json:"allow_split"`
	SplitWith  []*Person `gorm:"many2many:person_splits" json:"split_with,omitempty"`
}

// JointLabel is the display label of the joint marker, kept for
// compatibility with existing exports.
const JointLabel = "Ambos"

// PersonRef identifies the owner of a ledger entry: either one concrete
// person, or the joint marker meaning the amount is shared by the household.
// Joint is a first-class sentinel; it is never resolved by name lookup.
type PersonRef struct {
	PersonID *string `gorm:"column:person_id;type:uuid;index" json:"person_id,omitempty"`
	Joint    bool    `gorm:"column:joint_owner" json:"joint"`
}

// IndividualRef builds a reference to a concrete person.
func IndividualRef(personID string) PersonRef {
	return PersonRef{PersonID: &personID}
}

// JointRef builds the shared-owner reference.
func JointRef() PersonRef {
	return PersonRef{Joint: true}
}

// Is reports whether the reference points at the given concrete person.
func (r PersonRef) Is(personID string) bool {
	return !r.Joint && r.PersonID != nil && *r.PersonID == personID
}

// Same reports whether two references identify the same owner.
func (r PersonRef) Same(o PersonRef) bool {
	if r.Joint || o.Joint {
		return r.Joint == o.Joint
	}
	if r.PersonID == nil || o.PersonID == nil {
		return r.PersonID == o.PersonID
	}
	return *r.PersonID == *o.PersonID
}
