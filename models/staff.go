package models

// StaffMember represents a salon stylist. Staff records are owned by the
// management service; the optimizer only reads them.
type StaffMember struct {
	ID          string   `bson:"id" json:"id"`
	Name        string   `bson:"name" json:"name"`
	Active      bool     `bson:"active" json:"active"`
	Specialties []string `bson:"specialties,omitempty" json:"specialties,omitempty"` // menu affinity, e.g. "カット", "カラー"
}
