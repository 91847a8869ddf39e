package staffRepo

import "github.com/Shiki0138/sms-sub001/models"

// StaffRepository exposes read-only staff lookups for the optimizer.
type StaffRepository interface {
	ListActiveStaff() ([]models.StaffMember, error)
}
