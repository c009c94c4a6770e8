package domain

// Role is the authenticated principal's role within a society.
type Role string

const (
	RoleVisitor      Role = "VISITOR"
	RoleHouseOwner   Role = "HOUSE_OWNER"
	RoleSocietyAdmin Role = "SOCIETY_ADMIN"
	RoleSuperAdmin   Role = "SUPER_ADMIN"
)

func ParseRole(s string) Role {
	switch Role(s) {
	case RoleHouseOwner, RoleSocietyAdmin, RoleSuperAdmin:
		return Role(s)
	default:
		return RoleVisitor
	}
}

func (r Role) isAdmin() bool {
	return r == RoleSocietyAdmin || r == RoleSuperAdmin
}

// CanRecordIncome: any member except plain visitors may record dues payments.
func (r Role) CanRecordIncome() bool {
	return r != RoleVisitor && r != ""
}

// CanRecordExpense: only society admins and super admins log expenses.
func (r Role) CanRecordExpense() bool {
	return r.isAdmin()
}

// CanFilterByType: the INCOME/EXPENSE filter on the receipts view is an
// administrative feature; everyone else is served income records only.
func (r Role) CanFilterByType() bool {
	return r.isAdmin()
}

// CanApprove: approval of income records before receipt download.
func (r Role) CanApprove() bool {
	return r.isAdmin()
}

// CanListPendingAdmins: platform-level view of paid admin requests.
func (r Role) CanListPendingAdmins() bool {
	return r == RoleSuperAdmin
}
