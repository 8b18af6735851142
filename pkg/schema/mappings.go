package schema

// Synonym lists used by Resolve, one per semantic role. Order matters: an
// earlier candidate beats a later one in both the exact and the substring pass,
// so more specific names come first.

// Roster roles.
var (
	RosterIDColumns             = []string{"Employee ID", "Person ID", "Associate ID", "ID"}
	RosterDepartmentColumns     = []string{"Department ID", "Department"}
	RosterEmploymentTypeColumns = []string{"Employment Type", "EmploymentType", "Emp Type"}
	RosterStatusColumns         = []string{"On Premise", "OnPremise", "Present", "Status"}
	RosterManagementAreaColumns = []string{"Management Area ID", "ManagementAreaId", "MA ID", "Corner", "Management Area"}
	RosterFirstNameColumns      = []string{"First Name", "Given Name", "First"}
	RosterLastNameColumns       = []string{"Last Name", "Surname", "Last"}
)

// Attendance (MyTime) roles.
var (
	AttendanceIDColumns       = []string{"Person ID", "Employee ID", "ID"}
	AttendancePresenceColumns = []string{"On Premise", "OnPremise", "Present", "Status"}
)

// Shift-marketplace (VET/VTO) roles.
var (
	MarketplaceIDColumns        = []string{"employeeId", "Employee ID", "Person ID", "Associate ID", "ID"}
	MarketplaceTypeColumns      = []string{"opportunity.type", "Type", "Opportunity Type"}
	MarketplaceAcceptedColumns  = []string{"opportunity.acceptedCount", "Accepted Count", "acceptedCount"}
	MarketplaceStatusColumns    = []string{"opportunity.status", "Status", "Opportunity Status"}
	MarketplaceWorkDateColumns  = []string{"opportunity.shiftStart", "shiftStart", "Shift Start"}
	MarketplaceWorkDate2Columns = []string{"opportunity.shiftEnd", "shiftEnd", "Shift End"}
)

// Shift-swap roles.
var (
	SwapIDColumns       = []string{"Employee 1 ID", "Employee ID", "Person ID", "Associate ID", "ID"}
	SwapStatusColumns   = []string{"Status", "Swap Status"}
	SwapSkipDateColumns = []string{"Date to Skip", "Skip Date", "Skip"}
	SwapWorkDateColumns = []string{"Date to Work", "Work Date", "Work"}
)

// Role pairs a diagnostic role name with its synonym list.
type Role struct {
	Name       string
	Candidates []string
}

// RosterRoles lists the roster roles in diagnostic order.
var RosterRoles = []Role{
	{"eid", RosterIDColumns},
	{"dept", RosterDepartmentColumns},
	{"employment_type", RosterEmploymentTypeColumns},
	{"on_prem", RosterStatusColumns},
	{"ma", RosterManagementAreaColumns},
	{"first_name", RosterFirstNameColumns},
	{"last_name", RosterLastNameColumns},
}

// AttendanceRoles lists the attendance roles in diagnostic order.
var AttendanceRoles = []Role{
	{"eid", AttendanceIDColumns},
	{"on_prem", AttendancePresenceColumns},
}

// MarketplaceRoles lists the marketplace roles in diagnostic order.
var MarketplaceRoles = []Role{
	{"eid", MarketplaceIDColumns},
	{"type", MarketplaceTypeColumns},
	{"accepted", MarketplaceAcceptedColumns},
	{"status", MarketplaceStatusColumns},
	{"work_date", MarketplaceWorkDateColumns},
	{"work_date_alt", MarketplaceWorkDate2Columns},
}

// SwapRoles lists the swap roles in diagnostic order.
var SwapRoles = []Role{
	{"eid", SwapIDColumns},
	{"status", SwapStatusColumns},
	{"skip_date", SwapSkipDateColumns},
	{"work_date", SwapWorkDateColumns},
}
