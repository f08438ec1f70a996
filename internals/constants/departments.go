package constants

// Department (ban) di klub
const (
	DepartmentSinging    = "SINGING"
	DepartmentDance      = "DANCE"
	DepartmentRap        = "RAP"
	DepartmentInstrument = "INSTRUMENT"
)

// Urutan tetap dipakai di statistik & laporan.
var Departments = []string{
	DepartmentSinging,
	DepartmentDance,
	DepartmentRap,
	DepartmentInstrument,
}

var departmentNames = map[string]string{
	DepartmentSinging:    "Ban Hát",
	DepartmentDance:      "Ban Nhảy",
	DepartmentRap:        "Ban Rap",
	DepartmentInstrument: "Ban Nhạc cụ",
}

func IsValidDepartment(d string) bool {
	_, ok := departmentNames[d]
	return ok
}

// DepartmentName nama tampilan (dipakai email & export)
func DepartmentName(d string) string {
	if n, ok := departmentNames[d]; ok {
		return n
	}
	return d
}

// Status aplikasi anggota
const (
	MemberStatusPending  = "PENDING"
	MemberStatusActive   = "ACTIVE"
	MemberStatusRejected = "REJECTED"
)
