package report

// Bucket maps a raw department id and management area id to a configured
// department label. Labels are tried in order; the first label whose id set
// contains deptID decides. When that label requires a management area and
// maID differs, the result is no bucket: later labels are not consulted.
func Bucket(deptID, maID string, settings Settings) (string, bool) {
	if deptID == "" {
		return "", false
	}
	for _, d := range settings.Departments {
		if !containsID(d.DeptIDs, deptID) {
			continue
		}
		if d.ManagementAreaID != "" && maID != d.ManagementAreaID {
			return "", false
		}
		return d.Label, true
	}
	return "", false
}

func containsID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
