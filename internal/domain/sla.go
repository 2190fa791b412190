package domain

// SLA deadlines in hours per distress level. A pure table independent of
// department.
var slaHours = map[DistressLevel]int{
	DistressCritical: 24,
	DistressHigh:     72,
	DistressMedium:   168,
	DistressNormal:   336,
}

// SLAHours returns the response deadline in hours for a distress level.
func SLAHours(level DistressLevel) int {
	if hours, ok := slaHours[level]; ok {
		return hours
	}
	return slaHours[DistressNormal]
}
