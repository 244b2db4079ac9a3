package leave

// ComputeBalances fills Used for each balance with the total days of the
// approved applications of that type. Types are matched exactly. The result
// has the same order as balances; Total is carried over and inputs are not modified.
func ComputeBalances(apps []Application, balances []Balance) []Balance {
	usedByType := make(map[string]float64)
	for _, app := range apps {
		if app.Status != StatusApproved {
			continue
		}
		usedByType[app.LeaveType] += app.TotalDays
	}

	out := make([]Balance, len(balances))
	for i, b := range balances {
		out[i] = Balance{
			Type:  b.Type,
			Total: b.Total,
			Used:  usedByType[b.Type],
		}
	}
	return out
}
