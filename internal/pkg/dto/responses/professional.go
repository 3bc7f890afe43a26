package responses

// DashboardSummary backs the professional dashboard header: how much work is
// booked and how much revenue has settled.
type DashboardSummary struct {
	PendingAppointments   int   `json:"pendingAppointments"`
	ConfirmedAppointments int   `json:"confirmedAppointments"`
	CancelledAppointments int   `json:"cancelledAppointments"`
	TotalRevenue          int64 `json:"totalRevenue"`
}
